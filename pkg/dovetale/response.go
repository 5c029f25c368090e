package dovetale

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	errs "dovetale/pkg/errors"
	"dovetale/pkg/logger"
)

// Response is a decoded Dovetale API response. Bodies are returned as the
// server sent them.
type Response struct {
	StatusCode int
	Body       []byte
	// Data is the decoded JSON document, nil for an empty body
	Data interface{}
}

// Decode unmarshals the body into v
func (r *Response) Decode(v interface{}) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return &errs.Error{Type: errs.ErrorTypeParsing, Message: "empty response body", Code: r.StatusCode}
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &errs.Error{Type: errs.ErrorTypeParsing, Message: "failed to decode response", Code: r.StatusCode, Err: err}
	}
	return nil
}

// Get looks up a value in the body using a gjson path, e.g. "profiles.#.username"
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Empty reports whether the server sent no body
func (r *Response) Empty() bool {
	return r.Data == nil
}

// Do performs an authenticated request against an absolute URL. POST
// parameters are form-encoded in the body. GET parameters follow the
// client's ParamPlacement.
//
// A status of 400 or above yields a remote_request_failed error alongside the
// decoded response.
func (c *Client) Do(ctx context.Context, method, endpoint string, params url.Values, headers map[string]string) (*Response, error) {
	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPost {
		return nil, errs.InvalidParameter("method", method)
	}
	if endpoint == "" {
		return nil, errs.MissingParameter("url")
	}

	req := c.rest.R().
		SetContext(ctx).
		SetAuthToken(c.token.AccessToken).
		SetHeaders(headers)

	if len(params) > 0 {
		switch {
		case method == http.MethodPost:
			req.SetFormDataFromValues(params)
		case c.placement == ParamsInBody:
			req.SetHeader("Content-Type", "application/x-www-form-urlencoded").
				SetBody(params.Encode())
		default:
			req.SetQueryParamsFromValues(params)
		}
	}

	start := time.Now()
	res, err := req.Execute(method, endpoint)
	duration := time.Since(start)
	if err != nil {
		c.logger.ErrorWithFields("request failed", map[string]interface{}{
			"method":   method,
			"url":      logger.RedactURL(endpoint),
			"duration": duration,
			"error":    err.Error(),
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("%s %s", method, logger.RedactURL(endpoint)),
			Err:     err,
		}
	}

	logger.LogRequest(c.logger, method, res.Request.RawRequest.URL.String(), res.StatusCode(), duration)

	resp := &Response{
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
	}

	var decodeErr error
	if len(bytes.TrimSpace(resp.Body)) > 0 {
		resp.Data, decodeErr = decodeJSON(resp.Body)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, errs.RemoteRequestFailed(resp.StatusCode, resp.Body)
	}
	if decodeErr != nil {
		return resp, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: "response is not valid JSON",
			Code:    resp.StatusCode,
			Body:    string(resp.Body),
			Err:     decodeErr,
		}
	}

	return resp, nil
}

// decodeJSON keeps numbers as json.Number so large ids survive unchanged
func decodeJSON(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON document")
	}
	return v, nil
}
