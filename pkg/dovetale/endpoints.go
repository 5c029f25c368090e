package dovetale

import (
	"fmt"
	"net/url"
	"strconv"

	"dovetale/pkg/config"
)

const (
	BaseURL = config.DefaultBaseURL
	AuthURL = config.DefaultAuthURL
	Scope   = config.DefaultScope

	UserAgent = "dovetale-go/1.0"

	// DefaultPage is the first page of a list
	DefaultPage = 1
)

func (c *Client) accountsURL() string {
	return c.baseURL + "accounts"
}

func (c *Client) listURL(listID int) string {
	return fmt.Sprintf("%slists/%d", c.baseURL, listID)
}

// listPageURL always carries the page in the query string, regardless of
// parameter placement
func (c *Client) listPageURL(listID, page int) string {
	q := url.Values{"page": {strconv.Itoa(page)}}
	return c.listURL(listID) + "?" + q.Encode()
}
