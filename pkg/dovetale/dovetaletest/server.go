// Package dovetaletest provides an in-process fake of the Dovetale API for
// tests of code built on package dovetale.
package dovetaletest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	ClientID     = "test-client"
	ClientSecret = "test-secret"
	AccessToken  = "test-access-token"

	// PageSize is the number of profiles per list page
	PageSize = 10
)

// Request is a request recorded by the fake server
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Form holds the decoded request body, for POST and for GET bodies
	Form   url.Values
	Body   string
	Header http.Header
}

// Server simulates the token, accounts and lists endpoints
type Server struct {
	server       *httptest.Server
	requestCount int32

	mu             sync.RWMutex
	requests       []Request
	clientID       string
	clientSecret   string
	token          string
	profiles       map[string]json.RawMessage
	lists          map[int][]json.RawMessage
	errorResponses map[string]int
	rawResponses   map[string]string
}

// NewServer starts a fake server accepting ClientID and ClientSecret
func NewServer() *Server {
	s := &Server{
		clientID:       ClientID,
		clientSecret:   ClientSecret,
		token:          AccessToken,
		profiles:       make(map[string]json.RawMessage),
		lists:          make(map[int][]json.RawMessage),
		errorResponses: make(map[string]int),
		rawResponses:   make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", s.handleToken)
	mux.HandleFunc("/v2/accounts", s.handleAccounts)
	mux.HandleFunc("/v2/lists/{id}", s.handleList)

	s.server = httptest.NewServer(mux)
	return s
}

// URL returns the root of the fake server
func (s *Server) URL() string {
	return s.server.URL
}

// BaseURL returns the data API root to pass to dovetale.WithBaseURL
func (s *Server) BaseURL() string {
	return s.server.URL + "/v2/"
}

// AuthURL returns the token endpoint to pass to dovetale.WithAuthURL
func (s *Server) AuthURL() string {
	return s.server.URL + "/oauth/token"
}

// Client returns an HTTP client wired to the fake server
func (s *Server) Client() *http.Client {
	return s.server.Client()
}

// Close shuts down the fake server
func (s *Server) Close() {
	s.server.Close()
}

// AddProfile registers a profile body returned for lookups by url,
// username or platform id. Empty keys are skipped.
func (s *Server) AddProfile(platform, username, platformID, profileURL string, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := json.RawMessage(body)
	if username != "" {
		s.profiles[usernameKey(platform, username)] = raw
	}
	if platformID != "" {
		s.profiles[platformIDKey(platform, platformID)] = raw
	}
	if profileURL != "" {
		s.profiles[urlKey(profileURL)] = raw
	}
}

// SetErrorResponse makes an endpoint path, e.g. "/v2/lists/7", answer with code
func (s *Server) SetErrorResponse(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorResponses[path] = code
}

// SetRawResponse makes an endpoint path answer 200 with body verbatim
func (s *Server) SetRawResponse(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawResponses[path] = body
}

// ClearErrorResponse removes configured responses for an endpoint path
func (s *Server) ClearErrorResponse(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errorResponses, path)
	delete(s.rawResponses, path)
}

// SetTokenResponse replaces the token issued on a successful exchange.
// An empty token makes the exchange answer without an access_token.
func (s *Server) SetTokenResponse(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Requests returns every request received, in order
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request
func (s *Server) LastRequest() (Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// RequestCount returns the number of requests received
func (s *Server) RequestCount() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// ListSize returns how many profiles list id holds
func (s *Server) ListSize(id int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lists[id])
}

func (s *Server) record(r *http.Request) Request {
	atomic.AddInt32(&s.requestCount, 1)

	body, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(body))

	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Form:   form,
		Body:   string(body),
		Header: r.Header.Clone(),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	return req
}

// configured writes any error or raw response set for path
func (s *Server) configured(w http.ResponseWriter, path string) bool {
	s.mu.RLock()
	code := s.errorResponses[path]
	raw, hasRaw := s.rawResponses[path]
	s.mu.RUnlock()

	if code > 0 {
		sendError(w, code, fmt.Sprintf("error configured for %s", path))
		return true
	}
	if hasRaw {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, raw)
		return true
	}
	return false
}

func (s *Server) authorized(w http.ResponseWriter, req Request) bool {
	s.mu.RLock()
	want := "Bearer " + s.token
	s.mu.RUnlock()

	if req.Header.Get("Authorization") != want {
		sendError(w, http.StatusUnauthorized, "invalid access token")
		return false
	}
	return true
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	req := s.record(r)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.configured(w, req.Path) {
		return
	}

	s.mu.RLock()
	id, secret, token := s.clientID, s.clientSecret, s.token
	s.mu.RUnlock()

	if req.Form.Get("grant_type") != "client_credentials" ||
		req.Form.Get("client_id") != id ||
		req.Form.Get("client_secret") != secret {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_client",
			"error_description": "Client authentication failed",
		})
		return
	}

	resp := map[string]interface{}{
		"token_type": "Bearer",
		"expires_in": 7200,
		"scope":      req.Form.Get("scope"),
		"created_at": 1528396800,
	}
	if token != "" {
		resp["access_token"] = token
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	req := s.record(r)

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.authorized(w, req) || s.configured(w, req.Path) {
		return
	}

	// parameters arrive in the query string or, in legacy mode, the body
	params := req.Query
	if len(params) == 0 {
		params = req.Form
	}

	var key string
	switch {
	case params.Get("url") != "":
		key = urlKey(params.Get("url"))
	case params.Get("username") != "":
		key = usernameKey(params.Get("platform"), params.Get("username"))
	case params.Get("platform_id") != "":
		key = platformIDKey(params.Get("platform"), params.Get("platform_id"))
	default:
		sendError(w, http.StatusBadRequest, "url, username or platform_id is required")
		return
	}

	s.mu.RLock()
	body, ok := s.profiles[key]
	s.mu.RUnlock()
	if !ok {
		sendError(w, http.StatusNotFound, "Account not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	req := s.record(r)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		sendError(w, http.StatusNotFound, "List not found")
		return
	}
	if !s.authorized(w, req) || s.configured(w, req.Path) {
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.addToList(w, id, req.Form)
	case http.MethodGet:
		s.listPage(w, id, req.Query.Get("page"))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) addToList(w http.ResponseWriter, id int, form url.Values) {
	var key string
	switch {
	case form.Get("url") != "":
		key = urlKey(form.Get("url"))
	case form.Get("username") != "" && form.Get("platform") != "":
		key = usernameKey(form.Get("platform"), form.Get("username"))
	default:
		sendError(w, http.StatusUnprocessableEntity, "url or platform and username are required")
		return
	}

	s.mu.Lock()
	entry, known := s.profiles[key]
	if !known {
		entry, _ = json.Marshal(map[string]string{
			"status":   "pending",
			"platform": form.Get("platform"),
			"username": form.Get("username"),
			"url":      form.Get("url"),
		})
	}
	s.lists[id] = append(s.lists[id], entry)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"list_id": id,
		"status":  "added",
		"profile": entry,
	})
}

func (s *Server) listPage(w http.ResponseWriter, id int, rawPage string) {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page <= 0 {
		page = 1
	}

	s.mu.RLock()
	all := s.lists[id]
	s.mu.RUnlock()

	start := (page - 1) * PageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + PageSize
	if end > len(all) {
		end = len(all)
	}

	profiles := make([]json.RawMessage, 0, end-start)
	profiles = append(profiles, all[start:end]...)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"list_id":  id,
		"page":     page,
		"total":    len(all),
		"profiles": profiles,
	})
}

func sendError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
	})
}

func usernameKey(platform, username string) string {
	return "username:" + strings.ToLower(platform) + ":" + strings.ToLower(username)
}

func platformIDKey(platform, id string) string {
	return "id:" + strings.ToLower(platform) + ":" + id
}

func urlKey(u string) string {
	return "url:" + strings.TrimSuffix(u, "/")
}
