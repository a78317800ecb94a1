package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/client/models"
	"github.com/dmitrijs2005/userkeeper/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	session *models.Session
}

// NewHTTPClient returns a client for the API rooted at baseURL.
// timeout bounds every request; zero means no limit.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server address %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type errorBody struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

func (s *HTTPClient) Ping(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodGet, "/ping", nil, false)
	if err != nil {
		return err
	}
	return drain(resp)
}

func (s *HTTPClient) Register(ctx context.Context, r models.Registration) (*models.User, error) {
	resp, err := s.do(ctx, http.MethodPost, "/users", r, false)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	if err := decode(resp, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and keeps the returned token for later calls.
func (s *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := s.do(ctx, http.MethodPost, "/users/login", body, false)
	if err != nil {
		return nil, err
	}
	if err := drain(resp); err != nil {
		return nil, err
	}

	header := resp.Header.Get(common.AuthorizationHeaderName)
	token, ok := strings.CutPrefix(header, common.TokenPrefix)
	if !ok || token == "" {
		return nil, fmt.Errorf("%w: login response carries no bearer token", ErrUnavailable)
	}

	session := &models.Session{
		Token:    token,
		PublicID: resp.Header.Get(common.UserIDHeaderName),
		Email:    email,
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return session, nil
}

func (s *HTTPClient) Logout() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// Session returns the current session or nil.
func (s *HTTPClient) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

func (s *HTTPClient) GetUser(ctx context.Context, publicID string) (*models.User, error) {
	resp, err := s.do(ctx, http.MethodGet, "/users/"+url.PathEscape(publicID), nil, true)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	if err := decode(resp, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *HTTPClient) ListUsers(ctx context.Context, page, limit int) ([]models.User, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	resp, err := s.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil, true)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := decode(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *HTTPClient) UpdateUser(ctx context.Context, publicID, firstName, lastName string) (*models.User, error) {
	body := map[string]string{"firstName": firstName, "lastName": lastName}
	resp, err := s.do(ctx, http.MethodPut, "/users/"+url.PathEscape(publicID), body, true)
	if err != nil {
		return nil, err
	}
	user := &models.User{}
	if err := decode(resp, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *HTTPClient) DeleteUser(ctx context.Context, publicID string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(publicID), nil, true)
	if err != nil {
		return err
	}
	return drain(resp)
}

// do sends a JSON request and returns the response for 2xx statuses.
// Any other status is consumed and turned into a mapped error.
func (s *HTTPClient) do(ctx context.Context, method, path string, body any, auth bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		session := s.Session()
		if session == nil {
			return nil, ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.TokenPrefix+session.Token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	return nil, mapError(resp)
}

func mapError(resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)
	var eb errorBody
	if b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil && json.Unmarshal(b, &eb) == nil && eb.Message != "" {
		msg = eb.Message
	}

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		sentinel = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		sentinel = ErrConflict
	case resp.StatusCode == http.StatusBadRequest:
		sentinel = ErrValidation
	case resp.StatusCode == http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	case resp.StatusCode >= 500:
		sentinel = ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}

func decode(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func drain(resp *http.Response) error {
	defer resp.Body.Close()
	_, err := io.Copy(io.Discard, resp.Body)
	return err
}
