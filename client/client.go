// Package client is the programmatic counterpart of the two web pages: the
// public submission form and the admin dashboard. It speaks the server's
// JSON API and carries the admin session cookie across requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"feedback-board-server/models"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		base: baseURL,
		http: &http.Client{Jar: jar},
	}
}

// Submission is what the public form collects.
type Submission struct {
	Name     string
	Email    string
	Rating   int
	Comment  string
	Category string
}

// Submit runs the submission form's flow: register the user first, then
// create the feedback record. Registration failure (including an already
// registered email) is not fatal; the feedback is filed under a
// client-generated fallback id, accepting the dangling reference.
func (c *Client) Submit(ctx context.Context, sub Submission) (uint, error) {
	userID, err := c.RegisterUser(ctx, sub.Email, sub.Name, uuid.NewString())
	if err != nil {
		userID = "user_" + uuid.NewString()
	}

	var result struct {
		FeedbackID uint `json:"feedbackId"`
	}
	err = c.do(ctx, http.MethodPost, "/api/feedback", map[string]interface{}{
		"userId":    userID,
		"userName":  sub.Name,
		"userEmail": sub.Email,
		"rating":    sub.Rating,
		"comment":   sub.Comment,
		"category":  sub.Category,
	}, nil, &result)
	if err != nil {
		return 0, err
	}
	return result.FeedbackID, nil
}

// RegisterUser creates a user record and returns its id as the string the
// feedback soft reference stores.
func (c *Client) RegisterUser(ctx context.Context, email, name, password string) (string, error) {
	var result struct {
		UserID uint `json:"userId"`
	}
	err := c.do(ctx, http.MethodPost, "/api/users/register", map[string]interface{}{
		"email":    email,
		"name":     name,
		"password": password,
	}, nil, &result)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(result.UserID), 10), nil
}

// Login authenticates as an administrator; the session cookie is kept in
// the client's jar for subsequent dashboard calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, nil, nil)
}

// SetupAdmin creates an admin account, passing the setup token when given.
func (c *Client) SetupAdmin(ctx context.Context, email, name, password, setupToken string) error {
	var headers http.Header
	if setupToken != "" {
		headers = http.Header{"X-Setup-Token": []string{setupToken}}
	}
	return c.do(ctx, http.MethodPost, "/api/admin/setup", map[string]interface{}{
		"email":    email,
		"name":     name,
		"password": password,
	}, headers, nil)
}

// Filter narrows ListFeedback. Empty or "all" values mean no filtering.
type Filter struct {
	Category string
	Status   string
	Limit    int
}

func (c *Client) ListFeedback(ctx context.Context, filter Filter) ([]models.Feedback, error) {
	params := url.Values{}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	path := "/api/feedback"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list []models.Feedback
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateFeedback applies a partial update; nil fields are left untouched.
func (c *Client) UpdateFeedback(ctx context.Context, id uint, status, adminResponse *string) error {
	body := map[string]interface{}{}
	if status != nil {
		body["status"] = *status
	}
	if adminResponse != nil {
		body["adminResponse"] = *adminResponse
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/feedback/%d", id), body, nil, nil)
}

func (c *Client) DeleteFeedback(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/feedback/%d", id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, headers http.Header, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Code = envelope.Error
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
