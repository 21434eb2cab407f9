package client

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
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type PutResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Key       string `json:"key"`
	AccessURL string `json:"accessUrl"`
}

type GetResponse struct {
	Success    bool            `json:"success"`
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
	StoredDate time.Time       `json:"storedDate"`
}

// APIError is returned for every non-2xx answer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) Put(ctx context.Context, key string, data json.RawMessage) (result PutResponse, err error) {
	body, err := json.Marshal(struct {
		Key  string          `json:"key"`
		Data json.RawMessage `json:"data"`
	}{Key: key, Data: data})
	if err != nil {
		return result, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/setData", bytes.NewReader(body))
	if err != nil {
		return result, err
	}
	req.Header.Set("Content-Type", "application/json")

	err = c.do(req, &result)
	return result, err
}

func (c *Client) Get(ctx context.Context, id string) (result GetResponse, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get?id="+url.QueryEscape(id), nil)
	if err != nil {
		return result, err
	}
	err = c.do(req, &result)
	return result, err
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(bs, &envelope) == nil && len(envelope.Message) > 0 {
			apiErr.Message = envelope.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(bs))
		}
		return apiErr
	}

	if err = json.Unmarshal(bs, v); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
