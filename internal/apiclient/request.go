package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("status %d", e.Status)
}

type request struct {
	client *http.Client
	url    string
	method string
	token  string
	body   any
	logger *zap.Logger
}

func newRequest(c *http.Client, url string, logger *zap.Logger) *request {
	return &request{client: c, url: url, method: http.MethodGet, logger: logger}
}

func (r *request) Post(body any) *request {
	r.method = http.MethodPost
	r.body = body

	return r
}

func (r *request) Token(token string) *request {
	r.token = token

	return r
}

func (r *request) do(ctx context.Context) (*http.Response, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	res, err := r.client.Do(req)
	if err != nil {
		r.logger.Info("request failed", zap.String("method", r.method), zap.String("url", r.url), zap.Error(err))
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		r.logger.Warn("unexpected status", zap.String("method", r.method), zap.String("url", r.url), zap.Int("status", res.StatusCode))

		se := &StatusError{Status: res.StatusCode}
		_ = json.NewDecoder(res.Body).Decode(se)
		return nil, se
	}

	r.logger.Debug("request done", zap.String("method", r.method), zap.String("url", r.url), zap.Int("status", res.StatusCode))

	return res, nil
}

// JSON performs the request and decodes the response body into obj.
func (r *request) JSON(ctx context.Context, obj any) error {
	res, err := r.do(ctx)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if obj == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(obj)
}
