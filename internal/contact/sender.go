package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// HTTPSender posts the form as JSON to Endpoint.
type HTTPSender struct {
	Client   *http.Client
	Endpoint string
}

func NewHTTPSender(endpoint string) *HTTPSender {
	return &HTTPSender{Client: http.DefaultClient, Endpoint: endpoint}
}

func (s *HTTPSender) Send(ctx context.Context, f Fields) (int, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return 0, fmt.Errorf("encode contact payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post %s: %w", s.Endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
