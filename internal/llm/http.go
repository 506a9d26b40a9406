package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned when a provider answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model returned status %d: %s", e.StatusCode, e.Body)
}

// postJSON marshals reqBody, POSTs it and decodes the reply into respBody
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, reqBody, respBody interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode > 299 {
		return &StatusError{StatusCode: res.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, respBody); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
