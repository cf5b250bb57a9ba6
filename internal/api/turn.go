package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/voicechat/internal/errors"
	"github.com/diogo/voicechat/internal/models"
)

const (
	// audioFieldName is the multipart field the backend reads the clip from
	audioFieldName = "audio"
	// audioFileName is the filename reported in the multipart part
	audioFileName = "recording.wav"
	// maxErrorBody caps how much of an error response is kept for diagnostics
	maxErrorBody = 4096
)

// SendAudio submits one recorded utterance as a multipart upload and
// returns the validated reply
func (c *Client) SendAudio(ctx context.Context, wav []byte) (*models.TurnReply, error) {
	if len(wav) == 0 {
		return nil, apierrors.NewEmptyCaptureError()
	}
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(audioFieldName, audioFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}
	_ = writer.Close()

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.doTurn(req, endpoint)
}

// SendText submits a typed message and returns the validated reply
func (c *Client) SendText(ctx context.Context, message string) (*models.TurnReply, error) {
	if message == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doTurn(req, endpoint)
}

// doTurn executes one request and validates the response
func (c *Client) doTurn(req *http.Request, endpoint string) (*models.TurnReply, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, "chat request failed", err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apierrors.NewHTTPStatusError(resp.StatusCode, endpoint, string(errorBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, "failed to read response body", err)
	}

	return parseTurnReply(body)
}
