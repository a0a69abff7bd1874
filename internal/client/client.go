package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"profilemax/internal/domain"
	"profilemax/internal/service"
)

// APIError es una respuesta no exitosa del servicio con su cuerpo {error}.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("profilemax api: status=%d: %s", e.Status, e.Message)
}

// Client habla con el servicio HTTP de profilemax. Implementa service.BioOptimizer
// para que la CLI corra el análisis de perfil localmente.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

var _ service.BioOptimizer = (*Client)(nil)

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// OptimizeBio llama a POST /api/optimize-bio. Un 400 se traduce a service.ErrBioRequired.
func (c *Client) OptimizeBio(ctx context.Context, req service.BioRequest) (service.Result[domain.BioRewrite], error) {
	var out service.Result[domain.BioRewrite]
	if strings.TrimSpace(req.Bio) == "" {
		return out, service.ErrBioRequired
	}

	body := map[string]string{"bio": req.Bio, "platform": req.Platform}
	if req.Prompts != "" {
		body["prompts"] = req.Prompts
	}
	raw, header, err := c.post(ctx, "/api/optimize-bio", body)
	if err != nil {
		if isBadRequest(err) {
			return out, fmt.Errorf("%w: %v", service.ErrBioRequired, err)
		}
		return out, err
	}
	return decodeResult[domain.BioRewrite](raw, header, c.logger), nil
}

// AnalyzeMessage llama a POST /api/analyze-message.
func (c *Client) AnalyzeMessage(ctx context.Context, conversation string) (service.Result[domain.ConversationAnalysis], error) {
	var out service.Result[domain.ConversationAnalysis]
	if strings.TrimSpace(conversation) == "" {
		return out, service.ErrConversationRequired
	}

	raw, header, err := c.post(ctx, "/api/analyze-message", map[string]string{"conversation": conversation})
	if err != nil {
		if isBadRequest(err) {
			return out, fmt.Errorf("%w: %v", service.ErrConversationRequired, err)
		}
		return out, err
	}
	return decodeResult[domain.ConversationAnalysis](raw, header, c.logger), nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, http.Header, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		c.logger.Debug("profilemax api error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", msg),
		)
		return nil, nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if !json.Valid(respBody) {
		return nil, nil, fmt.Errorf("invalid json from %s", path)
	}
	return respBody, resp.Header, nil
}

// decodeResult arma el Result a partir del body y de los headers de origen, si el servidor los expone.
func decodeResult[T any](raw []byte, header http.Header, logger *zap.Logger) service.Result[T] {
	res := service.Result[T]{Raw: json.RawMessage(raw)}
	if err := json.Unmarshal(raw, &res.Value); err != nil {
		logger.Debug("response does not match schema", zap.Error(err))
	}
	if header.Get(service.SourceHeader) == service.SourceMock {
		res.Degraded = true
		res.Reason = header.Get(service.FallbackReasonHeader)
	}
	return res
}

func isBadRequest(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}
