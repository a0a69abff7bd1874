package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"profilemax/internal/llm"
	"profilemax/internal/metrics"
)

var (
	ErrBioRequired          = errors.New("bio is required")
	ErrConversationRequired = errors.New("conversation is required")
	ErrEmptyProfile         = errors.New("profile needs a bio or photos")
)

// Headers opcionales con los que el servidor indica si la respuesta vino del LLM o del mock.
const (
	SourceHeader         = "X-Profilemax-Source"
	FallbackReasonHeader = "X-Profilemax-Fallback-Reason"

	SourceLive = "live"
	SourceMock = "mock"
)

// Motivos por los que una respuesta sale del mock en lugar del LLM.
const (
	ReasonNoCredential  = "no_credential"
	ReasonRateLimited   = "rate_limited"
	ReasonUpstreamError = "upstream_error"
	ReasonParseError    = "parse_error"
)

// Result es la salida etiquetada de un proxy: el valor real o el mock con Degraded=true.
// Raw es el JSON que se le devuelve al cliente sin tocar.
type Result[T any] struct {
	Value    T
	Raw      json.RawMessage
	Degraded bool
	Reason   string
}

// Source devuelve "live" o el motivo del mock.
func (r Result[T]) Source() string {
	if !r.Degraded {
		return SourceLive
	}
	return r.Reason
}

// ProxyOptions agrupa lo que comparten los servicios que hablan con el LLM.
type ProxyOptions struct {
	MockMode bool
	Limiter  UpstreamLimiter
	Metrics  *metrics.Recorder
}

type proxy struct {
	llmClient llm.LLMClient
	mockMode  bool
	limiter   UpstreamLimiter
	metrics   *metrics.Recorder
	logger    *zap.Logger
}

func newProxy(llmClient llm.LLMClient, opts ProxyOptions, logger *zap.Logger) *proxy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &proxy{
		llmClient: llmClient,
		mockMode:  opts.MockMode || llmClient == nil,
		limiter:   opts.Limiter,
		metrics:   opts.Metrics,
		logger:    logger,
	}
}

type proxyCall[T any] struct {
	endpoint  string
	prompt    string
	options   llm.GenerateOptions
	clientKey string
	mock      func() T
}

// runProxy llama al LLM y cae al mock ante falta de credencial, rate limit, error o JSON inválido.
// Nunca devuelve error: la degradación queda marcada en el Result.
func runProxy[T any](ctx context.Context, p *proxy, call proxyCall[T]) Result[T] {
	if p.mockMode {
		return fallback(p, call, ReasonNoCredential)
	}

	key := call.clientKey
	if key == "" {
		key = "anonymous"
	}
	if p.limiter != nil && !p.limiter.Allow(ctx, call.endpoint+":"+key) {
		p.logger.Info("upstream rate limit reached, serving mock",
			zap.String("endpoint", call.endpoint),
			zap.String("client", key),
		)
		return fallback(p, call, ReasonRateLimited)
	}

	start := time.Now()
	text, err := p.llmClient.Generate(ctx, call.prompt, call.options)
	p.metrics.ObserveUpstream(call.endpoint, time.Since(start), err)
	if err != nil {
		p.logger.Warn("llm call failed, serving mock",
			zap.String("endpoint", call.endpoint),
			zap.Error(err),
		)
		return fallback(p, call, ReasonUpstreamError)
	}

	raw, err := parseJSONPayload(text)
	if err != nil {
		p.logger.Warn("llm json parse failed, serving mock",
			zap.String("endpoint", call.endpoint),
			zap.String("response", text),
			zap.Error(err),
		)
		return fallback(p, call, ReasonParseError)
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		// Se devuelve igual: el payload se reenvía sin validar el schema.
		p.logger.Debug("llm payload does not match schema",
			zap.String("endpoint", call.endpoint),
			zap.Error(err),
		)
	}

	p.metrics.ObserveProxy(call.endpoint, SourceLive)
	return Result[T]{Value: value, Raw: raw}
}

func fallback[T any](p *proxy, call proxyCall[T], reason string) Result[T] {
	value := call.mock()
	raw, err := json.Marshal(value)
	if err != nil {
		p.logger.Error("marshal mock payload", zap.String("endpoint", call.endpoint), zap.Error(err))
		raw = json.RawMessage("{}")
	}
	p.metrics.ObserveProxy(call.endpoint, reason)
	return Result[T]{Value: value, Raw: raw, Degraded: true, Reason: reason}
}
