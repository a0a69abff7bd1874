package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"profilemax/internal/domain"
	"profilemax/internal/llm"
)

const EndpointOptimizeBio = "optimize-bio"

var bioGenerateOptions = llm.GenerateOptions{Temperature: 0.8, MaxTokens: 800}

// BioRequest es la entrada del endpoint de bio. ClientKey identifica al cliente para el rate limit.
type BioRequest struct {
	Bio       string
	Platform  string
	Prompts   string
	ClientKey string
}

// BioOptimizer produce reescrituras de bio. Lo implementan BioService (en proceso)
// y el cliente HTTP de la CLI.
type BioOptimizer interface {
	OptimizeBio(ctx context.Context, req BioRequest) (Result[domain.BioRewrite], error)
}

// BioService reescribe la bio en tres estilos usando el LLM, con mock como respaldo.
type BioService struct {
	proxy *proxy
}

func NewBioService(llmClient llm.LLMClient, opts ProxyOptions, logger *zap.Logger) *BioService {
	return &BioService{proxy: newProxy(llmClient, opts, logger)}
}

// OptimizeBio solo devuelve error si la bio está vacía; cualquier falla del LLM termina en mock.
func (s *BioService) OptimizeBio(ctx context.Context, req BioRequest) (Result[domain.BioRewrite], error) {
	if strings.TrimSpace(req.Bio) == "" {
		return Result[domain.BioRewrite]{}, ErrBioRequired
	}
	platform := strings.TrimSpace(req.Platform)
	if platform == "" {
		platform = domain.DefaultPlatform
	}

	bio := req.Bio
	return runProxy(ctx, s.proxy, proxyCall[domain.BioRewrite]{
		endpoint:  EndpointOptimizeBio,
		prompt:    buildBioPrompt(bio, platform, req.Prompts),
		options:   bioGenerateOptions,
		clientKey: req.ClientKey,
		mock:      func() domain.BioRewrite { return mockBioRewrite(bio) },
	}), nil
}

func buildBioPrompt(bio, platform, prompts string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert dating profile consultant. Analyze this %s bio and rewrite it in 3 distinct styles.\n\n", platform)
	fmt.Fprintf(&b, "Original bio:\n\"%s\"\n\n", bio)
	if p := strings.TrimSpace(prompts); p != "" {
		fmt.Fprintf(&b, "Profile prompts and answers (for context):\n%s\n\n", p)
	}
	b.WriteString(`Instructions:
- Improve clarity, reduce neediness, increase intrigue and confidence
- Each version should feel authentic and non-generic
- Keep each rewrite under 150 words

Respond ONLY with valid JSON in this exact format (no markdown, no explanation):
{
  "rewrites": {
    "confident": "...",
    "playful": "...",
    "warm": "..."
  },
  "bioScore": <number 0-100>,
  "analysis": "<one sentence critique of the original bio>"
}`)
	return b.String()
}
