package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"profilemax/internal/domain"
	"profilemax/internal/llm"
)

const EndpointAnalyzeMessage = "analyze-message"

var messageGenerateOptions = llm.GenerateOptions{Temperature: 0.85, MaxTokens: 700}

type MessageRequest struct {
	Conversation string
	ClientKey    string
}

// MessageService analiza una conversación y propone respuestas.
type MessageService struct {
	proxy *proxy
}

func NewMessageService(llmClient llm.LLMClient, opts ProxyOptions, logger *zap.Logger) *MessageService {
	return &MessageService{proxy: newProxy(llmClient, opts, logger)}
}

func (s *MessageService) AnalyzeMessage(ctx context.Context, req MessageRequest) (Result[domain.ConversationAnalysis], error) {
	if strings.TrimSpace(req.Conversation) == "" {
		return Result[domain.ConversationAnalysis]{}, ErrConversationRequired
	}

	return runProxy(ctx, s.proxy, proxyCall[domain.ConversationAnalysis]{
		endpoint:  EndpointAnalyzeMessage,
		prompt:    buildMessagePrompt(req.Conversation),
		options:   messageGenerateOptions,
		clientKey: req.ClientKey,
		mock:      mockConversationAnalysis,
	}), nil
}

func buildMessagePrompt(conversation string) string {
	return `You are an expert dating coach. Analyze this dating conversation and provide guidance.

Conversation:
` + conversation + `

Analyze the tone, identify any over-investment or neediness patterns, and suggest confident, calibrated replies.

Respond ONLY with valid JSON (no markdown):
{
  "tone": "<e.g. Friendly, Nervous, Confident, Needy>",
  "confidenceRating": "<Low / Medium / High>",
  "investmentLevel": "<Balanced / Slightly High / Over-invested>",
  "vibe": "<e.g. Playful banter, Deep conversation, Shallow small talk>",
  "improvements": ["<specific improvement>", "<specific improvement>"],
  "replies": [
    { "style": "Confident & Direct", "text": "<reply option 1>" },
    { "style": "Playful & Light", "text": "<reply option 2>" },
    { "style": "Intriguing", "text": "<reply option 3>" }
  ]
}`
}
