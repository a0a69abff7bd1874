package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	Calls       int
	LastPrompt  string
	LastOptions GenerateOptions
}

func (m *MockClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	m.LastOptions = opts
	return m.Response, m.Err
}
