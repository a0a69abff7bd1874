package service

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	fenceJSONRe = regexp.MustCompile("```json\n?")
	fenceRe     = regexp.MustCompile("```\n?")
)

var errEmptyLLMResponse = errors.New("empty llm response")

// cleanLLMJSONResponse quita los fences ```json / ``` (estén donde estén) y el BOM.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// BOM (por si acaso)
	s = strings.TrimPrefix(s, "\uFEFF")

	s = fenceJSONRe.ReplaceAllString(s, "")
	s = fenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// parseJSONPayload limpia la respuesta y exige JSON válido. Devuelve el documento tal cual,
// sin validar el schema.
func parseJSONPayload(raw string) (json.RawMessage, error) {
	cleaned := cleanLLMJSONResponse(raw)
	if cleaned == "" {
		return nil, errEmptyLLMResponse
	}
	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, err
	}
	return json.RawMessage(cleaned), nil
}
