package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"profilemax/internal/domain"
	"profilemax/internal/llm"
)

type fakeBioOptimizer struct {
	result Result[domain.BioRewrite]
	err    error
	calls  int
	last   BioRequest
}

func (f *fakeBioOptimizer) OptimizeBio(ctx context.Context, req BioRequest) (Result[domain.BioRewrite], error) {
	f.calls++
	f.last = req
	return f.result, f.err
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestProfileAnalyzerRejectsEmptyProfile(t *testing.T) {
	bio := &fakeBioOptimizer{}
	a := NewProfileAnalyzer(bio, nil, zap.NewNop())

	_, err := a.Analyze(context.Background(), ProfileInput{Bio: "   "})
	if !errors.Is(err, ErrEmptyProfile) {
		t.Fatalf("expected ErrEmptyProfile, got %v", err)
	}
	if bio.calls != 0 {
		t.Fatalf("expected no bio call")
	}
}

func TestProfileAnalyzerPhotosOnly(t *testing.T) {
	bio := &fakeBioOptimizer{}
	a := NewProfileAnalyzer(bio, nil, zap.NewNop())
	a.now = fixedClock

	got, err := a.Analyze(context.Background(), ProfileInput{Photos: []string{"photo2.jpg", "dog.jpeg", "photo1.jpg"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if bio.calls != 0 {
		t.Fatalf("bio optimizer must not be called without a bio")
	}
	if got.Platform != domain.PlatformTinder {
		t.Fatalf("expected default platform, got %q", got.Platform)
	}
	if got.BioResults != nil {
		t.Fatalf("expected nil bio results, got %s", got.BioResults)
	}
	if len(got.PhotoResults) != 3 || got.PhotoResults[0].Recommendation != domain.RecommendationPrimary {
		t.Fatalf("unexpected photo results %+v", got.PhotoResults)
	}
	if got.Score.BioQuality != 0 {
		t.Fatalf("expected bio quality 0 without bio, got %d", got.Score.BioQuality)
	}
	if got.Timestamp != fixedClock().UnixMilli() {
		t.Fatalf("unexpected timestamp %d", got.Timestamp)
	}

	body, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal analysis: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal analysis: %v", err)
	}
	if string(decoded["bioResults"]) != "null" {
		t.Fatalf("expected bioResults null, got %s", decoded["bioResults"])
	}
}

func TestProfileAnalyzerUsesUpstreamBioScore(t *testing.T) {
	raw := json.RawMessage(`{"rewrites":{"confident":"c","playful":"p","warm":"w"},"bioScore":88,"analysis":"a"}`)
	bio := &fakeBioOptimizer{result: Result[domain.BioRewrite]{
		Value: domain.BioRewrite{BioScore: 88},
		Raw:   raw,
	}}
	a := NewProfileAnalyzer(bio, nil, zap.NewNop())

	got, err := a.Analyze(context.Background(), ProfileInput{
		Platform:  "Bumble",
		Bio:       longBio,
		Prompts:   "My simple pleasures: tacos",
		Photos:    []string{"beach.jpg"},
		ClientKey: "1.1.1.1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if bio.calls != 1 || bio.last.Platform != "Bumble" || bio.last.Prompts != "My simple pleasures: tacos" || bio.last.ClientKey != "1.1.1.1" {
		t.Fatalf("unexpected bio request %+v", bio.last)
	}
	if string(got.BioResults) != string(raw) {
		t.Fatalf("expected bio payload verbatim, got %s", got.BioResults)
	}
	if got.Score.BioQuality != 88 {
		t.Fatalf("expected upstream bio quality 88, got %d", got.Score.BioQuality)
	}
	if got.Degraded {
		t.Fatalf("expected live analysis")
	}

	entry := got.HistoryEntry()
	if entry.PhotoCount != 1 || entry.BioLength != textLength(longBio) || entry.Score != got.Score.Overall || entry.Platform != "Bumble" {
		t.Fatalf("unexpected history entry %+v", entry)
	}
}

func TestProfileAnalyzerFallsBackToEstimateWithMockService(t *testing.T) {
	svc := NewBioService(&llm.MockClient{Err: errors.New("down")}, ProxyOptions{}, zap.NewNop())
	a := NewProfileAnalyzer(svc, nil, zap.NewNop())

	got, err := a.Analyze(context.Background(), ProfileInput{Bio: "one two three four five"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got.Degraded || got.Reason != ReasonUpstreamError {
		t.Fatalf("expected degraded analysis with upstream_error, got degraded=%v reason=%q", got.Degraded, got.Reason)
	}
	// el mock trae bioScore 49 (45 + 5*0.8)
	if got.Score.BioQuality != 49 {
		t.Fatalf("expected mock bio score 49, got %d", got.Score.BioQuality)
	}
}

func TestProfileAnalyzerWrapsOptimizerError(t *testing.T) {
	bio := &fakeBioOptimizer{err: errors.New("server unreachable")}
	a := NewProfileAnalyzer(bio, nil, zap.NewNop())

	_, err := a.Analyze(context.Background(), ProfileInput{Bio: "hello there"})
	if err == nil || errors.Is(err, ErrEmptyProfile) {
		t.Fatalf("expected wrapped optimizer error, got %v", err)
	}
}

func TestProfileAnalyzerCapsPhotos(t *testing.T) {
	a := NewProfileAnalyzer(&fakeBioOptimizer{}, nil, zap.NewNop())
	got, err := a.Analyze(context.Background(), ProfileInput{Photos: []string{"1", "2", "3", "4", "5", "6", "7"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.PhotoResults) != domain.MaxPhotos {
		t.Fatalf("expected %d photos, got %d", domain.MaxPhotos, len(got.PhotoResults))
	}
	if got.HistoryEntry().PhotoCount != domain.MaxPhotos {
		t.Fatalf("expected history photo count %d", domain.MaxPhotos)
	}
}
