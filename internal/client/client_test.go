package client

import (
	"context"
	"encoding/json"
	"errors"
	"go/parser"
	"go/token"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"

	"profilemax/internal/service"
)

func TestClientOptimizeBio(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/optimize-bio" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(service.SourceHeader, service.SourceMock)
		w.Header().Set(service.FallbackReasonHeader, service.ReasonRateLimited)
		_, _ = w.Write([]byte(`{"rewrites":{"confident":"c","playful":"p","warm":"w"},"bioScore":61.6,"analysis":"a"}`))
	}))
	defer server.Close()

	c := New(server.URL+"/", 0, zap.NewNop())
	res, err := c.OptimizeBio(context.Background(), service.BioRequest{Bio: "hello", Platform: "Hinge", Prompts: "tacos"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotBody["bio"] != "hello" || gotBody["platform"] != "Hinge" || gotBody["prompts"] != "tacos" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
	if res.Value.BioScore != 61.6 || res.Value.Rewrites.Playful != "p" {
		t.Fatalf("unexpected value %+v", res.Value)
	}
	if !res.Degraded || res.Reason != service.ReasonRateLimited {
		t.Fatalf("expected degraded rate-limited result, got %+v", res)
	}
}

func TestClientOptimizeBioBlankSkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected")
	}))
	defer server.Close()

	c := New(server.URL, 0, zap.NewNop())
	if _, err := c.OptimizeBio(context.Background(), service.BioRequest{Bio: " "}); !errors.Is(err, service.ErrBioRequired) {
		t.Fatalf("expected ErrBioRequired, got %v", err)
	}
}

func TestClientAnalyzeMessageLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(service.SourceHeader, service.SourceLive)
		_, _ = w.Write([]byte(`{"tone":"Warm","confidenceRating":"High","investmentLevel":"Balanced","vibe":"Flirty","improvements":["a"],"replies":[{"style":"s","text":"t"}]}`))
	}))
	defer server.Close()

	c := New(server.URL, 0, zap.NewNop())
	res, err := c.AnalyzeMessage(context.Background(), "Them: hi")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Degraded || res.Value.Tone != "Warm" || len(res.Value.Replies) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestClientAPIErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"Conversation is required"}`, wantErr: service.ErrConversationRequired},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"could not analyze message"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c := New(server.URL, 0, zap.NewNop())
			_, err := c.AnalyzeMessage(context.Background(), "hi")
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			var apiErr *APIError
			if tc.wantErr == nil && (!errors.As(err, &apiErr) || apiErr.Status != tc.status) {
				t.Fatalf("expected APIError with status %d, got %v", tc.status, err)
			}
		})
	}
}

func TestClientRejectsInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer server.Close()

	c := New(server.URL, 0, zap.NewNop())
	if _, err := c.AnalyzeMessage(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error for non-json body")
	}
}

func TestClientDrivesProfileAnalyzer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rewrites":{"confident":"c","playful":"p","warm":"w"},"bioScore":90,"analysis":"a"}`))
	}))
	defer server.Close()

	analyzer := service.NewProfileAnalyzer(New(server.URL, 0, zap.NewNop()), nil, zap.NewNop())
	got, err := analyzer.Analyze(context.Background(), service.ProfileInput{Bio: "hello there", Photos: []string{"beach.jpg"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Score.BioQuality != 90 {
		t.Fatalf("expected server bio score to drive bio quality, got %d", got.Score.BioQuality)
	}
}

func TestClientDoesNotImportServerPackages(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			if path == "profilemax/internal/http" || strings.HasPrefix(path, "github.com/gin-gonic/") {
				t.Fatalf("%s imports %s; the CLI client must not link the HTTP server", name, path)
			}
		}
	}
}
