package llamacpp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/samcharles93/interviewer/internal/generation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
	)
}

// fakeServer tokenizes one id per byte and answers completions with cont.
type fakeServer struct {
	cont string

	mu          sync.Mutex
	completions []map[string]any
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tokenize", func(w http.ResponseWriter, r *http.Request) {
		var req tokenizeRequest
		decode(t, r, &req)
		writeJSON(w, tokenizeResponse{Tokens: bytesToIDs(req.Content)})
	})
	mux.HandleFunc("/detokenize", func(w http.ResponseWriter, r *http.Request) {
		var req detokenizeRequest
		decode(t, r, &req)
		writeJSON(w, detokenizeResponse{Content: idsToString(req.Tokens)})
	})
	mux.HandleFunc("/completion", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		decode(t, r, &req)
		f.mu.Lock()
		f.completions = append(f.completions, req)
		f.mu.Unlock()
		writeJSON(w, completionResponse{Content: f.cont, Tokens: bytesToIDs(f.cont)})
	})
	return mux
}

func decode(t *testing.T, r *http.Request, v any) {
	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, v); err != nil {
		t.Errorf("decode %s: %v", r.URL.Path, err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	b, _ := json.Marshal(v)
	_, _ = w.Write(b)
}

func bytesToIDs(s string) []int {
	ids := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		ids[i] = int(s[i])
	}
	return ids
}

func idsToString(ids []int) string {
	b := make([]byte, len(ids))
	for i, id := range ids {
		b[i] = byte(id)
	}
	return string(b)
}

func TestModelAdapterStripsEchoedPrompt(t *testing.T) {
	t.Parallel()

	f := &fakeServer{cont: "  What is the time complexity?\n"}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	c, err := New(srv.URL, "", 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	res, err := generation.NewModelAdapter(c).Generate(context.Background(), "Problem: two sum", generation.ServeParams(32, 0.7))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Text != "What is the time complexity?" {
		t.Fatalf("Generate() = %q", res.Text)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.completions) != 1 {
		t.Fatalf("expected one completion call, got %d", len(f.completions))
	}
	req := f.completions[0]
	if req["n_predict"] != float64(32) || req["return_tokens"] != true || req["top_p"] != 0.9 || req["repeat_penalty"] != 1.1 {
		t.Fatalf("unexpected completion request: %v", req)
	}
	if _, ok := req["prompt"].([]any); !ok {
		t.Fatalf("model style should send token ids, got %T", req["prompt"])
	}
}

func TestPipelineComplete(t *testing.T) {
	t.Parallel()

	f := &fakeServer{cont: " 4"}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	c, err := New(srv.URL, "", 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := c.Complete(context.Background(), "2+2=", generation.ServeParams(5, 0.7))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != " 4" {
		t.Fatalf("Complete() = %q", got)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if diff := cmp.Diff("2+2=", f.completions[0]["prompt"]); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestMaxLengthBudget(t *testing.T) {
	t.Parallel()

	f := &fakeServer{cont: "x"}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	c, err := New(srv.URL, "", 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	params := generation.InteractiveParams()
	params.MaxLength = 10
	if _, err := c.Complete(context.Background(), "abcd", params); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	// A prompt at the length limit leaves nothing to generate.
	long := strings.Repeat("a", 10)
	out, err := c.Generate(context.Background(), bytesToIDs(long), params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("Generate() returned %d ids, want the 10 input ids", len(out))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.completions) != 1 {
		t.Fatalf("expected a single completion call, got %d", len(f.completions))
	}
	if f.completions[0]["n_predict"] != float64(6) {
		t.Fatalf("n_predict = %v, want 6", f.completions[0]["n_predict"])
	}
}
