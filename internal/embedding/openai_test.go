package embedding

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewOpenAIEncoder_Validation(t *testing.T) {
	if _, err := NewOpenAIEncoder("", "", "all-minilm", time.Second); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := NewOpenAIEncoder("key", "", "", time.Second); err == nil {
		t.Error("expected error without model")
	}
}

func TestOpenAIEncoder_EncodeBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "all-minilm" || len(req.Input) != 2 {
			t.Errorf("unexpected request %+v", req)
		}
		// Out of order on purpose.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","model":"all-minilm","data":[
			{"object":"embedding","index":1,"embedding":[0,1]},
			{"object":"embedding","index":0,"embedding":[1,0]}
		],"usage":{"prompt_tokens":4,"total_tokens":4}}`))
	}))
	defer srv.Close()

	enc, err := NewOpenAIEncoder("test-key", srv.URL+"/v1", "all-minilm", 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vs, err := enc.EncodeBatch(t.Context(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vs) != 2 || vs[0][0] != 1 || vs[1][1] != 1 {
		t.Errorf("expected vectors in input order, got %v", vs)
	}
	if enc.Model() != "openai:all-minilm" {
		t.Errorf("unexpected model %q", enc.Model())
	}
}

func TestOpenAIEncoder_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	enc, err := NewOpenAIEncoder("test-key", srv.URL+"/v1", "all-minilm", 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = enc.Encode(t.Context(), "hello")
	if !IsRetryable(err) {
		t.Errorf("expected retryable error, got %v", err)
	}
}

func TestOpenAIEncoder_ClientErrorIsFinal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"unknown model","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	enc, err := NewOpenAIEncoder("test-key", srv.URL+"/v1", "nope", 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = enc.Encode(t.Context(), "hello")
	if err == nil || IsRetryable(err) {
		t.Errorf("expected a non-retryable error, got %v", err)
	}
	var retry *RetryableError
	if errors.As(err, &retry) {
		t.Errorf("did not expect RetryableError, got %v", err)
	}
}
