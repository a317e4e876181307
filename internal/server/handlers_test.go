package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"github.com/coverwise/claimlens/internal/claims"
	"github.com/coverwise/claimlens/internal/config"
	"github.com/coverwise/claimlens/internal/embedding"
	"github.com/coverwise/claimlens/internal/llm"
	"github.com/coverwise/claimlens/internal/models"
	"github.com/coverwise/claimlens/internal/storage"
	"github.com/coverwise/claimlens/internal/vector"
)

const testDims = 8

// newTestServer builds a server over in-memory components, with the given
// clause texts pre-indexed and the model client scripted with responses.
func newTestServer(t *testing.T, responses []string, clauses ...string) *Server {
	t.Helper()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "claimlens.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	emb := embedding.NewMockEmbedder(testDims)
	idx, err := vector.NewMemoryIndex(testDims)
	if err != nil {
		t.Fatalf("new index: %v", err)
	}

	ctx := context.Background()
	if len(clauses) > 0 {
		vecs, err := emb.EmbedBatch(ctx, clauses)
		if err != nil {
			t.Fatalf("embed clauses: %v", err)
		}
		records := make([]*models.Clause, len(clauses))
		ids := make([]string, len(clauses))
		for i, text := range clauses {
			ids[i] = strconv.Itoa(i)
			records[i] = &models.Clause{ID: ids[i], Content: text, Position: i}
		}
		if err := st.BatchCreateClauses(ctx, records); err != nil {
			t.Fatalf("store clauses: %v", err)
		}
		if err := idx.Add(ctx, ids, vecs); err != nil {
			t.Fatalf("index clauses: %v", err)
		}
	}

	client := llm.NewMockClient(responses...)
	pipeline := claims.NewPipeline(
		claims.NewStructurer(client),
		claims.NewRetriever(emb, idx, st, 5, nil),
		claims.NewSynthesizer(client),
		nil,
	)

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return NewServer(pipeline, st, idx, cfg, zap.NewNop())
}

func postQuery(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleQuerySuccess(t *testing.T) {
	srv := newTestServer(t,
		[]string{
			`{"age": 46, "medical_procedure": "knee surgery"}`,
			`{"decision": "Approved", "amount": "80% of the sum insured", "justification": [{"clause_text": "Knee surgery is covered at 80%.", "reasoning": "The procedure is explicitly covered."}]}`,
		},
		"Knee surgery is covered at 80%.",
		"Dental procedures are excluded.",
	)

	rec := postQuery(t, srv, `{"query": "46M, knee surgery, 3-month policy"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var decision models.Decision
	if err := json.Unmarshal(rec.Body.Bytes(), &decision); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if decision.Decision != models.DecisionApproved {
		t.Errorf("expected Approved, got %q", decision.Decision)
	}
	if len(decision.Justification) != 1 {
		t.Errorf("expected 1 justification, got %d", len(decision.Justification))
	}
}

func TestHandleQueryModelOutputError(t *testing.T) {
	srv := newTestServer(t, []string{"I cannot answer that."}, "clause")

	rec := postQuery(t, srv, `{"query": "anything"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != modelOutputMessage {
		t.Errorf("expected %q, got %q", modelOutputMessage, body["error"])
	}
}

func TestHandleQueryPipelineError(t *testing.T) {
	srv := newTestServer(t, nil, "clause") // no scripted responses: Generate fails

	rec := postQuery(t, srv, `{"query": "anything"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == modelOutputMessage || body["error"] == "" {
		t.Errorf("expected original error text, got %q", body["error"])
	}
}

func TestHandleQueryBadRequest(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := postQuery(t, srv, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}

	rec = postQuery(t, srv, `{"query": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty query, got %d", rec.Code)
	}
}

func TestHandleQueryEmptyIndex(t *testing.T) {
	srv := newTestServer(t, []string{
		`{"age": 30}`,
		`{"decision": "Rejected", "amount": "Not Applicable", "justification": []}`,
	})

	rec := postQuery(t, srv, `{"query": "30F, appendectomy"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var decision models.Decision
	if err := json.Unmarshal(rec.Body.Bytes(), &decision); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if decision.Decision != models.DecisionRejected {
		t.Errorf("expected Rejected, got %q", decision.Decision)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t, nil, "clause one", "clause two")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var status map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status["clauses"] != float64(2) {
		t.Errorf("expected 2 clauses, got %v", status["clauses"])
	}
	if status["vector_index_size"] != float64(2) {
		t.Errorf("expected index size 2, got %v", status["vector_index_size"])
	}
}
