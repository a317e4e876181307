package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/coverwise/claimlens/internal/claims"
	"github.com/coverwise/claimlens/internal/config"
	"github.com/coverwise/claimlens/internal/embedding"
	"github.com/coverwise/claimlens/internal/extract"
	"github.com/coverwise/claimlens/internal/ingest"
	"github.com/coverwise/claimlens/internal/llm"
	"github.com/coverwise/claimlens/internal/models"
	"github.com/coverwise/claimlens/internal/server"
	"github.com/coverwise/claimlens/internal/storage"
	"github.com/coverwise/claimlens/internal/vector"
)

const e2eDimensions = 16

type components struct {
	store storage.Storage
	emb   embedding.Embedder
	idx   vector.Index
	ing   *ingest.Ingester
}

func setupComponents(t *testing.T, docDir string) *components {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "claimlens.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	emb := embedding.NewMockEmbedder(e2eDimensions)
	idx, err := vector.NewMemoryIndex(e2eDimensions)
	if err != nil {
		t.Fatal(err)
	}

	loader := ingest.NewLoader(extract.NewExtractor(), nil)
	ing := ingest.NewIngester(loader, store, emb, idx, docDir)
	return &components{store: store, emb: emb, idx: idx, ing: ing}
}

func TestE2E_ClaimDecisions(t *testing.T) {
	corpus := BuildCorpus()
	if err := corpus.Validate(); err != nil {
		t.Fatal(err)
	}

	docDir := t.TempDir()
	if err := WriteCorpus(docDir, corpus); err != nil {
		t.Fatal(err)
	}

	c := setupComponents(t, docDir)
	ctx := context.Background()
	if err := c.ing.Run(ctx); err != nil {
		t.Fatalf("ingestion failed: %v", err)
	}
	count, err := c.store.CountClauses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if int(count) != corpus.TotalClauses {
		t.Fatalf("expected %d clauses, got %d", corpus.TotalClauses, count)
	}

	for _, tc := range corpus.Cases {
		t.Run(tc.Description, func(t *testing.T) {
			client := llm.NewMockClient(tc.StructuredJSON, tc.DecisionJSON)
			// The mock embedder hashes whole strings, so similarity ranking
			// between a query and a clause is arbitrary. topK spans the corpus
			// so every scenario's clause reaches the synthesis prompt.
			pipeline := claims.NewPipeline(
				claims.NewStructurer(client),
				claims.NewRetriever(c.emb, c.idx, c.store, corpus.TotalClauses, nil),
				claims.NewSynthesizer(client),
				nil,
			)
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			srv := server.NewServer(pipeline, c.store, c.idx, cfg, zap.NewNop())

			body, _ := json.Marshal(models.QueryRequest{Query: tc.Query})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/query", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			var decision models.Decision
			if err := json.Unmarshal(rec.Body.Bytes(), &decision); err != nil {
				t.Fatalf("decode decision: %v", err)
			}
			if decision.Decision != tc.ExpectedDecision {
				t.Errorf("expected decision %q, got %q", tc.ExpectedDecision, decision.Decision)
			}

			// The second prompt is the synthesis prompt; the expected clause
			// must have been retrieved into it.
			prompts := client.Prompts()
			if len(prompts) != 2 {
				t.Fatalf("expected 2 model calls, got %d", len(prompts))
			}
			if !strings.Contains(prompts[1], tc.ExpectedClause) {
				t.Errorf("synthesis prompt missing clause %q:\n%s", tc.ExpectedClause, prompts[1])
			}
			if !strings.Contains(prompts[0], tc.Query) {
				t.Errorf("structuring prompt missing query %q", tc.Query)
			}
		})
	}
}

func TestE2E_IngestionGuardAndPersistence(t *testing.T) {
	corpus := BuildCorpus()
	docDir := t.TempDir()
	if err := WriteCorpus(docDir, corpus); err != nil {
		t.Fatal(err)
	}

	c := setupComponents(t, docDir)
	ctx := context.Background()
	if err := c.ing.Run(ctx); err != nil {
		t.Fatalf("ingestion failed: %v", err)
	}
	if err := c.ing.Run(ctx); err != nil {
		t.Fatalf("second ingestion failed: %v", err)
	}
	count, err := c.store.CountClauses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if int(count) != corpus.TotalClauses {
		t.Fatalf("guard failed: expected %d clauses after re-run, got %d", corpus.TotalClauses, count)
	}

	// Save, reload into a fresh index, and verify retrieval still works.
	indexPath := filepath.Join(t.TempDir(), "vectors.bin")
	if err := c.idx.Save(indexPath); err != nil {
		t.Fatalf("save index: %v", err)
	}
	fresh, err := vector.NewMemoryIndex(e2eDimensions)
	if err != nil {
		t.Fatal(err)
	}
	if err := fresh.Load(indexPath); err != nil {
		t.Fatalf("load index: %v", err)
	}
	if fresh.Size() != corpus.TotalClauses {
		t.Fatalf("expected %d vectors after reload, got %d", corpus.TotalClauses, fresh.Size())
	}

	retriever := claims.NewRetriever(c.emb, fresh, c.store, 3, nil)
	clause := corpus.Documents[0].Clauses[0]
	got, err := retriever.Retrieve(ctx, clause)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(got) == 0 || got[0] != clause {
		t.Fatalf("expected %q as top hit, got %v", clause, got)
	}
}
