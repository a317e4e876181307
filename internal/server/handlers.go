package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/coverwise/claimlens/internal/claims"
	"github.com/coverwise/claimlens/internal/models"
	"github.com/coverwise/claimlens/internal/storage"
)

// modelOutputMessage is returned when the language model's answer could not
// be parsed. Both error classes map to the same 500 status; only the message
// distinguishes them.
const modelOutputMessage = "error parsing response from the language model"

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	decision, err := s.pipeline.Process(r.Context(), req.Query)
	if err != nil {
		var moe *claims.ModelOutputError
		if errors.As(err, &moe) {
			s.logger.Error("model output unparseable", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, modelOutputMessage)
			return
		}
		s.logger.Error("query processing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, decision)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sourceCount, err := s.storage.CountSources(ctx)
	if err != nil {
		s.logger.Error("status: count sources failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	clauseCount, err := s.storage.CountClauses(ctx)
	if err != nil {
		s.logger.Error("status: count clauses failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]interface{}{
		"sources":           sourceCount,
		"clauses":           clauseCount,
		"vector_index_size": s.index.Size(),
		"config": map[string]interface{}{
			"embedding_dimensions": s.config.Embedding.Dimensions,
			"retrieval_top_k":      s.config.Retrieval.TopK,
			"llm_model":            s.config.LLM.Model,
			"database_path":        s.config.Storage.DatabasePath,
			"vector_index_path":    s.config.Storage.VectorIndexPath,
		},
	}
	if diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.VectorIndexPath,
	); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
