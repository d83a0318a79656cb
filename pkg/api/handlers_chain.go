package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/dd0wney/cluso-chaintrace/pkg/chain"
)

// ChainResponse is the traversal result for one start node.
//
// An unknown start id is not an error: the chain is simply empty and Found
// is false. Callers treat that as "nothing highlighted".
type ChainResponse struct {
	Start string       `json:"start"`
	Found bool         `json:"found"`
	Steps []chain.Step `json:"steps"`
	Count int          `json:"count"`
	Time  string       `json:"time"`
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	startID := strings.TrimPrefix(r.URL.Path, "/api/v1/chain/")
	if startID == "" {
		s.respondError(w, http.StatusBadRequest, "Start node id is required")
		return
	}

	cat := s.Catalog()
	start := time.Now()
	steps := chain.Traverse(cat, startID)
	elapsed := time.Since(start)

	s.registry.RecordTraversal(len(steps), elapsed)

	_, found := cat.Get(startID)
	s.respondJSON(w, http.StatusOK, ChainResponse{
		Start: startID,
		Found: found,
		Steps: steps,
		Count: len(steps),
		Time:  elapsed.String(),
	})
}
