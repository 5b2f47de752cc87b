package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/melisekm/skwiki-search/internal/search"
)

type searchHit struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// HandleSearch answers GET /search?q=...&op=AND|OR&n=10.
func HandleSearch(loader *IndexLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()

		q := r.URL.Query().Get("q")
		if q == "" {
			http.Error(w, "missing required query parameter q", http.StatusBadRequest)
			return
		}

		mode := search.CombineAND
		if r.URL.Query().Get("op") == "OR" {
			mode = search.CombineOR
		}

		topK := 10
		if n := r.URL.Query().Get("n"); n != "" {
			parsed, err := strconv.Atoi(n)
			if err != nil || parsed < 0 {
				http.Error(w, "n must be a non-negative integer", http.StatusBadRequest)
				return
			}
			topK = parsed
		}

		start := time.Now()
		results, err := loader.Engine().Search(r.Context(), search.Query{Text: q, Mode: mode, TopK: topK})
		if err != nil {
			log.Printf("request %s: search failed: %s", requestID, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		loader.met.SearchDuration.Observe(time.Since(start).Seconds())
		loader.met.SearchResults.Observe(float64(len(results)))
		log.Printf("request %s: %q returned %d results", requestID, q, len(results))

		hits := make([]searchHit, len(results))
		for i, r := range results {
			hits[i] = searchHit{Title: r.Title, Score: r.Score}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hits)
	}
}
