// Command skwiki-search answers a single free-text query against a
// persisted index and prints the ranked results, one per line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/melisekm/skwiki-search/internal/config"
	"github.com/melisekm/skwiki-search/internal/index"
	"github.com/melisekm/skwiki-search/internal/preprocess"
	"github.com/melisekm/skwiki-search/internal/search"
	"github.com/melisekm/skwiki-search/internal/storage"
	"github.com/melisekm/skwiki-search/internal/vectorizer"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the search configuration file")
	orMode := flag.Bool("o", false, "combine query terms with OR instead of AND")
	topK := flag.Int("n", 10, "number of results to print")
	flag.Parse()

	query := flag.Arg(0)
	if query == "" {
		fmt.Fprintln(os.Stderr, "skwiki-search: a query string is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	results, err := runQuery(context.Background(), cfg, query, *orMode, *topK)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		fmt.Printf("%8.4f  %s\n", r.Score, r.Title)
	}
}

func runQuery(ctx context.Context, cfg config.Config, query string, orMode bool, topK int) ([]search.ScoredResult, error) {
	store, err := storage.NewStorage(cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey, cfg.StorageBucket)
	if err != nil {
		return nil, err
	}

	in, err := store.Open(ctx, cfg.InvertedIndexPath)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	decompressed, err := storage.DecompressCloserByName(in, cfg.InvertedIndexPath)
	if err != nil {
		return nil, err
	}
	defer decompressed.Close()

	idx, err := index.Load(decompressed)
	if err != nil {
		return nil, err
	}

	stopWordsFile, err := store.Open(ctx, cfg.StopWordsPath)
	if err != nil {
		return nil, err
	}
	defer stopWordsFile.Close()
	stopWords, err := preprocess.LoadStopWords(stopWordsFile)
	if err != nil {
		return nil, err
	}

	var lemmatizer preprocess.Lemmatizer
	if cfg.LemmatizerEndpoint != "" {
		lemmatizer = preprocess.NewRemoteLemmatizer(cfg.LemmatizerEndpoint)
	}

	// A query is not a corpus document: document_saver is dropped from
	// the stage list so running a search never appends to the
	// checkpoint log.
	queryStages, err := queryPipelineStages(cfg.PreprocessorComponents)
	if err != nil {
		return nil, err
	}
	pipeline := preprocess.NewPipeline(queryStages, stopWords, lemmatizer, nil)

	vec := vectorizer.New(idx, vectorizer.Config{SmoothIDF: true, L2Normalize: true})
	engine := search.New(idx, vec, pipeline)

	mode := search.CombineAND
	if orMode {
		mode = search.CombineOR
	}

	return engine.Search(ctx, search.Query{Text: query, Mode: mode, TopK: topK})
}

func queryPipelineStages(configured []string) ([]preprocess.Stage, error) {
	keys := make([]string, 0, len(configured))
	for _, k := range configured {
		if k == "document_saver" {
			continue
		}
		keys = append(keys, k)
	}
	return preprocess.ParseStages(keys)
}
