package main

import (
	"context"
	"sync"
	"time"

	"github.com/melisekm/skwiki-search/internal/config"
	"github.com/melisekm/skwiki-search/internal/index"
	"github.com/melisekm/skwiki-search/internal/metrics"
	"github.com/melisekm/skwiki-search/internal/preprocess"
	"github.com/melisekm/skwiki-search/internal/search"
	"github.com/melisekm/skwiki-search/internal/storage"
	"github.com/melisekm/skwiki-search/internal/vectorizer"
)

// IndexLoader holds the currently-served index and engine, reloading
// them from storage on a ticker the same way cmd/qrank-webserver's
// DataLoader periodically re-reads its stats file without dropping
// requests made against the previous snapshot mid-reload.
type IndexLoader struct {
	cfg   config.Config
	store storage.Storage
	met   *metrics.Metrics

	mutex  sync.RWMutex
	engine *search.Engine
}

func NewIndexLoader(cfg config.Config, store storage.Storage, met *metrics.Metrics) (*IndexLoader, error) {
	il := &IndexLoader{cfg: cfg, store: store, met: met}
	if err := il.Reload(context.Background()); err != nil {
		return nil, err
	}
	return il, nil
}

func (il *IndexLoader) Engine() *search.Engine {
	il.mutex.RLock()
	defer il.mutex.RUnlock()
	return il.engine
}

func (il *IndexLoader) Reload(ctx context.Context) error {
	in, err := il.store.Open(ctx, il.cfg.InvertedIndexPath)
	if err != nil {
		return err
	}
	defer in.Close()
	decompressed, err := storage.DecompressCloserByName(in, il.cfg.InvertedIndexPath)
	if err != nil {
		return err
	}
	defer decompressed.Close()

	idx, err := index.Load(decompressed)
	if err != nil {
		return err
	}

	stopWordsFile, err := il.store.Open(ctx, il.cfg.StopWordsPath)
	if err != nil {
		return err
	}
	defer stopWordsFile.Close()
	stopWords, err := preprocess.LoadStopWords(stopWordsFile)
	if err != nil {
		return err
	}

	var lemmatizer preprocess.Lemmatizer
	if il.cfg.LemmatizerEndpoint != "" {
		lemmatizer = preprocess.NewRemoteLemmatizer(il.cfg.LemmatizerEndpoint)
	}

	stages, err := preprocess.ParseStages(queryStages(il.cfg.PreprocessorComponents))
	if err != nil {
		return err
	}
	pipeline := preprocess.NewPipeline(stages, stopWords, lemmatizer, nil)
	vec := vectorizer.New(idx, vectorizer.Config{SmoothIDF: true, L2Normalize: true})
	engine := search.New(idx, vec, pipeline)

	il.mutex.Lock()
	il.engine = engine
	il.mutex.Unlock()

	il.met.IndexDocuments.Set(float64(idx.DocumentCount()))
	il.met.IndexTerms.Set(float64(idx.TermCount()))
	return nil
}

func queryStages(configured []string) []string {
	keys := make([]string, 0, len(configured))
	for _, k := range configured {
		if k == "document_saver" {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}
