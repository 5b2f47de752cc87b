// Command skwiki-build parses a Slovak Wikipedia XML dump, runs every
// page through the preprocessing pipeline, builds the inverted index
// and TF-IDF vectors, and writes the result to the configured index
// path.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/melisekm/skwiki-search/internal/config"
	"github.com/melisekm/skwiki-search/internal/index"
	"github.com/melisekm/skwiki-search/internal/metrics"
	"github.com/melisekm/skwiki-search/internal/parallel"
	"github.com/melisekm/skwiki-search/internal/preprocess"
	"github.com/melisekm/skwiki-search/internal/storage"
	"github.com/melisekm/skwiki-search/internal/vectorizer"
	"github.com/melisekm/skwiki-search/internal/wiki"
)

var logger *log.Logger

func main() {
	configPath := flag.String("config", "config.json", "path to the build configuration file")
	flag.Parse()

	logger = log.New(log.Writer(), "skwiki-build: ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(err)
	}

	if err := run(context.Background(), cfg); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	met, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	store, err := storage.NewStorage(cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey, cfg.StorageBucket)
	if err != nil {
		return err
	}

	dump, err := store.Open(ctx, cfg.SkWikipediaDumpPath)
	if err != nil {
		return err
	}
	defer dump.Close()
	dumpReader, err := storage.DecompressCloserByName(dump, cfg.SkWikipediaDumpPath)
	if err != nil {
		return err
	}
	defer dumpReader.Close()

	pages, err := wiki.NewParser().Parse(dumpReader)
	if err != nil {
		return err
	}
	logger.Printf("parsed %d pages", len(pages))

	stopWordsFile, err := store.Open(ctx, cfg.StopWordsPath)
	if err != nil {
		return err
	}
	defer stopWordsFile.Close()
	stopWords, err := preprocess.LoadStopWords(stopWordsFile)
	if err != nil {
		return err
	}

	stages, err := preprocess.ParseStages(cfg.PreprocessorComponents)
	if err != nil {
		return err
	}

	checkpointPath := cfg.AlreadyProcessedPath
	if cfg.CheckpointCompression {
		checkpointPath += ".zst"
	}
	checkpoint, err := preprocess.OpenCheckpointStore(checkpointPath)
	if err != nil {
		return err
	}
	defer checkpoint.Close()

	var lemmatizer preprocess.Lemmatizer
	if cfg.LemmatizerEndpoint != "" {
		lemmatizer = preprocess.NewRemoteLemmatizer(cfg.LemmatizerEndpoint)
	}

	pipeline := preprocess.NewPipeline(stages, stopWords, lemmatizer, checkpoint)

	results := parallel.Map(ctx, pages, cfg.Workers, func(ctx context.Context, p *wiki.Page) (*wiki.Page, error) {
		if err := pipeline.Process(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	})

	processed := make([]*wiki.Page, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			met.PagesSkipped.WithLabelValues("preprocess_error").Inc()
			logger.Printf("skipping page: %s", r.Err)
			continue
		}
		met.PagesParsed.Inc()
		processed = append(processed, r.Value)
	}

	idx, err := index.Build(ctx, processed)
	if err != nil {
		return err
	}

	vec := vectorizer.New(idx, vectorizer.Config{SmoothIDF: true, L2Normalize: true})
	for _, p := range processed {
		vec.Vectorize(p)
		p.DiscardRawText()
	}

	met.IndexDocuments.Set(float64(idx.DocumentCount()))
	met.IndexTerms.Set(float64(idx.TermCount()))

	out, err := store.Create(ctx, cfg.InvertedIndexPath)
	if err != nil {
		return err
	}
	defer out.Close()
	compressed, err := storage.CompressByName(out, cfg.InvertedIndexPath)
	if err != nil {
		return err
	}
	defer compressed.Close()

	if err := index.Save(idx, compressed); err != nil {
		return err
	}

	logger.Printf("wrote index: %d documents, %d terms", idx.DocumentCount(), idx.TermCount())
	return nil
}
