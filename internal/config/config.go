// Package config loads the single configuration object the build and
// search commands share, applying spec.md §6's defaults for any key
// the caller doesn't set.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the recognized set of configuration keys. Unknown keys in
// an input document are accepted and ignored, matching spec.md §6's
// "unspecified keys fall back to defaults" contract read in reverse:
// this implementation additionally tolerates keys it doesn't know
// about, rather than rejecting the whole document.
type Config struct {
	InvertedIndexPath     string   `json:"inverted_index_path"`
	SkWikipediaDumpPath   string   `json:"sk_wikipedia_dump_path"`
	StopWordsPath         string   `json:"stop_words_path"`
	AlreadyProcessedPath  string   `json:"already_processed_path"`
	PreprocessorComponents []string `json:"preprocessor_components"`
	Workers               int      `json:"workers"`
	Verbose               bool     `json:"verbose"`

	// Storage (C9): empty StorageEndpoint selects local filesystem.
	StorageEndpoint  string `json:"storage_endpoint"`
	StorageBucket    string `json:"storage_bucket"`
	StorageAccessKey string `json:"storage_access_key"`
	StorageSecretKey string `json:"storage_secret_key"`

	// CheckpointCompression zstd-frames the checkpoint log when true.
	CheckpointCompression bool `json:"checkpoint_compression"`

	// MetricsAddr is the bind address for the HTTP search server's
	// /metrics and /search endpoints.
	MetricsAddr string `json:"metrics_addr"`

	// LemmatizerEndpoint is the HTTP endpoint of the external
	// morphological-analysis service used by the lemmatize stage.
	LemmatizerEndpoint string `json:"lemmatizer_endpoint"`
}

// defaultPreprocessorComponents is "all six in canonical order".
var defaultPreprocessorComponents = []string{
	"normalize",
	"tokenize",
	"remove_stopwords",
	"lemmatize",
	"stop_words_cleaner",
	"document_saver",
}

// Default returns a Config with every spec.md §6 default applied,
// leaving the required path fields empty.
func Default() Config {
	return Config{
		AlreadyProcessedPath:   "data/already_parsed.csv",
		PreprocessorComponents: append([]string(nil), defaultPreprocessorComponents...),
		Workers:                4,
		Verbose:                true,
		CheckpointCompression:  true,
		MetricsAddr:            ":9123",
	}
}

// Load reads a JSON configuration document from path, starting from
// Default() so any key the document omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that the fields spec.md §6 marks "required" are set.
func (c Config) Validate() error {
	switch {
	case c.InvertedIndexPath == "":
		return fmt.Errorf("config: inverted_index_path is required")
	case c.SkWikipediaDumpPath == "":
		return fmt.Errorf("config: sk_wikipedia_dump_path is required")
	case c.StopWordsPath == "":
		return fmt.Errorf("config: stop_words_path is required")
	case c.Workers < 1:
		return fmt.Errorf("config: workers must be >= 1, got %d", c.Workers)
	}
	return nil
}
