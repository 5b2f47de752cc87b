package preprocess

import (
	"context"
	"fmt"

	"github.com/melisekm/skwiki-search/internal/wiki"
)

// Stage identifies one step of the preprocessing pipeline.
type Stage int

const (
	StageNormalize Stage = iota
	StageTokenize
	StageRemoveStopWords
	StageLemmatize
	StageStopWordsCleaner
	StageDocumentSaver
)

// canonicalOrder is the fixed execution order: normalize, tokenize,
// remove stop words, lemmatize, clean stop words again (lemmatization
// can surface forms that are themselves stop words), then checkpoint.
var canonicalOrder = []Stage{
	StageNormalize,
	StageTokenize,
	StageRemoveStopWords,
	StageLemmatize,
	StageStopWordsCleaner,
	StageDocumentSaver,
}

var stageNames = map[string]Stage{
	"normalize":          StageNormalize,
	"tokenize":           StageTokenize,
	"remove_stopwords":   StageRemoveStopWords,
	"lemmatize":          StageLemmatize,
	"stop_words_cleaner": StageStopWordsCleaner,
	"document_saver":     StageDocumentSaver,
}

// ParseStages maps configured stage keys to Stages and returns them in
// canonicalOrder regardless of the order they were given in, with
// duplicates collapsed. The pipeline's behavior must not depend on how
// a caller orders its configuration.
func ParseStages(keys []string) ([]Stage, error) {
	want := make(map[Stage]struct{}, len(keys))
	for _, k := range keys {
		stage, ok := stageNames[k]
		if !ok {
			return nil, fmt.Errorf("preprocess: unknown pipeline stage %q", k)
		}
		want[stage] = struct{}{}
	}

	stages := make([]Stage, 0, len(want))
	for _, s := range canonicalOrder {
		if _, ok := want[s]; ok {
			stages = append(stages, s)
		}
	}
	return stages, nil
}

// Pipeline runs a configured subset of stages over a Page, in
// canonical order, writing the resulting terms to Page.Terms.
type Pipeline struct {
	stages     map[Stage]struct{}
	stopWords  *StopWords
	lemmatizer Lemmatizer
	checkpoint *CheckpointStore
}

// NewPipeline builds a Pipeline from a set of enabled stages (any
// order; see ParseStages) and its collaborators. stopWords and
// lemmatizer may be nil if no enabled stage needs them; checkpoint may
// be nil to disable both the bypass-on-hit behavior and the
// document_saver stage.
func NewPipeline(stages []Stage, stopWords *StopWords, lemmatizer Lemmatizer, checkpoint *CheckpointStore) *Pipeline {
	enabled := make(map[Stage]struct{}, len(stages))
	for _, s := range stages {
		enabled[s] = struct{}{}
	}
	return &Pipeline{stages: enabled, stopWords: stopWords, lemmatizer: lemmatizer, checkpoint: checkpoint}
}

func (p *Pipeline) has(s Stage) bool {
	_, ok := p.stages[s]
	return ok
}

// Process runs the pipeline over page, writing its result to
// page.Terms. A checkpoint hit for page.Title bypasses every stage and
// reuses the recorded terms verbatim.
func (p *Pipeline) Process(ctx context.Context, page *wiki.Page) error {
	if p.checkpoint != nil {
		if terms, ok := p.checkpoint.Lookup(page.Title); ok {
			page.Terms = terms
			return nil
		}
	}

	text := page.RawText
	if p.has(StageNormalize) {
		text = Normalize(text)
	}

	var tokens []string
	if p.has(StageTokenize) {
		tokens = Tokenize(text)
	}

	if p.has(StageRemoveStopWords) && p.stopWords != nil {
		tokens = p.stopWords.Filter(tokens)
	}

	if p.has(StageLemmatize) && p.lemmatizer != nil {
		lemmas, err := p.lemmatizer.Lemmatize(ctx, tokens)
		if err != nil {
			return fmt.Errorf("preprocess: lemmatize %q: %w", page.Title, err)
		}
		tokens = applyLemmaFilter(lemmas)
	}

	if p.has(StageStopWordsCleaner) && p.stopWords != nil {
		tokens = p.stopWords.Filter(tokens)
	}

	page.Terms = tokens

	if p.has(StageDocumentSaver) && p.checkpoint != nil {
		if err := p.checkpoint.Append(page.DocID, page.Title, tokens); err != nil {
			return fmt.Errorf("preprocess: checkpoint %q: %w", page.Title, err)
		}
	}

	return nil
}
