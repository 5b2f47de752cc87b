package preprocess

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/melisekm/skwiki-search/internal/storage"
)

// CheckpointStore is the line-oriented append log backing the
// document_saver stage: one "docID\ttitle\tterm term term\n" record per
// processed document. On open, any existing records are loaded so a
// rerun can skip documents it already preprocessed. The file format is
// chosen by its extension the same way dumps and indexes are
// (storage.CompressByName/DecompressCloserByName); a zstd-framed
// checkpoint grows as a sequence of independently-flushed frames, which
// zstd decoders read back as one concatenated stream.
type CheckpointStore struct {
	mu     sync.Mutex
	file   *os.File
	writer interface {
		Write([]byte) (int, error)
		Close() error
	}
	loaded map[string][]string
}

type flusher interface {
	Flush() error
}

// OpenCheckpointStore opens (or creates) the checkpoint file at path
// for appending, after loading whatever records it already contains.
func OpenCheckpointStore(path string) (*CheckpointStore, error) {
	loaded := make(map[string][]string)

	if existing, err := os.Open(path); err == nil {
		rc, derr := storage.DecompressCloserByName(existing, path)
		if derr != nil {
			existing.Close()
			return nil, derr
		}
		scanner := bufio.NewScanner(rc)
		scanner.Buffer(make([]byte, 0, 64*1024), 8<<20)
		for scanner.Scan() {
			parts := strings.SplitN(scanner.Text(), "\t", 3)
			if len(parts) != 3 {
				continue
			}
			title := parts[1]
			var terms []string
			if parts[2] != "" {
				terms = strings.Fields(parts[2])
			}
			loaded[title] = terms
		}
		rc.Close()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	w, err := storage.CompressByName(file, path)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &CheckpointStore{file: file, writer: w, loaded: loaded}, nil
}

// Lookup returns the terms recorded for title, if this store already
// has a checkpointed entry for it.
func (c *CheckpointStore) Lookup(title string) ([]string, bool) {
	terms, ok := c.loaded[title]
	return terms, ok
}

// Append records a newly preprocessed document's terms.
func (c *CheckpointStore) Append(docID uint64, title string, terms []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := fmt.Sprintf("%d\t%s\t%s\n", docID, title, strings.Join(terms, " "))
	if _, err := c.writer.Write([]byte(line)); err != nil {
		return err
	}
	if f, ok := c.writer.(flusher); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	if err := c.file.Sync(); err != nil {
		return err
	}
	c.loaded[title] = terms
	return nil
}

// Close flushes and closes the underlying file.
func (c *CheckpointStore) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.writer.Close()
	if cerr := c.file.Close(); err == nil {
		err = cerr
	}
	return err
}
