package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"casefold-hq/triage/pkg/casefile"
)

// DefaultTopK is the default number of documents returned per retrieval.
const DefaultTopK = 5

// Document is one indexed corpus entry.
type Document struct {
	Content  string            `yaml:"content"`
	Source   string            `yaml:"source"`
	Section  string            `yaml:"section"`
	Metadata map[string]string `yaml:"metadata,omitempty"`

	// terms is the bag of index terms derived from Content, built once
	// at index time.
	terms map[string]struct{}
}

// Index is an in-memory document corpus scored by term overlap.
// It is safe for concurrent retrieval; Reload swaps the corpus atomically.
type Index struct {
	logger *slog.Logger

	mu   sync.RWMutex
	docs []Document
	dir  string
}

// NewIndex builds an index over the built-in policy excerpts.
func NewIndex(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &Index{logger: logger.With("component", "retrieval")}
	idx.replace(builtinDocuments())
	return idx
}

// NewDirIndex builds an index from the YAML documents under dir. Files
// that fail to parse are skipped with a warning. An empty directory
// yields an empty index, not an error.
func NewDirIndex(dir string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &Index{logger: logger.With("component", "retrieval"), dir: dir}
	if err := idx.Reload(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Reload re-reads the corpus directory. It is a no-op for built-in
// indexes.
func (idx *Index) Reload() error {
	if idx.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(idx.dir)
	if err != nil {
		return fmt.Errorf("read corpus directory %q: %w", idx.dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(idx.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			idx.logger.Warn("Skipping unreadable corpus file", "path", path, "error", err)
			continue
		}

		var fileDocs []Document
		if err := yaml.Unmarshal(data, &fileDocs); err != nil {
			idx.logger.Warn("Skipping unparseable corpus file", "path", path, "error", err)
			continue
		}
		docs = append(docs, fileDocs...)
	}

	idx.replace(docs)
	idx.logger.Info("Corpus loaded", "dir", idx.dir, "documents", len(docs))
	return nil
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Retrieve scores every document against every query and returns the top
// matches ordered by descending relevance. Documents sharing no terms
// with any query are omitted. topK <= 0 means DefaultTopK.
func (idx *Index) Retrieve(ctx context.Context, queries []string, topK int) ([]casefile.PolicyDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	idx.mu.RLock()
	docs := idx.docs
	idx.mu.RUnlock()

	type scored struct {
		doc   Document
		score float64
	}

	var results []scored
	for _, doc := range docs {
		best := 0.0
		for _, query := range queries {
			if s := overlapScore(doc.terms, query); s > best {
				best = s
			}
		}
		if best > 0 {
			results = append(results, scored{doc: doc, score: best})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].doc.Source < results[j].doc.Source
	})

	if len(results) > topK {
		results = results[:topK]
	}

	out := make([]casefile.PolicyDocument, 0, len(results))
	for _, r := range results {
		out = append(out, casefile.PolicyDocument{
			Content:        r.doc.Content,
			Source:         r.doc.Source,
			Section:        r.doc.Section,
			RelevanceScore: r.score,
			Metadata:       r.doc.Metadata,
		})
	}
	return out, nil
}

func (idx *Index) replace(docs []Document) {
	for i := range docs {
		docs[i].terms = indexTerms(docs[i].Content + " " + docs[i].Source + " " + docs[i].Section)
	}
	idx.mu.Lock()
	idx.docs = docs
	idx.mu.Unlock()
}

// overlapScore is the fraction of the query's index terms present in the
// document's term set. It is a pure function of the two texts.
func overlapScore(docTerms map[string]struct{}, query string) float64 {
	queryTerms := indexTerms(query)
	if len(queryTerms) == 0 {
		return 0
	}

	matched := 0
	for term := range queryTerms {
		if _, ok := docTerms[term]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTerms))
}

var stopTerms = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "old": {},
	"year": {}, "all": {}, "are": {}, "must": {}, "can": {},
}

func indexTerms(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if len(field) < 3 {
			continue
		}
		if _, skip := stopTerms[field]; skip {
			continue
		}
		terms[field] = struct{}{}
	}
	return terms
}
