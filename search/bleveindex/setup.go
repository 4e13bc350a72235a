package bleveindex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/openvocab/termstore/indexdoc"
)

// Logger defines the logging operations the index wrapper needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Index is the bleve-backed implementation of search.Client.
//
// Writes accumulate in a pending batch; a commit executes the batch and is
// the point where the writes become visible to readers. The batch is guarded
// by a mutex, so the index is safe for concurrent use.
type Index struct {
	cfg    Config
	logger Logger

	mu      sync.Mutex
	idx     bleve.Index
	pending *bleve.Batch
}

// New opens (or creates) the index described by cfg. An empty path runs
// the index purely in memory.
func New(cfg Config, logger Logger) (*Index, error) {
	im := buildMapping()

	var (
		idx bleve.Index
		err error
	)
	if cfg.Path == "" {
		idx, err = bleve.NewMemOnly(im)
	} else {
		idx, err = bleve.New(cfg.Path, im)
		if errors.Is(err, bleve.ErrorIndexPathExists) {
			idx, err = bleve.Open(cfg.Path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}

	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}

	logger.Info("Search index opened", nil, map[string]interface{}{
		"path":      cfg.Path,
		"in_memory": cfg.Path == "",
	})

	return &Index{
		cfg:     cfg,
		logger:  logger,
		idx:     idx,
		pending: idx.NewBatch(),
	}, nil
}

// buildMapping returns the index mapping for term documents.
//
// uri, vocabulary_string_key and the value_exact ranking helper are
// keyword-analyzed so they match as whole strings; value gets standard
// analysis for whole-word partial matching. Suffixed additional fields
// fall through to the default dynamic mapping.
func buildMapping() mapping.IndexMapping {
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	valueField := bleve.NewTextFieldMapping()

	localField := bleve.NewBooleanFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(indexdoc.FieldURI, keywordField)
	doc.AddFieldMappingsAt(indexdoc.FieldVocabularyKey, keywordField)
	doc.AddFieldMappingsAt(indexdoc.FieldValueExact, keywordField)
	doc.AddFieldMappingsAt(indexdoc.FieldValue, valueField)
	doc.AddFieldMappingsAt(indexdoc.FieldIsLocal, localField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	return im
}

// Close releases the index. Pending uncommitted writes are discarded,
// matching the visibility contract: only committed writes are readable.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if size := x.pending.Size(); size > 0 {
		x.logger.Warn("Closing search index with uncommitted writes", nil, map[string]interface{}{
			"pending": size,
		})
	}
	return x.idx.Close()
}
