// Package indexdoc converts between term records and search-index documents.
//
// The mapping is deterministic in both directions: core fields pass through
// unsuffixed, every additional field is renamed to key+suffix on the way in
// and has the text after its last underscore stripped on the way out. The
// reverse mapping is lossy when a caller's own key ends in a segment shaped
// like a reserved suffix; that ambiguity is part of the wire format and is
// deliberately not worked around here.
package indexdoc

import (
	"fmt"
	"strings"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/search"
)

// Core index document field names, stored unsuffixed.
const (
	FieldURI           = "uri"
	FieldValue         = "value"
	FieldVocabularyKey = "vocabulary_string_key"
	FieldIsLocal       = "is_local"

	// FieldValueExact is a keyword-analyzed copy of the value used for
	// exact-match ranking. It is projection-internal and never surfaces
	// in a term view.
	FieldValueExact = "value_exact"
)

// internalFields are skipped when projecting a document back into a term
// view: ranking helpers plus the bookkeeping fields indexes attach to hits
// (version markers, timestamps, relevance score).
var internalFields = map[string]struct{}{
	FieldValueExact: {},
	"_version_":     {},
	"_id":           {},
	"score":         {},
	"timestamp":     {},
}

// FromTerm projects a term record into its search-index document.
func FromTerm(t *model.Term) search.Document {
	doc := search.Document{
		FieldURI:           t.URI,
		FieldValue:         t.Value,
		FieldValueExact:    t.Value,
		FieldVocabularyKey: t.VocabularyStringKey,
		FieldIsLocal:       t.Local,
	}
	for key, val := range t.AdditionalFields {
		doc[key+val.Suffix()] = val.Native()
	}
	return doc
}

// ToView projects an index document back into the public term view.
// Core fields are copied verbatim; every other field has its suffix
// stripped and its value re-typed from the suffix.
func ToView(doc search.Document) (*model.TermView, error) {
	view := &model.TermView{
		URI:                 stringField(doc, FieldURI),
		Value:               stringField(doc, FieldValue),
		VocabularyStringKey: stringField(doc, FieldVocabularyKey),
		Local:               boolField(doc, FieldIsLocal),
	}

	for name, raw := range doc {
		switch name {
		case FieldURI, FieldValue, FieldVocabularyKey, FieldIsLocal:
			continue
		}
		if _, internal := internalFields[name]; internal {
			continue
		}

		key, kind, ok := ParseFieldName(name)
		if !ok {
			continue
		}
		val, err := decodeForKind(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		if view.AdditionalFields == nil {
			view.AdditionalFields = make(model.FieldMap)
		}
		view.AdditionalFields[key] = val
	}

	return view, nil
}

// ParseFieldName splits a suffixed index field name into the original key
// and the value kind the suffix encodes. Names without an underscore, or
// whose trailing segment is not a known suffix, report ok=false.
func ParseFieldName(name string) (key string, kind model.Kind, ok bool) {
	idx := strings.LastIndex(name, "_")
	if idx <= 0 {
		return "", 0, false
	}
	kind, ok = model.KindForSuffix(name[idx:])
	if !ok {
		return "", 0, false
	}
	return name[:idx], kind, true
}

// decodeForKind turns a raw index value back into a tagged value of the
// kind the suffix promised. Indexes flatten single-element stored arrays
// to scalars, so scalar payloads of array kinds are re-wrapped.
func decodeForKind(kind model.Kind, raw interface{}) (model.Value, error) {
	val, err := model.ValueOf(raw)
	if err != nil {
		return model.Value{}, err
	}

	switch kind {
	case model.KindStringArray:
		if val.Kind == model.KindString {
			return model.Strings(val.Str), nil
		}
		if val.Kind == model.KindInteger {
			return model.Strings(fmt.Sprint(val.Int)), nil
		}
	case model.KindIntegerArray:
		if val.Kind == model.KindInteger {
			return model.Integers(val.Int), nil
		}
	}
	return val, nil
}

func stringField(doc search.Document, name string) string {
	if s, ok := doc[name].(string); ok {
		return s
	}
	return ""
}

func boolField(doc search.Document, name string) bool {
	switch x := doc[name].(type) {
	case bool:
		return x
	case string:
		return x == "true" || x == "T"
	}
	return false
}
