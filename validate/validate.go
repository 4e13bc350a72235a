// Package validate holds the pure identifier checks shared by the
// vocabulary registry and the term coordinator. Nothing here touches
// the store or the index.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/openvocab/termstore/model"
)

var (
	// ErrInvalidKey is returned for a vocabulary or field key that does not
	// match the key grammar (lowercase letter followed by lowercase letters,
	// digits or underscores) or uses a reserved value.
	ErrInvalidKey = errors.New("invalid string key")

	// ErrInvalidURI is returned for a term URI that is not an absolute
	// http or https URI.
	ErrInvalidURI = errors.New("invalid term URI")

	// ErrInvalidFieldKey is returned for an additional-field key that fails
	// the key grammar or collides with one of the core field names.
	ErrInvalidFieldKey = errors.New("invalid additional field key")
)

// ReservedVocabularyKey cannot be used as a vocabulary string key because it
// addresses all vocabularies in query scoping.
const ReservedVocabularyKey = "all"

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// coreFieldNames are the unsuffixed index document fields; additional-field
// keys must never intersect them.
var coreFieldNames = map[string]struct{}{
	"uri":                   {},
	"vocabulary_string_key": {},
	"value":                 {},
	"is_local":              {},
}

// Key checks a vocabulary or field key against the key grammar.
func Key(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// VocabularyKey checks a vocabulary string key: the key grammar plus the
// reserved value "all".
func VocabularyKey(key string) error {
	if key == ReservedVocabularyKey {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidKey, key)
	}
	return Key(key)
}

// URI checks that a term URI is an absolute http or https URI.
func URI(uri string) error {
	parsed, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return nil
}

// AdditionalFields checks every key of an additional-field map: each must
// satisfy the key grammar and must not shadow a core field name.
func AdditionalFields(fields model.FieldMap) error {
	for key := range fields {
		if err := FieldKey(key); err != nil {
			return err
		}
	}
	return nil
}

// FieldKey checks a single additional-field key.
func FieldKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidFieldKey, key)
	}
	if _, reserved := coreFieldNames[key]; reserved {
		return fmt.Errorf("%w: %q is a core field name", ErrInvalidFieldKey, key)
	}
	return nil
}
