package model

import (
	"crypto/sha256"
	"encoding/hex"

	"gorm.io/gorm"
)

// Term is a URI-identified entry within a vocabulary.
//
// The URI is globally unique across all vocabularies. Uniqueness is enforced
// through URIHash, a SHA-256 hex digest of the URI, because the URI itself
// can exceed indexable key-length limits on some backends.
type Term struct {
	ID                  uint     `gorm:"primaryKey" json:"-"`
	VocabularyStringKey string   `gorm:"column:vocabulary_string_key;index;not null" json:"vocabulary_string_key"`
	URI                 string   `gorm:"column:uri;type:text;not null" json:"uri"`
	URIHash             string   `gorm:"column:uri_hash;type:char(64);uniqueIndex;not null" json:"-"`
	Value               string   `gorm:"column:value;type:text;not null" json:"value"`
	Local               bool     `gorm:"column:is_local;not null;default:false" json:"is_local"`
	AdditionalFields    FieldMap `gorm:"column:additional_fields;type:text" json:"additional_fields,omitempty"`
}

func (Term) TableName() string { return "terms" }

// BeforeSave keeps the hash column in lockstep with the URI.
func (t *Term) BeforeSave(_ *gorm.DB) error {
	t.URIHash = HashURI(t.URI)
	return nil
}

// HashURI returns the SHA-256 hex digest of a URI, as stored in the
// uri_hash column and used as the search-index document ID.
func HashURI(uri string) string {
	sum := sha256.Sum256([]byte(uri))
	return hex.EncodeToString(sum[:])
}

// TermView is the public representation of a term, as returned from
// index-backed reads. It carries the four core fields plus the caller's
// additional fields with their suffixes stripped.
type TermView struct {
	URI                 string   `json:"uri"`
	Value               string   `json:"value"`
	VocabularyStringKey string   `json:"vocabulary_string_key"`
	Local               bool     `json:"is_local"`
	AdditionalFields    FieldMap `json:"additional_fields,omitempty"`
}
