package model

// Vocabulary is a named collection of terms, keyed by a short identifier.
//
// StringKey is immutable after creation; only DisplayLabel may change.
type Vocabulary struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	StringKey    string `gorm:"column:string_key;uniqueIndex;not null" json:"string_key"`
	DisplayLabel string `gorm:"column:display_label;type:text" json:"display_label"`
}

func (Vocabulary) TableName() string { return "vocabularies" }
