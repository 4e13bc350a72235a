package vocabulary

import "errors"

var (
	// ErrVocabularyExists is returned when creating a vocabulary whose
	// string key is already taken.
	ErrVocabularyExists = errors.New("vocabulary string key already exists")

	// ErrVocabularyNotFound is returned when updating or referencing a
	// vocabulary that does not exist.
	ErrVocabularyNotFound = errors.New("vocabulary does not exist")
)
