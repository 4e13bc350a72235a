package vocabulary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/pkg/postgres"
	"github.com/openvocab/termstore/validate"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

// fakeStore is an in-memory stand-in for *store.Vocabularies.
type fakeStore struct {
	rows   map[string]*model.Vocabulary
	nextID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*model.Vocabulary)}
}

func (f *fakeStore) Insert(_ context.Context, vocab *model.Vocabulary) error {
	if _, taken := f.rows[vocab.StringKey]; taken {
		return postgres.ErrDuplicateKey
	}
	f.nextID++
	vocab.ID = f.nextID
	clone := *vocab
	f.rows[vocab.StringKey] = &clone
	return nil
}

func (f *fakeStore) FindByKey(_ context.Context, stringKey string) (*model.Vocabulary, error) {
	vocab, ok := f.rows[stringKey]
	if !ok {
		return nil, nil
	}
	clone := *vocab
	return &clone, nil
}

func (f *fakeStore) UpdateLabel(_ context.Context, stringKey, label string) (int64, error) {
	vocab, ok := f.rows[stringKey]
	if !ok {
		return 0, nil
	}
	vocab.DisplayLabel = label
	return 1, nil
}

func (f *fakeStore) DeleteByKey(_ context.Context, stringKey string) error {
	delete(f.rows, stringKey)
	return nil
}

func newTestRegistry() (*Registry, *fakeStore) {
	store := newFakeStore()
	return NewRegistry(store, nopLogger{}), store
}

func TestCreate(t *testing.T) {
	reg, store := newTestRegistry()
	ctx := context.Background()

	vocab, err := reg.Create(ctx, "subjects", "Subjects")
	require.NoError(t, err)
	assert.NotZero(t, vocab.ID)
	assert.Equal(t, "subjects", vocab.StringKey)
	assert.Equal(t, "Subjects", vocab.DisplayLabel)
	assert.Contains(t, store.rows, "subjects")
}

func TestCreateRejectsBadKeys(t *testing.T) {
	reg, store := newTestRegistry()
	ctx := context.Background()

	for _, key := range []string{"", "Subjects", "my subjects", "all"} {
		_, err := reg.Create(ctx, key, "label")
		require.Error(t, err, "key %q must be rejected", key)
		assert.ErrorIs(t, err, validate.ErrInvalidKey)
	}
	assert.Empty(t, store.rows, "no row is written for a rejected key")
}

func TestCreateDuplicate(t *testing.T) {
	reg, _ := newTestRegistry()
	ctx := context.Background()

	_, err := reg.Create(ctx, "subjects", "Subjects")
	require.NoError(t, err)

	_, err = reg.Create(ctx, "subjects", "Subjects again")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVocabularyExists)
}

func TestFind(t *testing.T) {
	reg, _ := newTestRegistry()
	ctx := context.Background()

	_, err := reg.Create(ctx, "subjects", "Subjects")
	require.NoError(t, err)

	vocab, err := reg.Find(ctx, "subjects")
	require.NoError(t, err)
	require.NotNil(t, vocab)
	assert.Equal(t, "Subjects", vocab.DisplayLabel)

	vocab, err = reg.Find(ctx, "genres")
	require.NoError(t, err)
	assert.Nil(t, vocab, "absent vocabularies come back nil, not as an error")
}

func TestUpdate(t *testing.T) {
	reg, store := newTestRegistry()
	ctx := context.Background()

	_, err := reg.Create(ctx, "subjects", "Subjects")
	require.NoError(t, err)

	require.NoError(t, reg.Update(ctx, "subjects", "All Subjects"))
	assert.Equal(t, "All Subjects", store.rows["subjects"].DisplayLabel)

	err = reg.Update(ctx, "genres", "Genres")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVocabularyNotFound)
}

func TestDeleteIsUnconditional(t *testing.T) {
	reg, store := newTestRegistry()
	ctx := context.Background()

	_, err := reg.Create(ctx, "subjects", "Subjects")
	require.NoError(t, err)

	require.NoError(t, reg.Delete(ctx, "subjects"))
	assert.Empty(t, store.rows)

	// Deleting a key that never existed is not an error.
	require.NoError(t, reg.Delete(ctx, "genres"))
}
