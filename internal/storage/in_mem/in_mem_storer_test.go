package in_mem

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/box-bench/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemStorer_Save(t *testing.T) {
	s := NewInMemStorer()

	id, err := s.Save(context.Background(), storage.Run{SuiteName: "office-scan"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	run, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "office-scan", run.SuiteName)
	assert.False(t, run.StoredAt.IsZero())
}

func TestInMemStorer_SavePreservesID(t *testing.T) {
	s := NewInMemStorer()
	want := uuid.New()

	id, err := s.Save(context.Background(), storage.Run{ID: want})
	require.NoError(t, err)
	assert.Equal(t, want, id)
}

func TestInMemStorer_SaveBulk(t *testing.T) {
	s := NewInMemStorer()

	err := s.SaveBulk(context.Background(), []storage.Run{
		{SuiteName: "a"},
		{SuiteName: "b"},
		{SuiteName: "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}
