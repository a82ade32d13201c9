package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/civic-tracker/internal/storage"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Get(ctx, "user")
	require.ErrorIs(t, err, storage.ErrNotFound)

	value := []byte(`{"username":"admin"}`)
	require.NoError(t, s.Put(ctx, "user", value))
	value[0] = 'x'

	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"username":"admin"}`, string(got))

	require.NoError(t, s.Delete(ctx, "user"))
	require.NoError(t, s.Delete(ctx, "user"))
	_, err = s.Get(ctx, "user")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
