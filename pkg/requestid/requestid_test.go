package requestid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	id := New()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	got, ok := FromContext(WithRequestID(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = FromContext(WithRequestID(context.Background(), ""))
	assert.False(t, ok)
}
