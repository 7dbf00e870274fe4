package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_ParsesAndSorts(t *testing.T) {
	prev := NewID()
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, err := ulid.ParseStrict(id)
		require.NoError(t, err)
		assert.Less(t, prev, id)
		prev = id
	}
}
