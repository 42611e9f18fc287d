package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewULID()
		assert.Len(t, id, 26)
		assert.True(t, IsULID(id))
		_, dup := seen[id]
		assert.False(t, dup, "duplicate ULID %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsULID(t *testing.T) {
	assert.True(t, IsULID("01HGZ8VNRYXS8QKNJV5GRWPWDQ"))
	assert.False(t, IsULID(""))
	assert.False(t, IsULID("not-a-ulid"))
}
