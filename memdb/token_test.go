package memdb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7GeneratorProducesValidTokens(t *testing.T) {
	g := UUIDv7Generator{}

	a := g.Generate()
	b := g.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestSequenceGeneratorCountsUp(t *testing.T) {
	g := NewSequenceGenerator("op")
	assert.Equal(t, "op-1", g.Generate())
	assert.Equal(t, "op-2", g.Generate())
}

func TestSequenceGeneratorDefaultPrefix(t *testing.T) {
	g := NewSequenceGenerator("")
	assert.Equal(t, "req-1", g.Generate())
}
