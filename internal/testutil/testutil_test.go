package testutil

import (
	"context"
	"testing"

	"github.com/roach88/awaitdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineIsDeterministic(t *testing.T) {
	run := func(t *testing.T) []string {
		e, trace := NewEngine(t)
		db, err := awaitdb.Open(context.Background(), e, "app", 1, nil)
		require.NoError(t, err)
		db.Close()
		return trace.Lines()
	}

	first := run(t)
	second := run(t)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		"1 open app@v1 upgradeneeded",
		"2 open app@v1 success",
	}, first)
}
