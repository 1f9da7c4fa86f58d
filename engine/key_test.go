package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey_Widening(t *testing.T) {
	tests := []struct {
		name string
		in   Key
		want Key
	}{
		{"int", int(7), int64(7)},
		{"int32", int32(7), int64(7)},
		{"uint16", uint16(7), int64(7)},
		{"float32", float32(1.5), float64(1.5)},
		{"int64 passthrough", int64(7), int64(7)},
		{"string passthrough", "k", "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeKey_Invalid(t *testing.T) {
	_, err := NormalizeKey(true)
	assert.Error(t, err)

	_, err = NormalizeKey(nil)
	assert.Error(t, err)

	_, err = NormalizeKey([]string{"no"})
	assert.Error(t, err)
}

func TestCompareKeys_Ordering(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want int
	}{
		{"numbers by value", 1, 2, -1},
		{"mixed numeric types", int64(2), float64(1.5), 1},
		{"equal numbers", int64(3), float64(3), 0},
		{"number before string", 99, "1", -1},
		{"strings collated", "alpha", "beta", -1},
		{"equal strings", "k", "k", 0},
		{"string before binary", "z", []byte{0x00}, -1},
		{"binary bytewise", []byte{0x01}, []byte{0x02}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareKeys(tt.a, tt.b))
		})
	}
}

func TestSortNames(t *testing.T) {
	names := []string{"users", "accounts", "sessions"}
	SortNames(names)
	assert.Equal(t, []string{"accounts", "sessions", "users"}, names)
}

func TestKeyRange_Contains(t *testing.T) {
	tests := []struct {
		name string
		r    *KeyRange
		key  Key
		want bool
	}{
		{"nil range contains everything", nil, 5, true},
		{"only match", Only("k"), "k", true},
		{"only miss", Only("k"), "j", false},
		{"closed lower includes bound", LowerBound(10, false), 10, true},
		{"open lower excludes bound", LowerBound(10, true), 10, false},
		{"closed upper includes bound", UpperBound(10, false), 10, true},
		{"open upper excludes bound", UpperBound(10, true), 10, false},
		{"bound inside", Bound(1, 10, false, false), 5, true},
		{"bound outside", Bound(1, 10, false, false), 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.key))
		})
	}
}
