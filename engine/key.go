package engine

import (
	"bytes"
	"fmt"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Key is a record key: int64, float64, string, or []byte after
// normalization. NormalizeKey widens the other integer and float types.
type Key = any

// Key type ranks. Numbers sort before strings, strings before binary,
// regardless of value.
const (
	rankNumber = iota
	rankString
	rankBinary
)

// collator orders string keys and name listings. Collators keep
// internal buffers and are not safe for concurrent use, hence the lock.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Und)
)

// NormalizeKey widens k to one of the canonical key types. It returns
// an error for non-key values (bool, nil, structs, slices other than
// []byte).
func NormalizeKey(k Key) (Key, error) {
	switch v := k.(type) {
	case int64, float64, string:
		return v, nil
	case []byte:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return float64(v), nil
	}
	return nil, fmt.Errorf("invalid key type %T", k)
}

// CompareKeys returns -1, 0, or 1 ordering a against b in the canonical
// key order: numbers before strings before binary; numbers by value,
// strings by collation, binary bytewise. Both keys are normalized
// first; an invalid key panics, since engines must normalize at their
// boundary.
func CompareKeys(a, b Key) int {
	an, err := NormalizeKey(a)
	if err != nil {
		panic(err)
	}
	bn, err := NormalizeKey(b)
	if err != nil {
		panic(err)
	}

	ar, br := keyRank(an), keyRank(bn)
	if ar != br {
		if ar < br {
			return -1
		}
		return 1
	}

	switch ar {
	case rankNumber:
		return compareFloats(keyNumber(an), keyNumber(bn))
	case rankString:
		return CompareStrings(an.(string), bn.(string))
	default:
		return bytes.Compare(an.([]byte), bn.([]byte))
	}
}

// CompareStrings orders two strings by the canonical collation used for
// string keys and name listings.
func CompareStrings(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// SortNames sorts a name listing in place into canonical collation
// order. Used for objectStoreNames and indexNames listings.
func SortNames(names []string) {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	collator.SortStrings(names)
}

func keyRank(k Key) int {
	switch k.(type) {
	case int64, float64:
		return rankNumber
	case string:
		return rankString
	default:
		return rankBinary
	}
}

func keyNumber(k Key) float64 {
	switch v := k.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	}
	panic(fmt.Sprintf("not a number key: %T", k))
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// KeyRange bounds a query over ordered keys. A nil bound means
// unbounded on that side; LowerOpen/UpperOpen exclude the bound itself.
type KeyRange struct {
	Lower     Key
	Upper     Key
	LowerOpen bool
	UpperOpen bool
}

// Only returns the range containing exactly key.
func Only(key Key) *KeyRange {
	return &KeyRange{Lower: key, Upper: key}
}

// LowerBound returns the range of keys >= key (or > key when open).
func LowerBound(key Key, open bool) *KeyRange {
	return &KeyRange{Lower: key, LowerOpen: open}
}

// UpperBound returns the range of keys <= key (or < key when open).
func UpperBound(key Key, open bool) *KeyRange {
	return &KeyRange{Upper: key, UpperOpen: open}
}

// Bound returns the range between lower and upper.
func Bound(lower, upper Key, lowerOpen, upperOpen bool) *KeyRange {
	return &KeyRange{Lower: lower, Upper: upper, LowerOpen: lowerOpen, UpperOpen: upperOpen}
}

// Contains reports whether key falls inside the range.
func (r *KeyRange) Contains(key Key) bool {
	if r == nil {
		return true
	}
	if r.Lower != nil {
		c := CompareKeys(key, r.Lower)
		if c < 0 || (c == 0 && r.LowerOpen) {
			return false
		}
	}
	if r.Upper != nil {
		c := CompareKeys(key, r.Upper)
		if c > 0 || (c == 0 && r.UpperOpen) {
			return false
		}
	}
	return true
}
