package ripple

import (
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// OpKind classifies the operation the interception layer observed on a
// source. OpGet only ever appears in debug events; Trigger accepts the
// mutation kinds.
type OpKind int

const (
	OpGet OpKind = iota
	OpAdd
	OpUpdate
	OpDelete
	OpClear
)

func (k OpKind) String() string {
	switch k {
	case OpGet:
		return "get"
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	}
	return "unknown"
}

// SourceKind tells Trigger how a source iterates, which decides sentinel
// fan-out: sequences react to length changes, maps to key-set changes.
type SourceKind int

const (
	KindPlain SourceKind = iota
	KindSequence
	KindMap
)

// Kinder lets a source declare its own shape. Wrappers like store.Map are
// pointers to structs, which reflection alone would classify as plain.
type Kinder interface {
	SourceKind() SourceKind
}

// Unique symbols for the iteration sentinels, so collaborator keys can never
// collide with them.
var (
	// IterateKey subscribes to the iteration shape of a source (entries,
	// values, size).
	IterateKey = int64(xxhash.Sum64String("RIPPLE_ITERATE") & 0x7fffffffffffffff)
	// MapKeyIterate subscribes to just the key set of a map-like source.
	MapKeyIterate = int64(xxhash.Sum64String("RIPPLE_MAP_KEY_ITERATE") & 0x7fffffffffffffff)
	// LengthKey subscribes to the length of a sequence-like source.
	LengthKey = int64(xxhash.Sum64String("RIPPLE_LENGTH") & 0x7fffffffffffffff)
)

func kindOf(source any) SourceKind {
	if k, ok := source.(Kinder); ok {
		return k.SourceKind()
	}
	v := reflect.ValueOf(source)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map:
		return KindMap
	}
	return KindPlain
}

// asIndex interprets a dependency key as a sequence index.
func asIndex(key any) (int, bool) {
	switch i := key.(type) {
	case int:
		return i, true
	case int32:
		return int(i), true
	case int64:
		return int(i), true
	case uint:
		return int(i), true
	case uint32:
		return int(i), true
	case uint64:
		return int(i), true
	}
	return 0, false
}
