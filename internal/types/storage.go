package types

import (
	"sync"
)

// Canonical atomic instances, returned by the constructors below so that
// common types are shared rather than reallocated.
var (
	None    = &Type{kind: KindNone}
	Bool    = &Type{kind: KindBool, width: 8}
	Int8    = &Type{kind: KindInteger, width: 8}
	Int16   = &Type{kind: KindInteger, width: 16}
	Int32   = &Type{kind: KindInteger, width: 32}
	Int64   = &Type{kind: KindInteger, width: 64}
	Float32 = &Type{kind: KindFloat, width: 32}
	Float64 = &Type{kind: KindFloat, width: 64}
)

// storage is the canonical-instance cache for parameterized atomic kinds
// (Integer/Float/Str of arbitrary width) and for composite shapes
// (Pointer/Function/Tuple), keyed by structural shape so that two calls
// describing the same type return the identical *Type.
type storage struct {
	mu        sync.Mutex
	integers  map[uint32]*Type
	floats    map[uint32]*Type
	strs      map[uint32]*Type
	pointers  map[*Type]*Type
	functions map[string]*Type
	tuples    map[string]*Type
}

var globalStorage = &storage{
	integers: map[uint32]*Type{8: Int8, 16: Int16, 32: Int32, 64: Int64},
	floats:   map[uint32]*Type{32: Float32, 64: Float64},
	strs:     map[uint32]*Type{},
	pointers: map[*Type]*Type{},
}

// Integer returns the canonical Integer(width) instance.
func Integer(width uint32) *Type {
	globalStorage.mu.Lock()
	defer globalStorage.mu.Unlock()
	if t, ok := globalStorage.integers[width]; ok {
		return t
	}
	t := &Type{kind: KindInteger, width: width}
	globalStorage.integers[width] = t
	return t
}

// FloatType returns the canonical Float(width) instance.
func FloatType(width uint32) *Type {
	globalStorage.mu.Lock()
	defer globalStorage.mu.Unlock()
	if t, ok := globalStorage.floats[width]; ok {
		return t
	}
	t := &Type{kind: KindFloat, width: width}
	globalStorage.floats[width] = t
	return t
}

// Str returns the canonical Str(charWidth) instance.
func Str(charWidth uint32) *Type {
	globalStorage.mu.Lock()
	defer globalStorage.mu.Unlock()
	if t, ok := globalStorage.strs[charWidth]; ok {
		return t
	}
	t := &Type{kind: KindStr, width: charWidth}
	globalStorage.strs[charWidth] = t
	return t
}

// Pointer returns the canonical Pointer(pointee) instance.
func Pointer(pointee *Type) *Type {
	globalStorage.mu.Lock()
	defer globalStorage.mu.Unlock()
	if t, ok := globalStorage.pointers[pointee]; ok {
		return t
	}
	t := &Type{kind: KindPointer, pointee: pointee}
	globalStorage.pointers[pointee] = t
	return t
}

// Function returns a Function(args -> result) instance. Functions are
// cached by their printed shape since their identity is rarely load-bearing
// and args slices are not comparable map keys.
func Function(args []*Type, result *Type) *Type {
	t := &Type{kind: KindFunction, args: append([]*Type(nil), args...), result: result}
	key := t.String()
	globalStorage.mu.Lock()
	defer globalStorage.mu.Unlock()
	if globalStorage.functions == nil {
		globalStorage.functions = map[string]*Type{}
	}
	if existing, ok := globalStorage.functions[key]; ok {
		return existing
	}
	globalStorage.functions[key] = t
	return t
}

// Tuple returns a Tuple(members…) instance, cached by printed shape.
func Tuple(members []*Type) *Type {
	t := &Type{kind: KindTuple, members: append([]*Type(nil), members...)}
	key := t.String()
	globalStorage.mu.Lock()
	defer globalStorage.mu.Unlock()
	if globalStorage.tuples == nil {
		globalStorage.tuples = map[string]*Type{}
	}
	if existing, ok := globalStorage.tuples[key]; ok {
		return existing
	}
	globalStorage.tuples[key] = t
	return t
}
