package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates every shape a Type can take. Structural kinds (Unit
// through Fn) are interned by structural equality; nominal kinds (Struct,
// Union, Alias) and GenericParam/Forall are interned by identity — each
// declaration site allocates exactly one slot, even though many of its
// uses share the same structural shape.
type Kind uint8

const (
	KindInvalid Kind = iota // the error type, absorbs into any join/meet
	KindUnit
	KindNothing // the bottom type (no_ret); subtype of everything
	KindBool
	KindString
	KindInt
	KindFloat
	KindChar
	KindArray
	KindPtr
	KindTuple
	KindFn          // non-generalized function (pi) type
	KindStruct      // nominal record type
	KindUnion       // nominal sum type (this language's "enum")
	KindAlias       // nominal alias, transparently equal to its target
	KindGenericParam
	KindForall // a polymorphic type scheme: forall <params>. body
	KindMem    // the CPS emitter's memory-token type, threaded through basic blocks
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindNothing:
		return "!"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindArray:
		return "array"
	case KindPtr:
		return "ptr"
	case KindTuple:
		return "tuple"
	case KindFn:
		return "fn"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindAlias:
		return "alias"
	case KindGenericParam:
		return "param"
	case KindForall:
		return "forall"
	case KindMem:
		return "mem"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ArrayDynamicLength marks an array type with unknown compile-time length.
const ArrayDynamicLength = ^uint32(0)

// Type is the compact descriptor the interner hashes and stores. Payload
// indexes into one of the side tables (fns/structs/unions/aliases/params/
// foralls/tuples) according to Kind.
type Type struct {
	Kind    Kind
	Elem    TypeID // KindArray, KindPtr
	Count   uint32 // KindArray length, or KindGenericParam's owning decl id
	Payload uint32
}

func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

func MakePtr(elem TypeID) Type {
	return Type{Kind: KindPtr, Elem: elem}
}
