package ast

import "articc/internal/source"

type PtrnKind uint8

const (
	PtrnError PtrnKind = iota
	PtrnTyped   // (ptrn : T)
	PtrnId      // a binding, possibly `mut`, possibly `_`
	PtrnLiteral // a literal pattern, matched by equality
	PtrnRecord  // Struct { field: ptrn, ... }
	PtrnCtor    // Enum::Option(ptrn, ...) or Enum::Option
	PtrnTuple
	PtrnArray
)

// RecordFieldPtrn is one `name: ptrn` entry of a record pattern.
type RecordFieldPtrn struct {
	Name source.StringID
	Sub  PtrnID
	Loc  source.Loc
}

// Ptrn is a pattern node, appearing in let-bindings, function parameters,
// and match arms. Sym is filled by the binder for PtrnId; it is the new
// symbol the pattern introduces.
type Ptrn struct {
	Kind PtrnKind
	Loc  source.Loc

	// PtrnTyped
	Sub    PtrnID
	Ann    TypeID

	// PtrnId
	Name source.StringID
	Mut  bool
	Sym  uint32

	// PtrnLiteral
	LitKind LiteralKind
	IntVal  int64
	FloatVal float64
	BoolVal bool
	StrVal  source.StringID

	// PtrnRecord
	RecordSegments []source.StringID
	RecordSym      uint32
	Fields         []RecordFieldPtrn

	// PtrnCtor
	CtorSegments []source.StringID
	CtorSym      uint32
	Payload      []PtrnID

	// PtrnTuple / PtrnArray
	Elems []PtrnID

	TypeSlot uint32
	DefSlot  uint32 // cir.DefID, 0 = unresolved; written by the emitter for each binding occurrence
}
