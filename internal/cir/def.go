// Package cir is the IRWorld collaborator the emitter (component F) drives:
// a continuation-passing IR graph of opaque "definitions" (lambdas,
// applications, tuples, extracts, branches, literals), grounded on artic's
// emit.cpp/RC-style IR and shaped like the teacher's internal/mir arena
// (append-only storage, ID handles, per-kind payload structs).
package cir

import "articc/internal/types"

// DefID identifies one node of the IR graph. NoDefID marks an unset slot,
// matching ast.*.DefSlot's "0 = unresolved" convention.
type DefID uint32

const NoDefID DefID = 0

// DefKind enumerates every IR node shape.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefLam             // a CPS lambda / basic block; Params[0] is always the memory token
	DefParam           // one parameter of a Lam, addressed by (Owner, Index)
	DefApp             // apply Callee to Arg; the sole terminator of a Lam
	DefBranch          // conditional terminator: jump to True or False depending on Cond
	DefTuple           // a tuple of Elems
	DefExtract         // the AtElem'th component of Tuple
	DefLit             // a primitive literal
	DefPrim            // a primitive operation (+, -, ==, ...) over Args
	DefCps2Ds          // wraps a CPS Lam as a direct-style function
	DefDs2Cps          // wraps a direct-style function as a CPS Lam
)

// Def is the tagged-union node type; only the fields for Kind are populated,
// mirroring ast.Expr/ast.Ptrn's own per-kind field layout.
type Def struct {
	Kind DefKind
	Type types.TypeID

	// DefLam
	Params []DefID // Params[0] is the memory-token parameter
	Body   DefID   // the terminator (DefApp or DefBranch); NoDefID until set

	// DefParam
	Owner DefID
	Index int

	// DefApp
	Callee DefID
	Arg    DefID // NoDefID for a nullary application

	// DefBranch
	Cond  DefID
	True  DefID
	False DefID

	// DefTuple
	Elems []DefID

	// DefExtract
	Tuple  DefID
	AtElem int

	// DefLit
	Bits uint64

	// DefPrim
	Op   PrimOp
	Args []DefID

	// DefCps2Ds / DefDs2Cps
	Inner DefID
}

// PrimOp enumerates the primitive operations the emitter lowers Binary/Unary
// expressions to.
type PrimOp uint8

const (
	PrimAdd PrimOp = iota
	PrimSub
	PrimMul
	PrimDiv
	PrimMod
	PrimEq
	PrimNe
	PrimLt
	PrimLe
	PrimGt
	PrimGe
	PrimNeg
	PrimNot
	PrimLen   // element count of an array value
	PrimIndex // dynamic element access of an array value by an integer def
)
