package ast

import "articc/internal/source"

type TypeExprKind uint8

const (
	TypeExprError TypeExprKind = iota
	TypeExprPrim
	TypeExprPath // reference to a struct/enum/alias, optionally with type args
	TypeExprTuple
	TypeExprArray // [T] (slice-like) or [T; N] when Size is set
	TypeExprFn    // fn(params) -> ret
	TypeExprPtr
)

type PrimType uint8

const (
	PrimUnit PrimType = iota
	PrimBool
	PrimInt
	PrimFloat
	PrimChar
	PrimString
)

// TypeExpr is the surface syntax for a type annotation, as written by the
// user (or constructed directly by a front-end collaborator). It is
// elaborated into a types.Type by the checker; it never carries a resolved
// type itself.
type TypeExpr struct {
	Kind TypeExprKind
	Loc  source.Loc

	// TypeExprPrim
	Prim PrimType

	// TypeExprPath
	Segments []source.StringID
	TypeArgs []TypeID
	Sym      uint32 // symbols.ID of the struct/enum/alias decl, 0 = unresolved

	// TypeExprTuple
	Elems []TypeID

	// TypeExprArray
	Elem TypeID
	Size ExprID // NoExprID for an unsized array type

	// TypeExprFn
	Params []TypeID
	Ret    TypeID

	// TypeExprPtr
	Pointee TypeID
	Mut     bool
}
