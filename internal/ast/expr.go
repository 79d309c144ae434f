package ast

import "articc/internal/source"

type ExprKind uint8

const (
	ExprError ExprKind = iota
	ExprLiteral
	ExprPath
	ExprTuple
	ExprArray
	ExprRepeatArray
	ExprRecord
	ExprProj // field or tuple-index projection: base.name / base.0
	ExprBlock
	ExprCall
	ExprUnary
	ExprBinary
	ExprIf
	ExprMatch
	ExprWhile
	ExprFor
	ExprBreak
	ExprContinue
	ExprReturn
	ExprFn
	ExprCast
	ExprTyped // (expr : T) ascription, switches checking to check-mode
)

type LiteralKind uint8

const (
	LitUnit LiteralKind = iota
	LitBool
	LitInt
	LitFloat
	LitChar
	LitString
)

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryPlus
)

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
	BinAssign // a = b, requires a mutable place
)

// RecordField is one `name: value` entry of a record (struct) literal.
type RecordField struct {
	Name  source.StringID
	Value ExprID
	Loc   source.Loc
}

// Expr is an expression node. As with Decl, only the fields relevant to
// Kind are populated. TypeSlot is written exactly once, by the checker
// (infer() on the way down or check() on the way up); Sym is written
// exactly once, by the binder, for ExprPath; DefSlot is written exactly
// once, by the emitter, once the expression's IR value has been built.
type Expr struct {
	Kind ExprKind
	Loc  source.Loc

	// ExprLiteral
	LitKind LiteralKind
	IntVal  int64
	FloatVal float64
	BoolVal bool
	StrVal  source.StringID

	// ExprPath
	Segments []source.StringID
	TypeArgs []TypeID
	Sym      uint32 // symbols.ID this path resolves to, 0 = unresolved

	// ExprTuple / ExprArray
	Elems []ExprID

	// ExprRepeatArray
	RepeatElem ExprID
	RepeatSize ExprID

	// ExprRecord
	RecordSegments []source.StringID
	RecordSym      uint32
	Fields         []RecordField

	// ExprProj
	Base      ExprID
	FieldName source.StringID
	FieldIdx  uint32
	IsIndex   bool

	// ExprBlock
	Stmts []StmtID
	Tail  ExprID

	// ExprCall
	Callee ExprID
	Args   []ExprID

	// ExprUnary
	UnOp   UnaryOp
	Operand ExprID

	// ExprBinary
	BinOp BinaryOp
	LHS   ExprID
	RHS   ExprID

	// ExprIf
	Cond ExprID
	Then ExprID
	Else ExprID // NoExprID for a conditional with no else branch

	// ExprMatch
	Scrutinee ExprID
	Cases     Range

	// ExprWhile
	// reuses Cond, Body below

	// ExprFor
	ForPtrn  PtrnID
	ForRange ExprID

	// ExprWhile / ExprFor / ExprFn
	Body ExprID

	// ExprBreak / ExprReturn
	Value ExprID // NoExprID if no value given

	// ExprFn
	Params  Range
	RetType TypeID

	// ExprCast / ExprTyped
	Target TypeID

	TypeSlot uint32 // types.ID, 0 = unresolved
	DefSlot  uint32 // cir.DefID, 0 = unresolved; the emitter's IR handle for this expression's value
}
