package ast

import "articc/internal/source"

type DeclKind uint8

const (
	DeclError DeclKind = iota
	DeclLet            // let <ptrn> [= <init>]
	DeclFn             // fn name<T...>(params) [-> ret] = body
	DeclStruct         // struct name<T...> { fields }
	DeclEnum           // enum name<T...> { options }
	DeclTypeAlias      // type name<T...> = <type>
	DeclMod            // mod name { decls }
)

// Decl is a single top-level or nested declaration. Only the fields for
// Kind are meaningful; the rest are zero.
//
// Sym is filled once by the binder (the symbol this declaration introduces),
// TypeSlot is filled once by the checker (the declaration's own type: a pi
// type for Fn, a nominal type for Struct/Enum), and DefSlot is filled once
// by the emitter (the IR definition backing the declaration, e.g. a CPS
// lambda for Fn). All three are write-once.
type Decl struct {
	Kind DeclKind
	Loc  source.Loc

	Name source.StringID

	// DeclLet
	Ptrn PtrnID
	Init ExprID

	// DeclFn / DeclStruct / DeclEnum / DeclTypeAlias
	TypeParams Range

	// DeclFn
	Params  Range
	RetType TypeID // NoTypeID if omitted, inferred from the body
	Body    ExprID

	// DeclStruct
	Fields Range

	// DeclEnum
	Options Range

	// DeclTypeAlias
	Aliased TypeID

	// DeclMod
	Body_ []DeclID

	Sym      uint32 // symbols.ID, 0 = unresolved
	TypeSlot uint32 // types.ID, 0 = unresolved
	DefSlot  uint32 // cir.DefID, 0 = unresolved; the emitter's IR handle for this declaration
}

// Param is a function parameter: a name with a mandatory type annotation.
type Param struct {
	Name source.StringID
	Type TypeID
	Loc  source.Loc
	Sym  uint32
}

// FieldDecl is a struct field declaration.
type FieldDecl struct {
	Name source.StringID
	Type TypeID
	Loc  source.Loc
}

// OptionDecl is one constructor of an enum. Payload is NoTypeID for a
// nullary option (e.g. `None`), or a type (often a Tuple TypeExpr) for an
// option carrying data (e.g. `Some(T)`).
type OptionDecl struct {
	Name    source.StringID
	Payload TypeID
	Loc     source.Loc
}

// TypeParam is a generic type parameter introduced by a struct/enum/fn decl.
type TypeParam struct {
	Name source.StringID
	Loc  source.Loc
	Sym  uint32
}

// Case is one arm of a match expression.
type Case struct {
	Ptrn  PtrnID
	Guard ExprID // NoExprID if unguarded
	Body  ExprID
	Loc   source.Loc
}
