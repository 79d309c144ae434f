package ast

import "articc/internal/source"

// Module is a single compilation unit: one source file, parsed (or, absent a
// parser, constructed directly by a front-end collaborator) into arena-owned
// nodes. Every *ID in the package indexes into one of these arenas.
type Module struct {
	File source.FileID

	Decls Arena[Decl]
	Stmts Arena[Stmt]
	Exprs Arena[Expr]
	Types Arena[TypeExpr]
	Ptrns Arena[Ptrn]

	// Params/Fields/Options/TypeParams/Cases hold list-item payloads that
	// belong to exactly one parent node, addressed by their own ID space so
	// the parent can store a cheap (start, count) pair instead of a slice.
	Params     Arena[Param]
	Fields     Arena[FieldDecl]
	Options    Arena[OptionDecl]
	TypeParams Arena[TypeParam]
	Cases      Arena[Case]

	// Top contains the top-level declarations in source order.
	Top []DeclID
}

func NewModule(file source.FileID) *Module {
	return &Module{
		File:       file,
		Decls:      *NewArena[Decl](64),
		Stmts:      *NewArena[Stmt](128),
		Exprs:      *NewArena[Expr](256),
		Types:      *NewArena[TypeExpr](64),
		Ptrns:      *NewArena[Ptrn](64),
		Params:     *NewArena[Param](64),
		Fields:     *NewArena[FieldDecl](32),
		Options:    *NewArena[OptionDecl](32),
		TypeParams: *NewArena[TypeParam](16),
		Cases:      *NewArena[Case](32),
	}
}

func (m *Module) Decl(id DeclID) *Decl   { return m.Decls.Get(uint32(id)) }
func (m *Module) Stmt(id StmtID) *Stmt   { return m.Stmts.Get(uint32(id)) }
func (m *Module) Expr(id ExprID) *Expr   { return m.Exprs.Get(uint32(id)) }
func (m *Module) Type(id TypeID) *TypeExpr { return m.Types.Get(uint32(id)) }
func (m *Module) Ptrn(id PtrnID) *Ptrn   { return m.Ptrns.Get(uint32(id)) }

// Slice helpers: a parent stores (Start, Count) into one of the sub-arenas
// rather than a Go slice, so the tree stays arena-owned end to end.
type Range struct {
	Start uint32
	Count uint32
}

func (m *Module) ParamSlice(r Range) []Param {
	return sliceOf(m.Params.Slice(), r)
}
func (m *Module) FieldSlice(r Range) []FieldDecl {
	return sliceOf(m.Fields.Slice(), r)
}
func (m *Module) OptionSlice(r Range) []OptionDecl {
	return sliceOf(m.Options.Slice(), r)
}
func (m *Module) TypeParamSlice(r Range) []TypeParam {
	return sliceOf(m.TypeParams.Slice(), r)
}
func (m *Module) CaseSlice(r Range) []Case {
	return sliceOf(m.Cases.Slice(), r)
}

func sliceOf[T any](all []T, r Range) []T {
	if r.Count == 0 {
		return nil
	}
	return all[r.Start-1 : r.Start-1+r.Count]
}
