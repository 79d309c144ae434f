package ast

import "articc/internal/source"

// Builder constructs a Module's arenas one node at a time. It exists so
// that collaborators without a parser of their own (fixtures, tests) can
// assemble a tree without poking at arena internals directly.
type Builder struct {
	Mod *Module
}

func NewBuilder(file source.FileID) *Builder {
	return &Builder{Mod: NewModule(file)}
}

func (b *Builder) Decl(d Decl) DeclID   { return DeclID(b.Mod.Decls.Allocate(d)) }
func (b *Builder) Stmt(s Stmt) StmtID   { return StmtID(b.Mod.Stmts.Allocate(s)) }
func (b *Builder) Expr(e Expr) ExprID   { return ExprID(b.Mod.Exprs.Allocate(e)) }
func (b *Builder) Type(t TypeExpr) TypeID { return TypeID(b.Mod.Types.Allocate(t)) }
func (b *Builder) Ptrn(p Ptrn) PtrnID   { return PtrnID(b.Mod.Ptrns.Allocate(p)) }

func (b *Builder) Param(p Param) ParamID             { return ParamID(b.Mod.Params.Allocate(p)) }
func (b *Builder) Field(f FieldDecl) FieldID         { return FieldID(b.Mod.Fields.Allocate(f)) }
func (b *Builder) Option(o OptionDecl) OptionID       { return OptionID(b.Mod.Options.Allocate(o)) }
func (b *Builder) TypeParam(tp TypeParam) TypeParamID { return TypeParamID(b.Mod.TypeParams.Allocate(tp)) }
func (b *Builder) Case(c Case) CaseID                { return CaseID(b.Mod.Cases.Allocate(c)) }

// Params/Fields/Options/TypeParams/Cases allocate a contiguous run in the
// matching arena and return it as a Range, since every member of the run
// belongs to exactly one parent.

func (b *Builder) Params(ps []Param) Range {
	if len(ps) == 0 {
		return Range{}
	}
	start := b.Mod.Params.Len() + 1
	for _, p := range ps {
		b.Param(p)
	}
	return Range{Start: start, Count: uint32(len(ps))}
}

func (b *Builder) Fields(fs []FieldDecl) Range {
	if len(fs) == 0 {
		return Range{}
	}
	start := b.Mod.Fields.Len() + 1
	for _, f := range fs {
		b.Field(f)
	}
	return Range{Start: start, Count: uint32(len(fs))}
}

func (b *Builder) Options_(os []OptionDecl) Range {
	if len(os) == 0 {
		return Range{}
	}
	start := b.Mod.Options.Len() + 1
	for _, o := range os {
		b.Option(o)
	}
	return Range{Start: start, Count: uint32(len(os))}
}

func (b *Builder) TypeParams(tps []TypeParam) Range {
	if len(tps) == 0 {
		return Range{}
	}
	start := b.Mod.TypeParams.Len() + 1
	for _, tp := range tps {
		b.TypeParam(tp)
	}
	return Range{Start: start, Count: uint32(len(tps))}
}

func (b *Builder) Cases(cs []Case) Range {
	if len(cs) == 0 {
		return Range{}
	}
	start := b.Mod.Cases.Len() + 1
	for _, c := range cs {
		b.Case(c)
	}
	return Range{Start: start, Count: uint32(len(cs))}
}

// AddTop appends a top-level declaration in source order.
func (b *Builder) AddTop(id DeclID) {
	b.Mod.Top = append(b.Mod.Top, id)
}
