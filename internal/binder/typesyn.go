package binder

import "articc/internal/ast"

// bindType resolves the symbol a type annotation's path refers to and binds
// every nested type it contains. It never allocates a scope: type syntax
// introduces no new names of its own (type parameters are bound by the
// owning decl/fn/expr before its type annotations are visited).
func (b *Binder) bindType(id ast.TypeID) {
	t := b.Mod.Type(id)
	if t == nil {
		return
	}
	switch t.Kind {
	case ast.TypeExprError, ast.TypeExprPrim:
		// nothing to resolve

	case ast.TypeExprPath:
		t.Sym = uint32(b.resolveMemberPath(t.Segments, t.Loc))
		for _, arg := range t.TypeArgs {
			b.bindType(arg)
		}

	case ast.TypeExprTuple:
		for _, el := range t.Elems {
			b.bindType(el)
		}

	case ast.TypeExprArray:
		b.bindType(t.Elem)
		if t.Size.IsValid() {
			b.bindExpr(t.Size)
		}

	case ast.TypeExprFn:
		for _, p := range t.Params {
			b.bindType(p)
		}
		b.bindType(t.Ret)

	case ast.TypeExprPtr:
		b.bindType(t.Pointee)
	}
}
