package check

import (
	"articc/internal/ast"
	"articc/internal/symbols"
	"articc/internal/types"
)

// typeOf elaborates a surface type annotation into an interned types.TypeID.
// Unlike expr/ptrn checking it has no memoization slot of its own (TypeExpr
// carries no TypeSlot): a given syntax node may be elaborated more than
// once, which is safe since elaboration has no side effects beyond interning.
func (c *Checker) typeOf(id ast.TypeID) types.TypeID {
	t := c.Mod.Type(id)
	if t == nil {
		return c.errType()
	}
	switch t.Kind {
	case ast.TypeExprError:
		return c.errType()

	case ast.TypeExprPrim:
		b := c.Types.Builtins()
		switch t.Prim {
		case ast.PrimUnit:
			return b.Unit
		case ast.PrimBool:
			return b.Bool
		case ast.PrimInt:
			return b.Int
		case ast.PrimFloat:
			return b.Float
		case ast.PrimChar:
			return b.Char
		case ast.PrimString:
			return b.String
		}
		return c.errType()

	case ast.TypeExprPath:
		return c.pathType(t)

	case ast.TypeExprTuple:
		elems := make([]types.TypeID, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.typeOf(e)
		}
		return c.Types.RegisterTuple(elems)

	case ast.TypeExprArray:
		elem := c.typeOf(t.Elem)
		count := types.ArrayDynamicLength
		if t.Size.IsValid() {
			// A sized array's length comes from a constant expression; this
			// core does not evaluate constants, so any explicit size is
			// recorded as dynamic and left for a downstream const-evaluator.
			count = types.ArrayDynamicLength
		}
		return c.Types.Intern(types.MakeArray(elem, count))

	case ast.TypeExprFn:
		params := make([]types.TypeID, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.typeOf(p)
		}
		ret := c.typeOf(t.Ret)
		return c.Types.RegisterFn(params, ret)

	case ast.TypeExprPtr:
		return c.Types.Intern(types.MakePtr(c.typeOf(t.Pointee)))
	}
	return c.errType()
}

// pathType resolves a TypeExprPath's symbol (set by the binder) to a
// struct, union, alias or type-parameter TypeID, applying type arguments
// for a generic nominal declaration.
func (c *Checker) pathType(t *ast.TypeExpr) types.TypeID {
	if t.Sym == 0 {
		return c.errType()
	}
	sym := symbols.SymbolID(t.Sym)
	s := c.Table.Symbols.Get(sym)
	if s == nil {
		return c.errType()
	}

	args := make([]types.TypeID, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = c.typeOf(a)
	}

	switch s.Kind {
	case symbols.SymbolTypeParam:
		return c.typeParamSym[sym]

	case symbols.SymbolStruct, symbols.SymbolEnum, symbols.SymbolTypeAlias:
		c.declHead(s.Decl.Decl)
		return c.applyNominal(s.Decl.Decl, args, t.Loc)

	default:
		return c.errType()
	}
}
