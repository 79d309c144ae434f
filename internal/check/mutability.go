package check

import (
	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/symbols"
)

// checkMut verifies that id names a mutable place: a path bound by a `mut`
// pattern, reached through any chain of field, tuple or array projections.
// Anything else — a call result, a literal, an arbitrary expression — is
// rejected, since only a named place can be reassigned.
func (c *Checker) checkMut(id ast.ExprID) {
	e := c.Mod.Expr(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprProj:
		c.checkMut(e.Base)
	case ast.ExprPath:
		c.checkMutPath(e)
	default:
		c.reportErr(e.Loc, diag.TypNonMutableAssignment, "assignment target is not a place")
	}
}

func (c *Checker) checkMutPath(e *ast.Expr) {
	if e.Sym == 0 {
		return
	}
	sym := symbols.SymbolID(e.Sym)
	s := c.Table.Symbols.Get(sym)
	if s == nil || s.Flags.Has(symbols.SymbolFlagMutable) {
		return
	}
	c.reportErrWithNotes(e.Loc, diag.TypNonMutableAssignment,
		"'"+c.name(s.Name)+"' is not declared mutable",
		[]diag.Note{{Span: c.toSpan(s.Loc), Msg: "consider binding it with 'let mut'"}})
}
