package check

import (
	"articc/internal/diag"
	"articc/internal/source"
	"articc/internal/types"
)

// reconcile is the single place a type-mismatch diagnostic is reported: it
// compares a construct's natural type against the type its context expects
// and, on failure, absorbs the error rather than let a mismatch cascade
// into every enclosing construct. expected == NoTypeID means "no context",
// which happens to share its zero value with the error type itself
// (Invalid interns to TypeID 0), so an already-broken expected type takes
// the same no-op path as a genuinely absent one.
func (c *Checker) reconcile(loc source.Loc, natural, expected types.TypeID) types.TypeID {
	if expected == types.NoTypeID {
		return natural
	}
	if natural == expected {
		return expected
	}
	if j, ok := c.Types.Join(natural, expected); ok {
		return j
	}
	if c.shouldEmitError(natural) && c.shouldEmitError(expected) {
		var notes []diag.Note
		if expected == c.Types.Builtins().Unit {
			notes = c.explainNoRet()
		}
		c.reportErrWithNotes(loc, diag.TypMismatch,
			"expected type '"+c.typeName(expected)+"', found '"+c.typeName(natural)+"'", notes)
	}
	return c.errType()
}

// explainNoRet is check.cpp's explain_no_ret: a mismatch against an
// expected '()' is often really a forgotten 'break'/'continue'/'return' —
// those always produce no_ret, which absorbs into any expected type, so a
// branch that was meant to diverge instead of yielding a value wouldn't
// have tripped this diagnostic at all.
func (c *Checker) explainNoRet() []diag.Note {
	return []diag.Note{{Msg: "add an 'else' branch, or end this branch with 'break', 'continue' or 'return' so it never needs to produce a value"}}
}

// typeName renders t for a diagnostic message.
func (c *Checker) typeName(t types.TypeID) string {
	tt, ok := c.Types.Lookup(t)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case types.KindStruct:
		if info, ok := c.Types.StructInfo(t); ok {
			return c.name(info.Name)
		}
	case types.KindUnion:
		if info, ok := c.Types.UnionInfo(t); ok {
			return c.name(info.Name)
		}
	case types.KindAlias:
		if info, ok := c.Types.AliasInfo(t); ok {
			return c.name(info.Name)
		}
	case types.KindGenericParam:
		if info, ok := c.Types.TypeParamInfo(t); ok {
			return c.name(info.Name)
		}
	}
	return tt.Kind.String()
}
