// Package check implements bidirectional type checking, the second
// semantic pass over a module, grounded on artic's TypeChecker (check.cpp).
// It populates every node's TypeSlot, enforces mutability on assignment
// targets, resolves polymorphic instantiation, and reports type mismatches.
// Every diagnostic is reported once, at the narrowest location, and the
// error type absorbs into its surroundings so one mistake does not cascade
// into a wall of derived complaints.
package check

import (
	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/source"
	"articc/internal/symbols"
	"articc/internal/types"
)

// declState tracks a declaration's progress through inference, mirroring
// check.cpp's Unstarted -> InProgress -> Done state machine. Re-entering a
// decl that is already InProgress is a recursive-inference error.
type declState uint8

const (
	declUnstarted declState = iota
	declInProgress
	declDone
)

// fnContext is pushed for every function body being checked, so Return can
// find its enclosing function's declared (or still-being-inferred) result
// type, and Break/Continue can find whether they are inside a loop.
type fnContext struct {
	retType    types.TypeID
	hasRetType bool
	loopDepth  int
}

// Checker drives one module through type checking. It shares Table with
// the binder that ran before it (symbol references were already resolved)
// and owns the type interner that every TypeSlot ultimately points into.
type Checker struct {
	Mod      *ast.Module
	Table    *symbols.Table
	Types    *types.Interner
	FileSet  *source.FileSet
	Reporter diag.Reporter

	state  map[ast.DeclID]declState
	filled map[ast.DeclID]bool
	fns    []*fnContext
	errors int

	// nominalBase holds the bare (uninstantiated) nominal TypeID for each
	// struct/enum/alias declaration, installed before its fields/options are
	// elaborated so self-referential types resolve.
	nominalBase map[ast.DeclID]types.TypeID
	// typeParams holds, per owning decl, the ordered GenericParam TypeIDs
	// introduced by its own type-parameter list, used by Apply to build the
	// substitution pair passed to Types.Rewrite.
	typeParams map[ast.DeclID][]types.TypeID
	// typeParamSym maps a TypeParam symbol to its registered GenericParam
	// TypeID, so a TypeExprPath referencing a type parameter by name
	// resolves to the right structural variable.
	typeParamSym map[symbols.SymbolID]types.TypeID
}

// New constructs a Checker for mod. tin is typically fresh (NewInterner)
// unless the caller wants several modules to share one type world.
func New(mod *ast.Module, table *symbols.Table, tin *types.Interner, fileSet *source.FileSet, reporter diag.Reporter) *Checker {
	return &Checker{
		Mod:          mod,
		Table:        table,
		Types:        tin,
		FileSet:      fileSet,
		Reporter:     reporter,
		state:        make(map[ast.DeclID]declState),
		filled:       make(map[ast.DeclID]bool),
		nominalBase:  make(map[ast.DeclID]types.TypeID),
		typeParams:   make(map[ast.DeclID][]types.TypeID),
		typeParamSym: make(map[symbols.SymbolID]types.TypeID),
	}
}

// Run checks every top-level declaration, head pass then full pass, like
// Binder.Run: head registers each declaration's own signature (so mutually
// recursive top-level functions/types see each other), full infers bodies.
// It returns true iff no error was reported.
func (c *Checker) Run() bool {
	for _, id := range c.Mod.Top {
		c.declHead(id)
	}
	for _, id := range c.Mod.Top {
		c.declFull(id)
	}
	return c.errors == 0
}

func (c *Checker) curFn() *fnContext {
	if len(c.fns) == 0 {
		return nil
	}
	return c.fns[len(c.fns)-1]
}

func (c *Checker) pushFn(ctx *fnContext) { c.fns = append(c.fns, ctx) }
func (c *Checker) popFn()                { c.fns = c.fns[:len(c.fns)-1] }

func (c *Checker) enterLoop() {
	if fc := c.curFn(); fc != nil {
		fc.loopDepth++
	}
}

func (c *Checker) exitLoop() {
	if fc := c.curFn(); fc != nil {
		fc.loopDepth--
	}
}

func (c *Checker) inLoop() bool {
	fc := c.curFn()
	return fc != nil && fc.loopDepth > 0
}

func (c *Checker) name(id source.StringID) string {
	s, _ := c.Table.Strings.Lookup(id)
	return s
}

func (c *Checker) errType() types.TypeID { return c.Types.Builtins().Invalid }

func (c *Checker) toSpan(loc source.Loc) source.Span {
	if c.FileSet == nil {
		return source.Span{}
	}
	return loc.ToSpan(c.FileSet)
}

// shouldEmitError is should_emit_error(t): a type that already contains the
// error type has already had a diagnostic reported for it somewhere inside;
// reporting again here would just be noise.
func (c *Checker) shouldEmitError(t types.TypeID) bool {
	return !c.Types.HasError(t)
}

func (c *Checker) reportErr(loc source.Loc, code diag.Code, msg string) {
	c.reportErrWithNotes(loc, code, msg, nil)
}

func (c *Checker) reportErrWithNotes(loc source.Loc, code diag.Code, msg string, notes []diag.Note) {
	c.errors++
	if c.Reporter == nil {
		return
	}
	c.Reporter.Report(code, diag.SevError, c.toSpan(loc), msg, notes, nil)
}

func (c *Checker) warn(loc source.Loc, code diag.Code, msg string) {
	if c.Reporter == nil {
		return
	}
	c.Reporter.Report(code, diag.SevWarning, c.toSpan(loc), msg, nil, nil)
}

// symbolType returns the TypeID already stored on the declaration (or
// function-literal expression) a symbol points to, inferring it first via
// declHead/declFull if it hasn't run yet. Used by Path to type its head.
func (c *Checker) symbolType(sym symbols.SymbolID) types.TypeID {
	s := c.Table.Symbols.Get(sym)
	if s == nil {
		return c.errType()
	}
	if s.Decl.Expr.IsValid() {
		// A lambda-bound parameter: its type comes from the annotation on
		// the owning ExprFn's Param entry, not from a Decl.
		return c.fnExprParamType(s)
	}
	if s.Decl.Decl.IsValid() {
		c.declHead(s.Decl.Decl)
		c.declFull(s.Decl.Decl)
		d := c.Mod.Decl(s.Decl.Decl)
		if d == nil {
			return c.errType()
		}
		return types.TypeID(d.TypeSlot)
	}
	return c.errType()
}

// fnExprParamType finds the parameter of a lambda matching s by name — a
// lambda's own parameter list never repeats a name, so name identity is
// enough to recover which Param the symbol names without a reverse index
// from Symbol back to its Param slot.
func (c *Checker) fnExprParamType(s *symbols.Symbol) types.TypeID {
	e := c.Mod.Expr(s.Decl.Expr)
	if e == nil {
		return c.errType()
	}
	for _, p := range c.Mod.ParamSlice(e.Params) {
		if p.Name == s.Name {
			return c.typeOf(p.Type)
		}
	}
	return c.errType()
}
