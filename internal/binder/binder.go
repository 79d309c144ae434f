// Package binder implements name binding: the first semantic pass over a
// module, grounded on artic's NameBinder (bind.cpp). It resolves every
// identifier reference to the symbol it names, inserts new symbols for every
// declaration and binding pattern, tracks the enclosing function/loop for
// return/break/continue, and reports unused-identifier and shadowing
// warnings on scope exit.
package binder

import (
	"strings"

	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/source"
	"articc/internal/symbols"
)

// Binder drives one module through name binding. It owns no state the
// checker needs beyond the populated symbols.Table and the Sym slots written
// onto the module's own nodes.
type Binder struct {
	Mod      *ast.Module
	Table    *symbols.Table
	FileSet  *source.FileSet
	Reporter diag.Reporter

	scope   symbols.ScopeID
	fnDepth int
	inLoop  int
	errors  int
}

// New constructs a Binder for mod. table must already have mod.File's root
// scope allocated via Table.FileRoot; callers that bind several modules into
// one shared Table (e.g. a project with several independent entry files)
// call FileRoot once per module before binding it.
func New(mod *ast.Module, table *symbols.Table, fileSet *source.FileSet, reporter diag.Reporter, fileRoot symbols.ScopeID) *Binder {
	return &Binder{
		Mod:      mod,
		Table:    table,
		FileSet:  fileSet,
		Reporter: reporter,
		scope:    fileRoot,
	}
}

// Run binds every top-level declaration, two-pass like ModDecl::bind: all
// heads first (so mutually recursive top-level functions/types can see each
// other), then full bodies. It returns true iff no error was reported.
func (b *Binder) Run() bool {
	for _, id := range b.Mod.Top {
		b.bindDeclHead(id)
	}
	for _, id := range b.Mod.Top {
		b.bindDecl(id)
	}
	b.popScope() // reports unused warnings for the file root, which is a no-op (TopLevel)
	return b.errors == 0
}

func (b *Binder) pushScope(kind symbols.ScopeKind, owner symbols.ScopeOwner, loc source.Loc) symbols.ScopeID {
	id := b.Table.Push(kind, b.scope, owner, loc)
	b.scope = id
	return id
}

// popScope restores the parent scope and reports unused-identifier warnings
// for every binding the popped scope introduced, mirroring
// NameBinder::pop_scope's single-owner heuristic (here: never used).
func (b *Binder) popScope() {
	scope := b.Table.Scopes.Get(b.scope)
	if scope == nil {
		return
	}
	for _, id := range b.Table.Unused(b.scope) {
		sym := b.Table.Symbols.Get(id)
		if sym == nil {
			continue
		}
		b.warn(sym.Loc, diag.BndUnusedIdentifier, "identifier '"+b.name(sym.Name)+"' is never used", []diag.Note{
			{Msg: "prefix unused identifiers with '_'"},
		})
	}
	b.scope = scope.Parent
}

func (b *Binder) pushFn()   { b.fnDepth++ }
func (b *Binder) popFn()    { b.fnDepth-- }
func (b *Binder) pushLoop() { b.inLoop++ }
func (b *Binder) popLoop()  { b.inLoop-- }

func (b *Binder) name(id source.StringID) string {
	s, _ := b.Table.Strings.Lookup(id)
	return s
}

// insertSymbol binds name to a freshly allocated symbol in the current
// scope. Anonymous identifiers ('_'-prefixed) are never bound, matching
// insert_symbol's "do not bind anonymous variables" rule. It reports
// redeclaration (same scope) or shadow (ancestor scope) as appropriate.
func (b *Binder) insertSymbol(name source.StringID, kind symbols.SymbolKind, loc source.Loc, decl symbols.SymbolDecl) symbols.SymbolID {
	nameStr := b.name(name)
	if nameStr == "" || strings.HasPrefix(nameStr, "_") {
		return symbols.NoSymbolID
	}

	shadowSym, shadowScope, shadowed := b.Table.Lookup(b.scope, name)

	sym := b.Table.Symbols.New(&symbols.Symbol{
		Name:  name,
		Kind:  kind,
		Scope: b.scope,
		Loc:   loc,
		Decl:  decl,
	})
	if prev := b.Table.Insert(b.scope, name, sym); prev.IsValid() {
		b.reportRedeclaration(loc, nameStr, prev)
		if s := b.Table.Symbols.Get(sym); s != nil {
			s.Prev = prev
		}
		return sym
	}

	if shadowed {
		if ss := b.Table.Scopes.Get(shadowScope); ss != nil && !ss.TopLevel {
			b.warn(loc, diag.BndShadow, "declaration shadows identifier '"+nameStr+"'", []diag.Note{
				{Span: b.toSpan(b.symLoc(shadowSym)), Msg: "previously declared here"},
			})
		}
		if s := b.Table.Symbols.Get(sym); s != nil {
			s.Prev = shadowSym
		}
	}
	return sym
}

func (b *Binder) symLoc(id symbols.SymbolID) source.Loc {
	sym := b.Table.Symbols.Get(id)
	if sym == nil {
		return source.Loc{}
	}
	return sym.Loc
}

// resolvePath binds the first segment of a path-like reference, reporting
// unresolved-identifier with a "did you mean" suggestion when it fails to
// resolve, exactly like Path::bind.
func (b *Binder) resolvePath(first source.StringID, loc source.Loc) symbols.SymbolID {
	firstStr := b.name(first)
	if strings.HasPrefix(firstStr, "_") {
		b.reportErr(loc, diag.BndUnresolvedIdentifier, "identifiers beginning with '_' cannot be referenced")
		return symbols.NoSymbolID
	}
	sym, _, ok := b.Table.Lookup(b.scope, first)
	if !ok {
		msg := "unknown identifier '" + firstStr + "'"
		notes := []diag.Note(nil)
		if similar := b.Table.FindSimilar(b.scope, firstStr); similar != "" {
			notes = append(notes, diag.Note{Msg: "did you mean '" + similar + "'?"})
		}
		b.reportErrWithNotes(loc, diag.BndUnresolvedIdentifier, msg, notes)
		return symbols.NoSymbolID
	}
	if s := b.Table.Symbols.Get(sym); s != nil {
		s.Flags |= symbols.SymbolFlagUsed
	}
	return sym
}

func (b *Binder) toSpan(loc source.Loc) source.Span {
	if b.FileSet == nil {
		return source.Span{}
	}
	return loc.ToSpan(b.FileSet)
}

func (b *Binder) reportErr(loc source.Loc, code diag.Code, msg string) {
	b.reportErrWithNotes(loc, code, msg, nil)
}

func (b *Binder) reportErrWithNotes(loc source.Loc, code diag.Code, msg string, notes []diag.Note) {
	b.errors++
	if b.Reporter == nil {
		return
	}
	b.Reporter.Report(code, diag.SevError, b.toSpan(loc), msg, notes, nil)
}

func (b *Binder) warn(loc source.Loc, code diag.Code, msg string, notes []diag.Note) {
	if b.Reporter == nil {
		return
	}
	b.Reporter.Report(code, diag.SevWarning, b.toSpan(loc), msg, notes, nil)
}

func (b *Binder) reportRedeclaration(loc source.Loc, name string, prev symbols.SymbolID) {
	b.reportErrWithNotes(loc, diag.BndRedeclaration, "identifier '"+name+"' already declared", []diag.Note{
		{Span: b.toSpan(b.symLoc(prev)), Msg: "previously declared here"},
	})
}
