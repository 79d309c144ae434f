package symbols

import (
	"articc/internal/ast"
	"articc/internal/source"
)

// ScopeKind enumerates the lexical scope categories the binder pushes.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeFile              // artificial root per compiled file
	ScopeModule            // a mod { ... } body, isolated from its enclosing scope
	ScopeFunction          // a fn/lambda body
	ScopeBlock             // any other block: if/while/for/match arm
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// ScopeOwnerKind distinguishes what AST construct opened a scope.
type ScopeOwnerKind uint8

const (
	ScopeOwnerUnknown ScopeOwnerKind = iota
	ScopeOwnerFile
	ScopeOwnerDecl
	ScopeOwnerExpr
)

// ScopeOwner references the AST node that introduced the scope, for
// diagnostics that want to point at "function declared here" and similar.
type ScopeOwner struct {
	Kind       ScopeOwnerKind
	SourceFile source.FileID
	Decl       ast.DeclID
	Expr       ast.ExprID
}

// Scope is one frame of the binder's lexical stack. Symbols is the
// insertion-ordered list of names bound directly in this scope, used both to
// emit "unused identifier" warnings on pop and to list names for the
// did-you-mean suggestion.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ScopeOwner
	Loc       source.Loc
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
	TopLevel  bool
}
