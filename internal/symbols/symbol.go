package symbols

import (
	"articc/internal/ast"
	"articc/internal/source"
)

// SymbolKind classifies what a symbol names.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolModule
	SymbolFunction
	SymbolLet
	SymbolParam
	SymbolStruct
	SymbolEnum
	SymbolTypeAlias
	SymbolTypeParam
	SymbolField  // struct field, resolved via the struct's own member scope
	SymbolOption // enum option, resolved via Enum::Option paths
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolModule:
		return "module"
	case SymbolFunction:
		return "function"
	case SymbolLet:
		return "let"
	case SymbolParam:
		return "param"
	case SymbolStruct:
		return "struct"
	case SymbolEnum:
		return "enum"
	case SymbolTypeAlias:
		return "type alias"
	case SymbolTypeParam:
		return "type parameter"
	case SymbolField:
		return "field"
	case SymbolOption:
		return "option"
	default:
		return "invalid"
	}
}

// SymbolFlags hold miscellaneous per-symbol bits.
type SymbolFlags uint16

const (
	SymbolFlagMutable SymbolFlags = 1 << iota
	SymbolFlagBuiltin
	SymbolFlagUsed // set the first time the binder resolves a path to this symbol
)

// SymbolDecl records where a symbol came from, for diagnostics ("defined here").
type SymbolDecl struct {
	SourceFile source.FileID
	Decl       ast.DeclID
	Expr       ast.ExprID // ExprFn for a lambda-bound parameter, NoExprID otherwise
}

// Symbol is a named entity visible in some Scope. Field/Option decls are
// never pushed into a binder scope directly; they are chained via Decl and
// looked up by name when the checker resolves a projection or enum path.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Loc   source.Loc
	Flags SymbolFlags
	Decl  SymbolDecl

	// Merge-on-redeclaration: a struct/enum/fn may be declared once and its
	// later reference sites should see the same symbol; Prev links to the
	// equally-named symbol this one redeclares in the same scope or shadows
	// in an ancestor scope; lookup never follows it.
	Prev SymbolID
}

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }
