package binder

import (
	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/source"
	"articc/internal/symbols"
)

// resolveMemberPath resolves a multi-segment reference: an ordinary
// identifier lookup for segments[0], then at most one extra segment naming
// an enum option (Enum::Option) or a mod member (Mod::member). Longer paths
// are rejected: nested module access was dropped from the surface language,
// matching Path::bind's single level of member nesting.
//
// It returns the head symbol (segments[0]'s binding) so callers can stash it
// on the node's *Sym field; the second segment, when present, is validated
// but has no symbol of its own to record (enum options and module members
// don't carry Sym slots in this AST).
func (b *Binder) resolveMemberPath(segments []source.StringID, loc source.Loc) symbols.SymbolID {
	if len(segments) == 0 {
		return symbols.NoSymbolID
	}
	head := b.resolvePath(segments[0], loc)
	if !head.IsValid() {
		return symbols.NoSymbolID
	}
	if len(segments) == 1 {
		return head
	}
	if len(segments) > 2 {
		b.reportErr(loc, diag.BndAmbiguousEnumPath, "paths may reference at most one member")
		return head
	}
	member := b.name(segments[1])
	sym := b.Table.Symbols.Get(head)
	if sym == nil {
		return head
	}
	switch sym.Kind {
	case symbols.SymbolEnum:
		d := b.Mod.Decl(sym.Decl.Decl)
		if d == nil || !b.hasOption(d, member) {
			b.reportErr(loc, diag.BndModuleMemberNotFound, "enum '"+b.name(sym.Name)+"' has no option '"+member+"'")
		}
	case symbols.SymbolModule:
		d := b.Mod.Decl(sym.Decl.Decl)
		if d == nil || !b.hasModuleMember(d, member) {
			b.reportErr(loc, diag.BndModuleMemberNotFound, "module '"+b.name(sym.Name)+"' has no member '"+member+"'")
		}
	default:
		b.reportErr(loc, diag.BndModuleMemberNotFound, "'"+b.name(sym.Name)+"' has no member '"+member+"'")
	}
	return head
}

func (b *Binder) hasOption(d *ast.Decl, member string) bool {
	for _, opt := range b.Mod.OptionSlice(d.Options) {
		if b.name(opt.Name) == member {
			return true
		}
	}
	return false
}

func (b *Binder) hasModuleMember(d *ast.Decl, member string) bool {
	for _, childID := range d.Body_ {
		child := b.Mod.Decl(childID)
		if child != nil && b.name(child.Name) == member {
			return true
		}
	}
	return false
}
