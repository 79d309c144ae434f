package binder

import (
	"articc/internal/ast"
	"articc/internal/symbols"
)

// bindPtrn binds every identifier a pattern introduces. decl is stamped onto
// each new symbol as its SymbolDecl, so "defined here" diagnostics can point
// back to the enclosing let/match-arm/for-loop/param list.
func (b *Binder) bindPtrn(id ast.PtrnID, decl symbols.SymbolDecl) {
	p := b.Mod.Ptrn(id)
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.PtrnError, ast.PtrnLiteral:
		// no bindings

	case ast.PtrnTyped:
		b.bindType(p.Ann)
		b.bindPtrn(p.Sub, decl)

	case ast.PtrnId:
		sym := b.insertSymbol(p.Name, symbols.SymbolLet, p.Loc, decl)
		p.Sym = uint32(sym)
		if p.Mut {
			if s := b.Table.Symbols.Get(sym); s != nil {
				s.Flags |= symbols.SymbolFlagMutable
			}
		}

	case ast.PtrnRecord:
		p.RecordSym = uint32(b.resolveMemberPath(p.RecordSegments, p.Loc))
		for _, f := range p.Fields {
			b.bindPtrn(f.Sub, decl)
		}

	case ast.PtrnCtor:
		p.CtorSym = uint32(b.resolveMemberPath(p.CtorSegments, p.Loc))
		for _, sub := range p.Payload {
			b.bindPtrn(sub, decl)
		}

	case ast.PtrnTuple, ast.PtrnArray:
		for _, sub := range p.Elems {
			b.bindPtrn(sub, decl)
		}
	}
}
