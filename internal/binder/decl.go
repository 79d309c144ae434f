package binder

import (
	"articc/internal/ast"
	"articc/internal/symbols"
)

// bindDeclHead inserts the symbol a declaration introduces, before any
// declaration's body is bound, so mutually recursive top-level/module-level
// declarations can reference each other regardless of source order.
// Mirrors Decl::bind_head: only Fn/Struct/Enum/TypeAlias/Mod have one: Let's
// own identifier comes from its pattern and is bound inside Decl::bind.
func (b *Binder) bindDeclHead(id ast.DeclID) {
	d := b.Mod.Decl(id)
	if d == nil {
		return
	}
	switch d.Kind {
	case ast.DeclFn, ast.DeclStruct, ast.DeclEnum, ast.DeclTypeAlias, ast.DeclMod:
		d.Sym = uint32(b.insertSymbol(d.Name, declSymbolKind(d.Kind), d.Loc, symbols.SymbolDecl{
			SourceFile: b.Mod.File,
			Decl:       id,
		}))
	}
}

func declSymbolKind(k ast.DeclKind) symbols.SymbolKind {
	switch k {
	case ast.DeclFn:
		return symbols.SymbolFunction
	case ast.DeclStruct:
		return symbols.SymbolStruct
	case ast.DeclEnum:
		return symbols.SymbolEnum
	case ast.DeclTypeAlias:
		return symbols.SymbolTypeAlias
	case ast.DeclMod:
		return symbols.SymbolModule
	default:
		return symbols.SymbolInvalid
	}
}

// bindDecl binds the body of a declaration. The head symbol (if any) was
// already inserted by bindDeclHead.
func (b *Binder) bindDecl(id ast.DeclID) {
	d := b.Mod.Decl(id)
	if d == nil {
		return
	}
	switch d.Kind {
	case ast.DeclLet:
		b.bindLet(id, d)
	case ast.DeclFn:
		b.bindFnDecl(id, d)
	case ast.DeclStruct:
		b.bindStructDecl(id, d)
	case ast.DeclEnum:
		b.bindEnumDecl(id, d)
	case ast.DeclTypeAlias:
		b.bindTypeAliasDecl(id, d)
	case ast.DeclMod:
		b.bindModDecl(id, d)
	}
}

func (b *Binder) bindLet(id ast.DeclID, d *ast.Decl) {
	if d.Init.IsValid() {
		b.bindExpr(d.Init)
	}
	b.bindPtrn(d.Ptrn, symbols.SymbolDecl{SourceFile: b.Mod.File, Decl: id})
}

func (b *Binder) bindFnDecl(id ast.DeclID, d *ast.Decl) {
	decl := symbols.SymbolDecl{SourceFile: b.Mod.File, Decl: id}
	b.pushScope(symbols.ScopeFunction, symbols.ScopeOwner{Kind: symbols.ScopeOwnerDecl, SourceFile: b.Mod.File, Decl: id}, d.Loc)
	b.bindTypeParams(d.TypeParams, decl)
	b.bindParamsInPlace(d.Params, decl)
	if d.RetType.IsValid() {
		b.bindType(d.RetType)
	}
	if d.Body.IsValid() {
		b.pushFn()
		b.bindExpr(d.Body)
		b.popFn()
	}
	b.popScope()
}

// bindParamsInPlace binds each parameter's type annotation and inserts its
// symbol, writing the Sym field back onto the arena-owned Param.
func (b *Binder) bindParamsInPlace(r ast.Range, decl symbols.SymbolDecl) {
	params := b.Mod.Params.Slice()
	for i := r.Start - 1; r.Count > 0 && i < r.Start-1+r.Count; i++ {
		p := &params[i]
		b.bindType(p.Type)
		p.Sym = uint32(b.insertSymbol(p.Name, symbols.SymbolParam, p.Loc, decl))
	}
}

func (b *Binder) bindTypeParams(r ast.Range, decl symbols.SymbolDecl) {
	tps := b.Mod.TypeParams.Slice()
	for i := r.Start - 1; r.Count > 0 && i < r.Start-1+r.Count; i++ {
		tp := &tps[i]
		tp.Sym = uint32(b.insertSymbol(tp.Name, symbols.SymbolTypeParam, tp.Loc, decl))
	}
}

func (b *Binder) bindStructDecl(id ast.DeclID, d *ast.Decl) {
	decl := symbols.SymbolDecl{SourceFile: b.Mod.File, Decl: id}
	b.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerDecl, SourceFile: b.Mod.File, Decl: id}, d.Loc)
	b.bindTypeParams(d.TypeParams, decl)
	for _, f := range b.Mod.FieldSlice(d.Fields) {
		b.bindType(f.Type)
	}
	b.popScope()
}

// bindEnumDecl binds each option's payload type, if any. Options are not
// bound into any scope: they have no Sym slot of their own and are resolved
// later by the checker via Enum::Option path lookup against the struct/enum
// member table, not the binder's scope stack.
func (b *Binder) bindEnumDecl(id ast.DeclID, d *ast.Decl) {
	decl := symbols.SymbolDecl{SourceFile: b.Mod.File, Decl: id}
	b.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerDecl, SourceFile: b.Mod.File, Decl: id}, d.Loc)
	b.bindTypeParams(d.TypeParams, decl)
	for _, opt := range b.Mod.OptionSlice(d.Options) {
		if opt.Payload.IsValid() {
			b.bindType(opt.Payload)
		}
	}
	b.popScope()
}

func (b *Binder) bindTypeAliasDecl(id ast.DeclID, d *ast.Decl) {
	decl := symbols.SymbolDecl{SourceFile: b.Mod.File, Decl: id}
	b.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerDecl, SourceFile: b.Mod.File, Decl: id}, d.Loc)
	b.bindTypeParams(d.TypeParams, decl)
	if d.Aliased.IsValid() {
		b.bindType(d.Aliased)
	}
	b.popScope()
}

// bindModDecl isolates the module body from its surrounding scope: the
// whole frame stack is swapped out, not just one frame pushed, so outer
// symbols (including any prelude frame) are fully invisible inside. Mirrors
// ModDecl::bind's std::swap(scopes_, old).
func (b *Binder) bindModDecl(id ast.DeclID, d *ast.Decl) {
	outer := b.scope
	b.scope = symbols.NoScopeID
	b.pushScope(symbols.ScopeModule, symbols.ScopeOwner{Kind: symbols.ScopeOwnerDecl, SourceFile: b.Mod.File, Decl: id}, d.Loc)
	for _, child := range d.Body_ {
		b.bindDeclHead(child)
	}
	for _, child := range d.Body_ {
		b.bindDecl(child)
	}
	b.popScope()
	b.scope = outer
}
