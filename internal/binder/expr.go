package binder

import (
	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/symbols"
)

func (b *Binder) bindExpr(id ast.ExprID) {
	e := b.Mod.Expr(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprLiteral:
		// no sub-bindings

	case ast.ExprPath:
		e.Sym = uint32(b.resolveMemberPath(e.Segments, e.Loc))
		for _, t := range e.TypeArgs {
			b.bindType(t)
		}

	case ast.ExprTuple, ast.ExprArray:
		for _, el := range e.Elems {
			b.bindExpr(el)
		}

	case ast.ExprRepeatArray:
		b.bindExpr(e.RepeatElem)
		b.bindExpr(e.RepeatSize)

	case ast.ExprRecord:
		e.RecordSym = uint32(b.resolveMemberPath(e.RecordSegments, e.Loc))
		for _, f := range e.Fields {
			b.bindExpr(f.Value)
		}

	case ast.ExprProj:
		b.bindExpr(e.Base)
		// FieldName/FieldIdx resolve against the base's type once it is
		// known; that is the checker's job, not the binder's.

	case ast.ExprBlock:
		b.bindBlock(e)

	case ast.ExprCall:
		b.bindExpr(e.Callee)
		for _, a := range e.Args {
			b.bindExpr(a)
		}

	case ast.ExprUnary:
		b.bindExpr(e.Operand)

	case ast.ExprBinary:
		b.bindExpr(e.LHS)
		b.bindExpr(e.RHS)

	case ast.ExprIf:
		b.bindExpr(e.Cond)
		b.bindExpr(e.Then)
		if e.Else.IsValid() {
			b.bindExpr(e.Else)
		}

	case ast.ExprMatch:
		b.bindExpr(e.Scrutinee)
		for _, c := range b.Mod.CaseSlice(e.Cases) {
			b.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{}, c.Loc)
			b.bindPtrn(c.Ptrn, symbols.SymbolDecl{SourceFile: b.Mod.File})
			if c.Guard.IsValid() {
				b.bindExpr(c.Guard)
			}
			b.bindExpr(c.Body)
			b.popScope()
		}

	case ast.ExprWhile:
		b.bindExpr(e.Cond)
		b.pushLoop()
		b.bindExpr(e.Body)
		b.popLoop()

	case ast.ExprFor:
		b.bindExpr(e.ForRange)
		b.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{}, e.Loc)
		b.bindPtrn(e.ForPtrn, symbols.SymbolDecl{SourceFile: b.Mod.File})
		b.pushLoop()
		b.bindExpr(e.Body)
		b.popLoop()
		b.popScope()

	case ast.ExprBreak:
		if b.inLoop == 0 {
			b.reportErr(e.Loc, diag.BndInvalidBreak, "'break' outside a loop")
		}
		if e.Value.IsValid() {
			b.bindExpr(e.Value)
		}

	case ast.ExprContinue:
		if b.inLoop == 0 {
			b.reportErr(e.Loc, diag.BndInvalidContinue, "'continue' outside a loop")
		}

	case ast.ExprReturn:
		if b.fnDepth == 0 {
			b.reportErr(e.Loc, diag.BndInvalidReturn, "'return' outside a function")
		}
		if e.Value.IsValid() {
			b.bindExpr(e.Value)
		}

	case ast.ExprFn:
		b.bindFnExpr(id, e)

	case ast.ExprCast, ast.ExprTyped:
		b.bindExpr(e.Operand)
		b.bindType(e.Target)
	}
}

// bindBlock binds a block body two-pass, like ModDecl::bind: nested
// declarations see each other regardless of source order within the block.
func (b *Binder) bindBlock(e *ast.Expr) {
	b.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{}, e.Loc)
	for _, sid := range e.Stmts {
		if s := b.Mod.Stmt(sid); s != nil && s.Kind == ast.StmtDecl {
			b.bindDeclHead(s.Decl)
		}
	}
	for _, sid := range e.Stmts {
		s := b.Mod.Stmt(sid)
		if s == nil {
			continue
		}
		switch s.Kind {
		case ast.StmtDecl:
			b.bindDecl(s.Decl)
		case ast.StmtExpr:
			b.bindExpr(s.Expr)
		}
	}
	if e.Tail.IsValid() {
		b.bindExpr(e.Tail)
	}
	b.popScope()
}

func (b *Binder) bindFnExpr(id ast.ExprID, e *ast.Expr) {
	decl := symbols.SymbolDecl{SourceFile: b.Mod.File, Expr: id}
	b.pushScope(symbols.ScopeFunction, symbols.ScopeOwner{}, e.Loc)
	b.bindParamsInPlace(e.Params, decl)
	if e.RetType.IsValid() {
		b.bindType(e.RetType)
	}
	b.pushFn()
	b.bindExpr(e.Body)
	b.popFn()
	b.popScope()
}
