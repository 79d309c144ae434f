package emit

import (
	"articc/internal/ast"
	"articc/internal/cir"
	"articc/internal/symbols"
	"articc/internal/types"
)

// declHead allocates a DeclFn's own CPS lambda (wrapped cps2ds) and installs
// it into DefSlot before any body is lowered, so a recursive call inside the
// body resolves to the same handle. Mirrors check.declHead's two-pass shape
// and spec §4.5's "FnDecl head" rule verbatim.
func (e *Emitter) declHead(id ast.DeclID) {
	d := e.Mod.Decl(id)
	if d == nil || d.DefSlot != 0 {
		return
	}
	switch d.Kind {
	case ast.DeclFn:
		sig := e.unwrapForall(types.TypeID(d.TypeSlot))
		fi, ok := e.Types.FnInfo(sig)
		if !ok {
			return
		}
		lam := e.emitLam(fi)
		c2d := e.World.Cps2Ds(lam, types.TypeID(d.TypeSlot))
		d.DefSlot = uint32(c2d)

	case ast.DeclMod:
		for _, child := range d.Body_ {
			e.declHead(child)
		}
	}
}

// emitLam builds the CPS lambda underlying a pi type: cn(mem, domain...,
// cn(mem, codomain)). The teacher's curried artic has one domain entry;
// this world's Fn type is already n-ary, so the lambda's parameter list
// generalizes to one entry per domain component plus the trailing return
// continuation.
func (e *Emitter) emitLam(fi *types.FnInfo) cir.DefID {
	retContType := e.World.TypeBB(fi.Result)
	params := append(append([]types.TypeID(nil), fi.Params...), retContType)
	return e.World.Lam(types.NoTypeID, params...)
}

// declFull lowers a declaration's body once its head (if any) is installed.
// filled guards exactly-once execution, mirroring check.declFull.
func (e *Emitter) declFull(id ast.DeclID) {
	d := e.Mod.Decl(id)
	if d == nil || e.filled[id] {
		return
	}
	switch d.Kind {
	case ast.DeclFn:
		e.emitFnBody(id, d)

	case ast.DeclLet:
		e.emitLetDecl(d)

	case ast.DeclMod:
		for _, child := range d.Body_ {
			e.declHead(child)
		}
		for _, child := range d.Body_ {
			e.declFull(child)
		}
	}
	e.filled[id] = true
}

// emitFnBody lowers a DeclFn's body into the lambda declHead already
// allocated, binding each parameter symbol to its Param def and the
// function's return continuation so Return resolves inside the body.
func (e *Emitter) emitFnBody(id ast.DeclID, d *ast.Decl) {
	if !d.Body.IsValid() {
		return
	}
	c2d := e.World.Def(cir.DefID(d.DefSlot))
	if c2d == nil {
		return
	}
	lam := c2d.Inner
	params := e.Mod.ParamSlice(d.Params)
	for i, p := range params {
		e.locals[symbols.SymbolID(p.Sym)] = e.World.Param(lam, i+1)
	}
	retCont := e.World.Param(lam, len(params)+1)

	e.enter(lam)
	e.pushFn(fnCtx{ret: retCont})
	val := e.emitExpr(d.Body)
	e.pushFnResult(retCont, val)
	e.popFn()
}

// pushFnResult jumps to the function's return continuation with the body's
// value, unless the body already diverged (its last construct was itself a
// break/continue/return/terminal call, which already left bb cleared).
func (e *Emitter) pushFnResult(retCont, val cir.DefID) {
	if e.terminated() {
		return
	}
	e.jump(retCont, val)
}

// emitLetDecl lowers a top-level/nested `let`'s initializer and binds every
// name its pattern introduces to the resulting value(s).
func (e *Emitter) emitLetDecl(d *ast.Decl) {
	if !d.Init.IsValid() {
		return
	}
	val := e.emitExpr(d.Init)
	e.bindPtrn(d.Ptrn, val)
}
