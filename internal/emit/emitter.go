// Package emit implements the CPS lowering pass (component F), grounded on
// artic's Emitter (emit.cpp) and shaped like the teacher's
// internal/backend/llvm emitter: a small piece of mutable "current position"
// state (here `bb`/`mem` instead of an LLVM basic block/builder) driving a
// post-order walk over the already-checked AST, writing exactly one IR
// handle per node into its DefSlot.
package emit

import (
	"articc/internal/ast"
	"articc/internal/cir"
	"articc/internal/symbols"
	"articc/internal/types"
)

// loopCtx records the two continuations a Break/Continue inside this loop
// resolve to.
type loopCtx struct {
	brk  cir.DefID
	cont cir.DefID
}

// fnCtx records the return continuation Return resolves to for the
// function currently being lowered.
type fnCtx struct {
	ret cir.DefID
}

// Emitter drives one module's CPS lowering. It assumes the module already
// passed binding and checking: every symbol reference is resolved and every
// node's TypeSlot is filled.
type Emitter struct {
	Mod   *ast.Module
	Table *symbols.Table
	Types *types.Interner
	World *cir.World

	bb  cir.DefID // current basic block; NoDefID once terminated
	mem cir.DefID // current memory token; tracks bb

	loops []loopCtx
	fns   []fnCtx

	// locals maps a binding occurrence's symbol to the IR value it is bound
	// to. Symbol IDs are unique per binding across the whole module (the
	// table never reuses one across scopes), so a flat map needs no
	// push/pop discipline the way the binder's frame stack does.
	locals map[symbols.SymbolID]cir.DefID

	filled map[ast.DeclID]bool
}

// New constructs an Emitter sharing tin with the checker that already ran
// over mod.
func New(mod *ast.Module, table *symbols.Table, tin *types.Interner) *Emitter {
	return &Emitter{
		Mod:    mod,
		Table:  table,
		Types:  tin,
		World:  cir.NewWorld(tin),
		locals: make(map[symbols.SymbolID]cir.DefID),
		filled: make(map[ast.DeclID]bool),
	}
}

// Run lowers every top-level declaration, head pass then full pass, mirroring
// Checker.Run and Binder.Run: head installs each function's own CPS lambda
// (wrapped cps2ds) so recursive calls resolve, full lowers bodies.
func (e *Emitter) Run() {
	for _, id := range e.Mod.Top {
		e.declHead(id)
	}
	for _, id := range e.Mod.Top {
		e.declFull(id)
	}
}

// enter positions the emitter at the start of lam: bb <- lam, mem <-
// lam.param(0). Mirrors Emitter::enter in emit.cpp.
func (e *Emitter) enter(lam cir.DefID) {
	e.bb = lam
	e.mem = e.World.Param(lam, 0)
}

// terminated reports whether the current block was already closed by a
// jump/call/return/break/continue, meaning any further statements in the
// enclosing block are unreachable at the IR level (the checker already
// warned about this at the source level).
func (e *Emitter) terminated() bool {
	return e.bb == cir.NoDefID
}

// jump applies target to (mem[, value]) as the current bb's terminator and
// closes the current block (bb and mem are cleared); the caller enters
// whichever block comes next. value may be cir.NoDefID for a block with no
// value parameter. Mirrors Emitter::jump.
func (e *Emitter) jump(target, value cir.DefID) {
	if e.terminated() {
		return
	}
	arg := e.mem
	if value != cir.NoDefID {
		arg = e.World.Tuple(types.NoTypeID, e.mem, value)
	}
	app := e.World.App(target, arg, e.Types.Builtins().Nothing)
	e.World.SetBody(e.bb, app)
	e.bb, e.mem = cir.NoDefID, cir.NoDefID
}

// isBottom reports whether t is the no_ret ("!") type: a call whose result
// type is bottom is itself a continuation invocation and never returns.
func (e *Emitter) isBottom(t types.TypeID) bool {
	tt, ok := e.Types.Lookup(t)
	return ok && tt.Kind == types.KindNothing
}

// call applies callee to (mem[, arg]) in the current bb. codomain is the
// callee's own result type (not the pair type): if it is bottom, the call
// is terminal and the emitter clears bb/mem, per emit.cpp's terminal-call
// recognition, so no value is extracted from a call that never returns
// (break/continue/return do not come through here: they jump to their
// continuation directly). Otherwise the call's result is a (mem, value) pair; call
// extracts both and advances mem.
func (e *Emitter) call(callee, arg cir.DefID, codomain types.TypeID) cir.DefID {
	if e.terminated() {
		return cir.NoDefID
	}
	packed := e.mem
	if arg != cir.NoDefID {
		packed = e.World.Tuple(types.NoTypeID, e.mem, arg)
	}
	app := e.World.App(callee, packed, codomain)
	if e.isBottom(codomain) {
		e.bb, e.mem = cir.NoDefID, cir.NoDefID
		return app
	}
	newMem := e.World.Extract(app, 0, e.World.TypeMem())
	val := e.World.Extract(app, 1, codomain)
	e.mem = newMem
	return val
}

func (e *Emitter) curLoop() *loopCtx {
	if len(e.loops) == 0 {
		return nil
	}
	return &e.loops[len(e.loops)-1]
}

func (e *Emitter) pushLoop(l loopCtx) { e.loops = append(e.loops, l) }
func (e *Emitter) popLoop()           { e.loops = e.loops[:len(e.loops)-1] }

func (e *Emitter) curFn() *fnCtx {
	if len(e.fns) == 0 {
		return nil
	}
	return &e.fns[len(e.fns)-1]
}

func (e *Emitter) pushFn(f fnCtx) { e.fns = append(e.fns, f) }
func (e *Emitter) popFn()         { e.fns = e.fns[:len(e.fns)-1] }

func (e *Emitter) typeOf(t types.TypeID) types.TypeID { return t }

func (e *Emitter) exprType(id ast.ExprID) types.TypeID {
	x := e.Mod.Expr(id)
	if x == nil {
		return e.Types.Builtins().Invalid
	}
	return types.TypeID(x.TypeSlot)
}

// unwrapForall strips a Forall wrapper for emission purposes: this emitter
// does not monomorphize (§ Non-goals: optimization/codegen are out of
// scope), so a generic function's CPS lambda is built once, over its
// forall's body type, and shared by every instantiation.
func (e *Emitter) unwrapForall(t types.TypeID) types.TypeID {
	if fa, ok := e.Types.ForallInfo(t); ok {
		return fa.Body
	}
	return t
}
