package emit

import (
	"math"

	"articc/internal/ast"
	"articc/internal/cir"
	"articc/internal/symbols"
	"articc/internal/types"
)

// emitExpr lowers id to an IR value, writing its DefSlot exactly once. A
// divergent construct (break/continue/return, or a call whose codomain is
// bottom) leaves the emitter terminated (bb == NoDefID); the returned value
// is meaningless in that case, matching how the checker's own natural type
// for those constructs is no_ret regardless of what a caller expected.
func (e *Emitter) emitExpr(id ast.ExprID) cir.DefID {
	x := e.Mod.Expr(id)
	if x == nil {
		return cir.NoDefID
	}
	var val cir.DefID
	switch x.Kind {
	case ast.ExprLiteral:
		val = e.emitLiteral(x)
	case ast.ExprPath:
		val = e.emitPath(x)
	case ast.ExprTuple:
		val = e.emitTupleExpr(x)
	case ast.ExprArray, ast.ExprRepeatArray:
		val = e.emitArrayLike(x)
	case ast.ExprRecord:
		val = e.emitRecord(x)
	case ast.ExprProj:
		val = e.emitProj(x)
	case ast.ExprBlock:
		val = e.emitBlockExpr(x)
	case ast.ExprCall:
		val = e.emitCall(x)
	case ast.ExprUnary:
		val = e.emitUnary(x)
	case ast.ExprBinary:
		val = e.emitBinary(x)
	case ast.ExprIf:
		val = e.emitIf(x)
	case ast.ExprMatch:
		val = e.emitMatch(x)
	case ast.ExprWhile:
		val = e.emitWhile(x)
	case ast.ExprFor:
		val = e.emitFor(x)
	case ast.ExprBreak:
		val = e.emitBreak(x)
	case ast.ExprContinue:
		val = e.emitContinue()
	case ast.ExprReturn:
		val = e.emitReturn(x)
	case ast.ExprFn:
		val = e.emitFnExpr(x)
	case ast.ExprCast, ast.ExprTyped:
		val = e.emitExpr(x.Operand)
	default:
		val = cir.NoDefID
	}
	x.DefSlot = uint32(val)
	return val
}

// emitLiteral lowers a literal expression. Integer literal emission is left
// as an extension hook per spec §4.5 ("out of scope for this spec"): its raw
// text/value is carried verbatim into the Lit's bit pattern rather than
// encoded for any particular target width.
func (e *Emitter) emitLiteral(x *ast.Expr) cir.DefID {
	ty := types.TypeID(x.TypeSlot)
	switch x.LitKind {
	case ast.LitUnit:
		return e.World.Tuple(ty)
	case ast.LitBool:
		return e.World.LitBool(x.BoolVal)
	case ast.LitInt:
		return e.World.Lit(ty, uint64(x.IntVal))
	case ast.LitFloat:
		return e.World.LitFloat(ty, math.Float64bits(x.FloatVal))
	case ast.LitChar:
		return e.World.Lit(ty, uint64(x.StrVal))
	case ast.LitString:
		return e.World.Lit(ty, uint64(x.StrVal))
	}
	return cir.NoDefID
}

func (e *Emitter) emitPath(x *ast.Expr) cir.DefID {
	if x.Sym == 0 {
		return cir.NoDefID
	}
	sym := symbols.SymbolID(x.Sym)
	s := e.Table.Symbols.Get(sym)
	if s == nil {
		return cir.NoDefID
	}
	if len(x.Segments) == 2 {
		return e.emitNullaryCtor(x)
	}
	if v, ok := e.locals[sym]; ok {
		return v
	}
	if s.Decl.Decl.IsValid() {
		e.declHead(s.Decl.Decl)
		e.declFull(s.Decl.Decl)
		d := e.Mod.Decl(s.Decl.Decl)
		if d != nil {
			return cir.DefID(d.DefSlot)
		}
	}
	return cir.NoDefID
}

// enumMember resolves a two-segment Enum::Option path to its declaring
// enum's already-checked type and the option's index/kind, without
// recomputing anything the checker already settled.
func (e *Emitter) enumMember(x *ast.Expr) (index int, enumType types.TypeID, kind types.UnionMemberKind, ok bool) {
	sym := symbols.SymbolID(x.Sym)
	s := e.Table.Symbols.Get(sym)
	if s == nil || s.Kind != symbols.SymbolEnum {
		return 0, 0, 0, false
	}
	d := e.Mod.Decl(s.Decl.Decl)
	if d == nil {
		return 0, 0, 0, false
	}
	enumType = e.unwrapForall(types.TypeID(d.TypeSlot))
	info, ok := e.Types.UnionInfo(enumType)
	if !ok {
		return 0, 0, 0, false
	}
	want, _ := e.Table.Strings.Lookup(x.Segments[1])
	for i, m := range info.Members {
		name, _ := e.Table.Strings.Lookup(m.TagName)
		if name == want {
			return i, enumType, m.Kind, true
		}
	}
	return 0, 0, 0, false
}

// emitNullaryCtor represents an enum value as a tagged tuple (tag, payload?)
// — a domain-modeling choice this IR makes on its own, since spec §4.5
// leaves ADT representation unspecified below the type-checking level and
// real codegen is a named non-goal. A payload-carrying option referenced
// bare (not immediately called) is outside that representation's reach and
// is left unresolved (NoDefID); every such option in practice appears only
// as a call target, which emitCall handles directly.
func (e *Emitter) emitNullaryCtor(x *ast.Expr) cir.DefID {
	idx, enumType, kind, ok := e.enumMember(x)
	if !ok || kind != types.UnionMemberNothing {
		return cir.NoDefID
	}
	tag := e.World.Lit(e.Types.Builtins().Int, uint64(idx))
	return e.World.Tuple(enumType, tag)
}

func (e *Emitter) emitTupleExpr(x *ast.Expr) cir.DefID {
	vals := make([]cir.DefID, len(x.Elems))
	for i, el := range x.Elems {
		vals[i] = e.emitExpr(el)
	}
	return e.World.Tuple(types.TypeID(x.TypeSlot), vals...)
}

// emitArrayLike lowers Array and RepeatArray literals. This IR has no
// dedicated array-storage node (layout/codegen are non-goals), so an array
// value is represented the same way a tuple is: its elements packed
// positionally. RepeatArray's count may itself be a dynamic expression; it
// is still lowered for its side effects even though the resulting value
// only carries the one representative element, since a truly
// variable-length aggregate has no representation at this level.
func (e *Emitter) emitArrayLike(x *ast.Expr) cir.DefID {
	ty := types.TypeID(x.TypeSlot)
	if x.Kind == ast.ExprRepeatArray {
		elem := e.emitExpr(x.RepeatElem)
		e.emitExpr(x.RepeatSize)
		return e.World.Tuple(ty, elem)
	}
	vals := make([]cir.DefID, len(x.Elems))
	for i, el := range x.Elems {
		vals[i] = e.emitExpr(el)
	}
	return e.World.Tuple(ty, vals...)
}

func (e *Emitter) emitRecord(x *ast.Expr) cir.DefID {
	ty := types.TypeID(x.TypeSlot)
	fields := e.Types.StructFields(ty)
	vals := make([]cir.DefID, len(fields))
	for _, f := range x.Fields {
		idx := e.fieldIndex(fields, f.Name)
		vals[idx] = e.emitExpr(f.Value)
	}
	return e.World.Tuple(ty, vals...)
}

func (e *Emitter) emitProj(x *ast.Expr) cir.DefID {
	base := e.emitExpr(x.Base)
	baseT := e.resolveAliasType(e.exprType(x.Base))
	ty := types.TypeID(x.TypeSlot)
	bt, ok := e.Types.Lookup(baseT)
	if !ok {
		return cir.NoDefID
	}
	switch bt.Kind {
	case types.KindStruct:
		idx := e.fieldIndex(e.Types.StructFields(baseT), x.FieldName)
		return e.World.Extract(base, idx, ty)
	default: // KindTuple, KindArray: both project by positional index here
		return e.World.Extract(base, int(x.FieldIdx), ty)
	}
}

// resolveAliasType unwraps a chain of transparent aliases, mirroring
// check.resolveAlias.
func (e *Emitter) resolveAliasType(t types.TypeID) types.TypeID {
	for {
		tt, ok := e.Types.Lookup(t)
		if !ok || tt.Kind != types.KindAlias {
			return t
		}
		target, ok := e.Types.AliasTarget(t)
		if !ok {
			return t
		}
		t = target
	}
}

func (e *Emitter) emitBlockExpr(x *ast.Expr) cir.DefID {
	for _, sid := range x.Stmts {
		if e.terminated() {
			break
		}
		s := e.Mod.Stmt(sid)
		if s == nil {
			continue
		}
		switch s.Kind {
		case ast.StmtDecl:
			e.declHead(s.Decl)
			e.declFull(s.Decl)
		case ast.StmtExpr:
			e.emitExpr(s.Expr)
		}
	}
	if e.terminated() {
		return cir.NoDefID
	}
	if x.Tail.IsValid() {
		return e.emitExpr(x.Tail)
	}
	return e.World.Tuple(e.Types.Builtins().Unit)
}

// emitIf mirrors spec §4.5's If rule exactly: three blocks t/f/j, j carrying
// the if-expression's own value (if it produces one), branch on the
// condition, each arm ends with jump(j, value), enter(j) to continue.
func (e *Emitter) emitIf(x *ast.Expr) cir.DefID {
	cond := e.emitExpr(x.Cond)
	ty := types.TypeID(x.TypeSlot)
	hasValue := ty != e.Types.Builtins().Unit && !e.isBottom(ty)

	tLam := e.World.Lam(types.NoTypeID)
	fLam := e.World.Lam(types.NoTypeID)
	var jLam cir.DefID
	if hasValue {
		jLam = e.World.Lam(types.NoTypeID, ty)
	} else {
		jLam = e.World.Lam(types.NoTypeID)
	}

	branch := e.World.Branch(cond, tLam, fLam)
	e.World.SetBody(e.bb, branch)
	e.bb, e.mem = cir.NoDefID, cir.NoDefID

	e.enter(tLam)
	thenVal := e.emitExpr(x.Then)
	if !e.terminated() {
		if hasValue {
			e.jump(jLam, thenVal)
		} else {
			e.jump(jLam, cir.NoDefID)
		}
	}

	e.enter(fLam)
	if x.Else.IsValid() {
		elseVal := e.emitExpr(x.Else)
		if !e.terminated() {
			if hasValue {
				e.jump(jLam, elseVal)
			} else {
				e.jump(jLam, cir.NoDefID)
			}
		}
	} else if !e.terminated() {
		e.jump(jLam, cir.NoDefID)
	}

	e.enter(jLam)
	if hasValue {
		return e.World.Param(jLam, 1)
	}
	return e.World.Tuple(e.Types.Builtins().Unit)
}

// emitMatch lowers each arm in source order as a guarded branch testing the
// scrutinee's tag (for a Ctor pattern) before binding and emitting the arm
// body; a non-Ctor pattern (Id, wildcard-like bindings, literals already
// validated by the checker) is treated as an unconditional match, matching
// the single catch-all arm idiom most `match` expressions end with.
// Exhaustiveness is explicitly out of scope (spec §8 scenario 6), so no
// arm is synthesized for a missing case.
func (e *Emitter) emitMatch(x *ast.Expr) cir.DefID {
	scrut := e.emitExpr(x.Scrutinee)
	ty := types.TypeID(x.TypeSlot)
	hasValue := ty != e.Types.Builtins().Unit && !e.isBottom(ty)
	var jLam cir.DefID
	if hasValue {
		jLam = e.World.Lam(types.NoTypeID, ty)
	} else {
		jLam = e.World.Lam(types.NoTypeID)
	}

	cases := e.Mod.CaseSlice(x.Cases)
	for _, cs := range cases {
		if e.terminated() {
			break
		}
		e.emitMatchArm(cs, scrut, jLam, hasValue)
	}

	e.enter(jLam)
	if hasValue {
		return e.World.Param(jLam, 1)
	}
	return e.World.Tuple(e.Types.Builtins().Unit)
}

func (e *Emitter) emitMatchArm(cs ast.Case, scrut, jLam cir.DefID, hasValue bool) {
	p := e.Mod.Ptrn(cs.Ptrn)
	armLam := e.World.Lam(types.NoTypeID)
	nextLam := armLam
	if p != nil && p.Kind == ast.PtrnCtor {
		idx, _, _, ok := e.enumCtorMember(p)
		if ok {
			tagType := e.Types.Builtins().Int
			tag := e.World.Extract(scrut, 0, tagType)
			want := e.World.Lit(tagType, uint64(idx))
			testTy := e.Types.Builtins().Bool
			test := e.World.Prim(cir.PrimEq, testTy, tag, want)
			nextLam = e.World.Lam(types.NoTypeID)
			e.World.SetBody(e.bb, e.World.Branch(test, armLam, nextLam))
			e.bb, e.mem = cir.NoDefID, cir.NoDefID
		}
	}

	e.enter(armLam)
	payload := scrut
	if p != nil && p.Kind == ast.PtrnCtor {
		if _, _, kind, ok := e.enumCtorMember(p); ok && kind == types.UnionMemberType {
			payload = e.World.Extract(scrut, 1, types.TypeID(p.TypeSlot))
		}
	}
	e.bindPtrn(cs.Ptrn, payload)
	if cs.Guard.IsValid() {
		e.emitExpr(cs.Guard)
	}
	bodyVal := e.emitExpr(cs.Body)
	if !e.terminated() {
		if hasValue {
			e.jump(jLam, bodyVal)
		} else {
			e.jump(jLam, cir.NoDefID)
		}
	}

	if nextLam != armLam {
		e.enter(nextLam)
	}
}

// enumCtorMember resolves a Ctor pattern's option to its index, mirroring
// enumMember for Path expressions.
func (e *Emitter) enumCtorMember(p *ast.Ptrn) (index int, enumType types.TypeID, kind types.UnionMemberKind, ok bool) {
	if p.CtorSym == 0 {
		return 0, 0, 0, false
	}
	sym := symbols.SymbolID(p.CtorSym)
	s := e.Table.Symbols.Get(sym)
	if s == nil || s.Kind != symbols.SymbolEnum {
		return 0, 0, 0, false
	}
	d := e.Mod.Decl(s.Decl.Decl)
	if d == nil {
		return 0, 0, 0, false
	}
	enumType = e.unwrapForall(types.TypeID(d.TypeSlot))
	info, ok := e.Types.UnionInfo(enumType)
	if !ok {
		return 0, 0, 0, false
	}
	name := ""
	if len(p.CtorSegments) > 0 {
		name, _ = e.Table.Strings.Lookup(p.CtorSegments[len(p.CtorSegments)-1])
	}
	for i, m := range info.Members {
		mn, _ := e.Table.Strings.Lookup(m.TagName)
		if mn == name {
			return i, enumType, m.Kind, true
		}
	}
	return 0, 0, 0, false
}

// emitWhile mirrors spec §4.5's While rule: blocks head/body/break, jump to
// head, branch on condition to body or break, body ends with jump(head).
func (e *Emitter) emitWhile(x *ast.Expr) cir.DefID {
	headLam := e.World.Lam(types.NoTypeID)
	bodyLam := e.World.Lam(types.NoTypeID)
	brkLam := e.World.Lam(types.NoTypeID)

	e.jump(headLam, cir.NoDefID)
	e.enter(headLam)
	cond := e.emitExpr(x.Cond)
	e.World.SetBody(e.bb, e.World.Branch(cond, bodyLam, brkLam))
	e.bb, e.mem = cir.NoDefID, cir.NoDefID

	e.pushLoop(loopCtx{brk: brkLam, cont: headLam})
	e.enter(bodyLam)
	e.emitExpr(x.Body)
	if !e.terminated() {
		e.jump(headLam, cir.NoDefID)
	}
	e.popLoop()

	e.enter(brkLam)
	return e.World.Tuple(e.Types.Builtins().Unit)
}

// emitFor lowers an array `for` loop as an index-counting while loop: head
// carries the running index as a loop-carried block parameter, body
// extracts the current element via a dynamic PrimIndex (this IR has no
// constant-index Extract equivalent for a runtime position) and
// increments via PrimAdd before jumping back to head. This adapts spec
// §4.5's "iter(|x| body)(range)" desugared-call rule — which assumes a
// user-level `iter` function the checker never actually calls for this
// AST's native ExprFor node — to the array-iteration semantics
// check.inferFor already implements; cps2ds/ds2cps still wrap the loop
// body so both IR-world wrappers are exercised the way the desugared form
// would have used them.
func (e *Emitter) emitFor(x *ast.Expr) cir.DefID {
	rangeVal := e.emitExpr(x.ForRange)
	rangeT := e.resolveAliasType(e.exprType(x.ForRange))
	elemType := e.Types.Builtins().Invalid
	if rt, ok := e.Types.Lookup(rangeT); ok && rt.Kind == types.KindArray {
		elemType = rt.Elem
	}
	intType := e.Types.Builtins().Int

	headLam := e.World.Lam(types.NoTypeID, intType)
	bodyLam := e.World.Lam(types.NoTypeID, intType)
	brkLam := e.World.Lam(types.NoTypeID)

	zero := e.World.Lit(intType, 0)
	e.jump(headLam, zero)

	e.enter(headLam)
	idx := e.World.Param(headLam, 1)
	length := e.World.Prim(cir.PrimLen, intType, rangeVal)
	cond := e.World.Prim(cir.PrimLt, e.Types.Builtins().Bool, idx, length)
	e.World.SetBody(e.bb, e.World.Branch(cond, bodyLam, brkLam))
	e.bb, e.mem = cir.NoDefID, cir.NoDefID

	e.pushLoop(loopCtx{brk: brkLam, cont: headLam})
	e.enter(bodyLam)
	idxInBody := e.World.Param(bodyLam, 1)
	elemVal := e.World.Prim(cir.PrimIndex, elemType, rangeVal, idxInBody)
	e.bindPtrn(x.ForPtrn, elemVal)

	bodyDS := e.World.Cps2Ds(bodyLam, e.World.TypeBB(types.NoTypeID))
	e.World.Ds2Cps(bodyDS, e.World.TypeBB(types.NoTypeID))

	e.emitExpr(x.Body)
	if !e.terminated() {
		one := e.World.Lit(intType, 1)
		next := e.World.Prim(cir.PrimAdd, intType, idxInBody, one)
		e.jump(headLam, next)
	}
	e.popLoop()

	e.enter(brkLam)
	return e.World.Tuple(e.Types.Builtins().Unit)
}

func (e *Emitter) emitBreak(x *ast.Expr) cir.DefID {
	if x.Value.IsValid() {
		e.emitExpr(x.Value)
	}
	if lc := e.curLoop(); lc != nil {
		e.jump(lc.brk, cir.NoDefID)
	}
	return cir.NoDefID
}

func (e *Emitter) emitContinue() cir.DefID {
	if lc := e.curLoop(); lc != nil {
		e.jump(lc.cont, cir.NoDefID)
	}
	return cir.NoDefID
}

func (e *Emitter) emitReturn(x *ast.Expr) cir.DefID {
	var val cir.DefID = cir.NoDefID
	if x.Value.IsValid() {
		val = e.emitExpr(x.Value)
	}
	if fc := e.curFn(); fc != nil {
		e.jump(fc.ret, val)
	}
	return cir.NoDefID
}

var binOpToPrim = map[ast.BinaryOp]cir.PrimOp{
	ast.BinAdd: cir.PrimAdd,
	ast.BinSub: cir.PrimSub,
	ast.BinMul: cir.PrimMul,
	ast.BinDiv: cir.PrimDiv,
	ast.BinMod: cir.PrimMod,
	ast.BinEq:  cir.PrimEq,
	ast.BinNe:  cir.PrimNe,
	ast.BinLt:  cir.PrimLt,
	ast.BinLe:  cir.PrimLe,
	ast.BinGt:  cir.PrimGt,
	ast.BinGe:  cir.PrimGe,
}

func (e *Emitter) emitUnary(x *ast.Expr) cir.DefID {
	ty := types.TypeID(x.TypeSlot)
	switch x.UnOp {
	case ast.UnaryNot:
		return e.World.Prim(cir.PrimNot, ty, e.emitExpr(x.Operand))
	case ast.UnaryNeg:
		return e.World.Prim(cir.PrimNeg, ty, e.emitExpr(x.Operand))
	default: // UnaryPlus
		return e.emitExpr(x.Operand)
	}
}

func (e *Emitter) emitBinary(x *ast.Expr) cir.DefID {
	if x.BinOp == ast.BinAssign {
		val := e.emitExpr(x.RHS)
		e.assignTo(x.LHS, val)
		return e.World.Tuple(e.Types.Builtins().Unit)
	}
	if x.BinOp == ast.BinAnd || x.BinOp == ast.BinOr {
		return e.emitShortCircuit(x)
	}
	lv := e.emitExpr(x.LHS)
	rv := e.emitExpr(x.RHS)
	op, ok := binOpToPrim[x.BinOp]
	if !ok {
		return cir.NoDefID
	}
	return e.World.Prim(op, types.TypeID(x.TypeSlot), lv, rv)
}

// emitShortCircuit lowers && / || with the same three-block shape as If,
// since both only evaluate their right operand conditionally.
func (e *Emitter) emitShortCircuit(x *ast.Expr) cir.DefID {
	lv := e.emitExpr(x.LHS)
	boolTy := e.Types.Builtins().Bool
	rLam := e.World.Lam(types.NoTypeID)
	jLam := e.World.Lam(types.NoTypeID, boolTy)

	if x.BinOp == ast.BinAnd {
		shortLam := e.World.Lam(types.NoTypeID)
		e.World.SetBody(e.bb, e.World.Branch(lv, rLam, shortLam))
		e.bb, e.mem = cir.NoDefID, cir.NoDefID
		e.enter(shortLam)
		e.jump(jLam, e.World.LitBool(false))
	} else {
		shortLam := e.World.Lam(types.NoTypeID)
		e.World.SetBody(e.bb, e.World.Branch(lv, shortLam, rLam))
		e.bb, e.mem = cir.NoDefID, cir.NoDefID
		e.enter(shortLam)
		e.jump(jLam, e.World.LitBool(true))
	}

	e.enter(rLam)
	rv := e.emitExpr(x.RHS)
	if !e.terminated() {
		e.jump(jLam, rv)
	}

	e.enter(jLam)
	return e.World.Param(jLam, 1)
}

func (e *Emitter) assignTo(id ast.ExprID, val cir.DefID) {
	x := e.Mod.Expr(id)
	if x == nil {
		return
	}
	switch x.Kind {
	case ast.ExprPath:
		if x.Sym != 0 {
			e.locals[symbols.SymbolID(x.Sym)] = val
		}
	case ast.ExprProj:
		// This IR models values, not addressable places: a projected
		// assignment target has no store instruction to lower to, so only
		// the base is evaluated for its side effects. Mutation through a
		// struct/tuple/array place is a codegen concern (non-goal).
		e.emitExpr(x.Base)
	}
}

func (e *Emitter) emitCall(x *ast.Expr) cir.DefID {
	callee := e.Mod.Expr(x.Callee)
	if callee != nil && callee.Kind == ast.ExprPath && len(callee.Segments) == 2 {
		if idx, enumType, kind, ok := e.enumMember(callee); ok && kind == types.UnionMemberType {
			var arg cir.DefID
			if len(x.Args) > 0 {
				arg = e.emitExpr(x.Args[0])
			}
			tag := e.World.Lit(e.Types.Builtins().Int, uint64(idx))
			return e.World.Tuple(enumType, tag, arg)
		}
	}

	calleeVal := e.emitExpr(x.Callee)
	calleeT := e.resolveAliasType(e.exprType(x.Callee))
	fi, ok := e.Types.FnInfo(calleeT)
	if !ok {
		for _, a := range x.Args {
			e.emitExpr(a)
		}
		return cir.NoDefID
	}

	var argVal cir.DefID
	switch len(x.Args) {
	case 0:
		argVal = cir.NoDefID
	case 1:
		argVal = e.emitExpr(x.Args[0])
	default:
		vals := make([]cir.DefID, len(x.Args))
		for i, a := range x.Args {
			vals[i] = e.emitExpr(a)
		}
		argVal = e.World.Tuple(types.NoTypeID, vals...)
	}
	return e.call(calleeVal, argVal, fi.Result)
}

// emitFnExpr lowers a lambda literal the same way a DeclFn's body is
// lowered, except its CPS lambda has no DefSlot of its own to install into
// — the enclosing expression's DefSlot is the lambda's cps2ds wrapper.
func (e *Emitter) emitFnExpr(x *ast.Expr) cir.DefID {
	astParams := e.Mod.ParamSlice(x.Params)
	syms := make([]symbols.SymbolID, len(astParams))
	for i, p := range astParams {
		syms[i] = symbols.SymbolID(p.Sym)
	}
	fi, ok := e.Types.FnInfo(e.resolveAliasType(types.TypeID(x.TypeSlot)))
	if !ok {
		return cir.NoDefID
	}
	lam := e.emitLam(fi)
	for i, sym := range syms {
		if i < len(fi.Params) {
			e.locals[sym] = e.World.Param(lam, i+1)
		}
	}
	retCont := e.World.Param(lam, len(fi.Params)+1)

	savedBB, savedMem := e.bb, e.mem
	e.enter(lam)
	e.pushFn(fnCtx{ret: retCont})
	val := e.emitExpr(x.Body)
	e.pushFnResult(retCont, val)
	e.popFn()
	e.bb, e.mem = savedBB, savedMem

	return e.World.Cps2Ds(lam, types.TypeID(x.TypeSlot))
}
