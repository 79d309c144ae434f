package check

import (
	"strconv"

	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/source"
	"articc/internal/symbols"
	"articc/internal/types"
)

// infer elaborates id with no expected type (bottom-up). check elaborates
// id against expected (top-down); a construct that has no real check-mode
// rule just infers and reconciles, mirroring Expr::infer/Expr::check.
func (c *Checker) infer(id ast.ExprID) types.TypeID { return c.typeExpr(id, types.NoTypeID) }
func (c *Checker) check(id ast.ExprID, expected types.TypeID) types.TypeID {
	return c.typeExpr(id, expected)
}

func (c *Checker) typeExpr(id ast.ExprID, expected types.TypeID) types.TypeID {
	e := c.Mod.Expr(id)
	if e == nil {
		return c.errType()
	}
	t := c.dispatchExpr(e, expected)
	e.TypeSlot = uint32(t)
	return t
}

// dispatchExpr computes each construct's natural type, propagating expected
// into children where a real bidirectional rule exists (Tuple, Array,
// Block, If, Match), then reconciles the result against expected once at
// the end: when expected already flowed all the way through (success
// case), natural == expected and reconcile is a no-op; otherwise it is the
// single place a type mismatch gets reported for this node.
func (c *Checker) dispatchExpr(e *ast.Expr, expected types.TypeID) types.TypeID {
	var natural types.TypeID
	switch e.Kind {
	case ast.ExprError:
		natural = c.errType()

	case ast.ExprLiteral:
		natural = c.literalType(e, expected)

	case ast.ExprPath:
		natural = c.inferPath(e)

	case ast.ExprTuple:
		natural = c.inferTuple(e, expected)

	case ast.ExprArray:
		natural = c.inferArray(e, expected)

	case ast.ExprRepeatArray:
		natural = c.inferRepeatArray(e)

	case ast.ExprRecord:
		natural = c.inferRecord(e)

	case ast.ExprProj:
		natural = c.inferProj(e)

	case ast.ExprBlock:
		natural = c.inferBlock(e, expected)

	case ast.ExprCall:
		natural = c.inferCall(e)

	case ast.ExprUnary:
		natural = c.inferUnary(e)

	case ast.ExprBinary:
		natural = c.inferBinary(e)

	case ast.ExprIf:
		natural = c.inferIf(e, expected)

	case ast.ExprMatch:
		natural = c.inferMatch(e, expected)

	case ast.ExprWhile:
		natural = c.inferWhile(e)

	case ast.ExprFor:
		natural = c.inferFor(e)

	case ast.ExprBreak:
		natural = c.inferBreak(e)

	case ast.ExprContinue:
		natural = c.Types.Builtins().Nothing

	case ast.ExprReturn:
		natural = c.inferReturn(e)

	case ast.ExprFn:
		natural = c.inferFnExpr(e)

	case ast.ExprCast:
		c.infer(e.Operand)
		natural = c.typeOf(e.Target)

	case ast.ExprTyped:
		want := c.typeOf(e.Target)
		c.check(e.Operand, want)
		natural = want

	default:
		natural = c.errType()
	}
	return c.reconcile(e.Loc, natural, expected)
}

func (c *Checker) literalType(e *ast.Expr, expected types.TypeID) types.TypeID {
	b := c.Types.Builtins()
	switch e.LitKind {
	case ast.LitUnit:
		return b.Unit
	case ast.LitBool:
		return b.Bool
	case ast.LitInt:
		if et, ok := c.Types.Lookup(expected); ok && (et.Kind == types.KindInt || et.Kind == types.KindFloat) {
			return expected
		}
		return b.Int
	case ast.LitFloat:
		if et, ok := c.Types.Lookup(expected); ok && et.Kind == types.KindFloat {
			return expected
		}
		return b.Float
	case ast.LitChar:
		return b.Char
	case ast.LitString:
		return b.String
	}
	return c.errType()
}

// resolveAlias unwraps a chain of transparent nominal aliases so projection,
// call and iteration rules see the underlying structural/nominal shape.
func (c *Checker) resolveAlias(t types.TypeID) types.TypeID {
	for {
		tt, ok := c.Types.Lookup(t)
		if !ok || tt.Kind != types.KindAlias {
			return t
		}
		target, ok := c.Types.AliasTarget(t)
		if !ok {
			return t
		}
		t = target
	}
}

func (c *Checker) isNoRet(t types.TypeID) bool {
	tt, ok := c.Types.Lookup(t)
	return ok && tt.Kind == types.KindNothing
}

func (c *Checker) inferPath(e *ast.Expr) types.TypeID {
	if e.Sym == 0 {
		return c.errType()
	}
	sym := symbols.SymbolID(e.Sym)
	s := c.Table.Symbols.Get(sym)
	if s == nil {
		return c.errType()
	}

	args := make([]types.TypeID, len(e.TypeArgs))
	for i, a := range e.TypeArgs {
		args[i] = c.typeOf(a)
	}

	switch len(e.Segments) {
	case 1:
		base := c.symbolType(sym)
		return c.applyForall(base, args, e.Loc)
	case 2:
		return c.enumPathType(s, e.Segments[1], args, e.Loc)
	default:
		return c.errType()
	}
}

// applyForall instantiates a Forall type with explicit args; a non-Forall
// type passes through unchanged as long as no args were given.
func (c *Checker) applyForall(t types.TypeID, args []types.TypeID, loc source.Loc) types.TypeID {
	fa, ok := c.Types.ForallInfo(t)
	if !ok {
		if len(args) > 0 {
			c.reportErr(loc, diag.TypBadTypeArguments, "value is not generic, but type arguments were given")
			return c.errType()
		}
		return t
	}
	if len(args) == 0 {
		return fa.Body
	}
	if len(args) != len(fa.Params) {
		c.reportErr(loc, diag.TypBadTypeArguments,
			"expected "+strconv.Itoa(len(fa.Params))+" type argument(s), got "+strconv.Itoa(len(args)))
		return c.errType()
	}
	return c.Types.Rewrite(fa.Body, fa.Params, args)
}

// enumPathType types a two-segment Enum::Option path: a nullary option
// yields a value of the enum type directly, a payload-carrying option
// yields a constructor function the caller still has to Call.
func (c *Checker) enumPathType(s *symbols.Symbol, optName source.StringID, args []types.TypeID, loc source.Loc) types.TypeID {
	if s.Kind != symbols.SymbolEnum {
		return c.errType()
	}
	c.declHead(s.Decl.Decl)
	enumType := c.applyNominal(s.Decl.Decl, args, loc)
	info, ok := c.Types.UnionInfo(enumType)
	if !ok {
		return c.errType()
	}
	want := c.name(optName)
	for _, m := range info.Members {
		if c.name(m.TagName) != want {
			continue
		}
		if m.Kind == types.UnionMemberType {
			return c.Types.RegisterFn([]types.TypeID{m.Type}, enumType)
		}
		return enumType
	}
	return c.errType()
}

func (c *Checker) inferTuple(e *ast.Expr, expected types.TypeID) types.TypeID {
	var expElems []types.TypeID
	if info, ok := c.Types.TupleInfo(expected); ok && len(info.Elems) == len(e.Elems) {
		expElems = info.Elems
	}
	elems := make([]types.TypeID, len(e.Elems))
	for i, el := range e.Elems {
		if expElems != nil {
			elems[i] = c.check(el, expElems[i])
		} else {
			elems[i] = c.infer(el)
		}
	}
	return c.Types.RegisterTuple(elems)
}

func (c *Checker) inferArray(e *ast.Expr, expected types.TypeID) types.TypeID {
	var expElem types.TypeID
	if et, ok := c.Types.Lookup(expected); ok && et.Kind == types.KindArray {
		expElem = et.Elem
	}
	if len(e.Elems) == 0 {
		if expElem != types.NoTypeID {
			return c.Types.Intern(types.MakeArray(expElem, types.ArrayDynamicLength))
		}
		c.reportErr(e.Loc, diag.TypCannotInfer, "cannot infer the element type of an empty array literal")
		return c.errType()
	}
	var elemType types.TypeID
	if expElem != types.NoTypeID {
		elemType = c.check(e.Elems[0], expElem)
	} else {
		elemType = c.infer(e.Elems[0])
	}
	for _, el := range e.Elems[1:] {
		c.check(el, elemType)
	}
	return c.Types.Intern(types.MakeArray(elemType, uint32(len(e.Elems))))
}

func (c *Checker) inferRepeatArray(e *ast.Expr) types.TypeID {
	elemT := c.infer(e.RepeatElem)
	c.check(e.RepeatSize, c.Types.Builtins().Int)
	return c.Types.Intern(types.MakeArray(elemT, types.ArrayDynamicLength))
}

func (c *Checker) inferRecord(e *ast.Expr) types.TypeID {
	if e.RecordSym == 0 {
		return c.errType()
	}
	sym := symbols.SymbolID(e.RecordSym)
	s := c.Table.Symbols.Get(sym)
	if s == nil || s.Kind != symbols.SymbolStruct {
		return c.errType()
	}
	c.declHead(s.Decl.Decl)
	structType := c.applyNominal(s.Decl.Decl, nil, e.Loc)
	fields := c.Types.StructFields(structType)

	seen := make(map[string]bool)
	for _, f := range e.Fields {
		fn := c.name(f.Name)
		if seen[fn] {
			c.reportErr(f.Loc, diag.TypDuplicateField, "duplicate field '"+fn+"'")
		}
		seen[fn] = true

		want, found := c.errType(), false
		for _, sf := range fields {
			if c.name(sf.Name) == fn {
				want, found = sf.Type, true
				break
			}
		}
		if !found {
			c.reportErr(f.Loc, diag.TypUnknownField, "'"+c.name(s.Name)+"' has no field '"+fn+"'")
			c.infer(f.Value)
			continue
		}
		c.check(f.Value, want)
	}
	for _, sf := range fields {
		sfn := c.name(sf.Name)
		if !seen[sfn] {
			c.reportErr(e.Loc, diag.TypMissingField, "missing field '"+sfn+"' in '"+c.name(s.Name)+"'")
		}
	}
	return structType
}

func (c *Checker) inferProj(e *ast.Expr) types.TypeID {
	baseT := c.resolveAlias(c.infer(e.Base))
	if !c.shouldEmitError(baseT) {
		return c.errType()
	}
	bt, ok := c.Types.Lookup(baseT)
	if !ok {
		return c.errType()
	}
	switch bt.Kind {
	case types.KindTuple:
		if !e.IsIndex {
			c.reportErr(e.Loc, diag.TypStructExpected, "tuple fields are projected by index")
			return c.errType()
		}
		info, _ := c.Types.TupleInfo(baseT)
		if info == nil || int(e.FieldIdx) >= len(info.Elems) {
			c.reportErr(e.Loc, diag.TypIndexNotInteger, "tuple index out of range")
			return c.errType()
		}
		return info.Elems[e.FieldIdx]

	case types.KindStruct:
		if e.IsIndex {
			c.reportErr(e.Loc, diag.TypStructExpected, "a struct is projected by field name")
			return c.errType()
		}
		name := c.name(e.FieldName)
		for _, f := range c.Types.StructFields(baseT) {
			if c.name(f.Name) == name {
				return f.Type
			}
		}
		c.reportErr(e.Loc, diag.TypUnknownField, "no field '"+name+"'")
		return c.errType()

	case types.KindArray:
		if !e.IsIndex {
			c.reportErr(e.Loc, diag.TypStructExpected, "array elements are projected by index")
			return c.errType()
		}
		return bt.Elem

	default:
		c.reportErr(e.Loc, diag.TypStructExpected, "value is not a struct, tuple, or array")
		return c.errType()
	}
}

func (c *Checker) inferCall(e *ast.Expr) types.TypeID {
	calleeT := c.resolveAlias(c.infer(e.Callee))
	if !c.shouldEmitError(calleeT) {
		for _, a := range e.Args {
			c.infer(a)
		}
		return c.errType()
	}
	fi, ok := c.Types.FnInfo(calleeT)
	if !ok {
		c.reportErr(e.Loc, diag.TypFnExpected, "value is not callable")
		for _, a := range e.Args {
			c.infer(a)
		}
		return c.errType()
	}
	if len(fi.Params) != len(e.Args) {
		c.reportErr(e.Loc, diag.TypCannotCall,
			"expected "+strconv.Itoa(len(fi.Params))+" argument(s), got "+strconv.Itoa(len(e.Args)))
		for _, a := range e.Args {
			c.infer(a)
		}
		return c.errType()
	}
	for i, a := range e.Args {
		c.check(a, fi.Params[i])
	}
	return fi.Result
}

func (c *Checker) inferBlock(e *ast.Expr, expected types.TypeID) types.TypeID {
	warned := false
	divergent := false
	for _, sid := range e.Stmts {
		s := c.Mod.Stmt(sid)
		if s == nil {
			continue
		}
		if divergent && !warned {
			c.warn(s.Loc, diag.TypUnreachableCode, "unreachable code")
			warned = true
		}
		switch s.Kind {
		case ast.StmtDecl:
			c.declHead(s.Decl)
			c.declFull(s.Decl)
			if d := c.Mod.Decl(s.Decl); d != nil {
				divergent = c.isNoRet(types.TypeID(d.TypeSlot))
			}
		case ast.StmtExpr:
			divergent = c.isNoRet(c.infer(s.Expr))
		}
	}
	if e.Tail.IsValid() {
		if divergent && !warned {
			if t := c.Mod.Expr(e.Tail); t != nil {
				c.warn(t.Loc, diag.TypUnreachableCode, "unreachable code")
			}
		}
		return c.check(e.Tail, expected)
	}
	return c.reconcile(e.Loc, c.Types.Builtins().Unit, expected)
}

func (c *Checker) inferIf(e *ast.Expr, expected types.TypeID) types.TypeID {
	c.check(e.Cond, c.Types.Builtins().Bool)
	if !e.Else.IsValid() {
		thenT := c.infer(e.Then)
		if !c.isNoRet(thenT) && thenT != c.Types.Builtins().Unit && c.shouldEmitError(thenT) {
			c.reportErrWithNotes(e.Loc, diag.TypMismatch,
				"'if' without 'else' must have type '()', found '"+c.typeName(thenT)+"'",
				c.explainNoRet())
		}
		return c.reconcile(e.Loc, c.Types.Builtins().Unit, expected)
	}
	var thenT, elseT types.TypeID
	if expected != types.NoTypeID {
		thenT = c.check(e.Then, expected)
		elseT = c.check(e.Else, expected)
	} else {
		thenT = c.infer(e.Then)
		elseT = c.infer(e.Else)
	}
	j, ok := c.Types.Join(thenT, elseT)
	if !ok {
		if c.shouldEmitError(thenT) && c.shouldEmitError(elseT) {
			c.reportErr(e.Loc, diag.TypMismatch, "'if' branches have incompatible types")
		}
		return c.errType()
	}
	return j
}

func (c *Checker) inferMatch(e *ast.Expr, expected types.TypeID) types.TypeID {
	scrutT := c.infer(e.Scrutinee)
	cases := c.Mod.CaseSlice(e.Cases)
	result := expected
	have := expected != types.NoTypeID
	for _, cs := range cases {
		c.checkPtrn(cs.Ptrn, scrutT)
		if cs.Guard.IsValid() {
			c.check(cs.Guard, c.Types.Builtins().Bool)
		}
		if have {
			c.check(cs.Body, result)
			continue
		}
		bt := c.infer(cs.Body)
		if !have {
			result, have = bt, true
			continue
		}
		if j, ok := c.Types.Join(result, bt); ok {
			result = j
		} else if c.shouldEmitError(result) && c.shouldEmitError(bt) {
			c.reportErr(cs.Loc, diag.TypMismatch, "'match' arms have incompatible types")
			result = c.errType()
		}
	}
	if !have {
		return c.Types.Builtins().Unit
	}
	return result
}

func (c *Checker) inferWhile(e *ast.Expr) types.TypeID {
	c.check(e.Cond, c.Types.Builtins().Bool)
	c.enterLoop()
	c.check(e.Body, c.Types.Builtins().Unit)
	c.exitLoop()
	return c.Types.Builtins().Unit
}

func (c *Checker) inferFor(e *ast.Expr) types.TypeID {
	rangeT := c.resolveAlias(c.infer(e.ForRange))
	var elem types.TypeID
	if rt, ok := c.Types.Lookup(rangeT); ok && rt.Kind == types.KindArray {
		elem = rt.Elem
	} else {
		if c.shouldEmitError(rangeT) {
			c.reportErr(e.Loc, diag.TypArrayExpected, "'for' range must be an array")
		}
		elem = c.errType()
	}
	c.checkPtrn(e.ForPtrn, elem)
	c.enterLoop()
	c.check(e.Body, c.Types.Builtins().Unit)
	c.exitLoop()
	return c.Types.Builtins().Unit
}

func (c *Checker) inferBreak(e *ast.Expr) types.TypeID {
	if e.Value.IsValid() {
		c.check(e.Value, c.Types.Builtins().Unit)
	}
	return c.Types.Builtins().Nothing
}

func (c *Checker) inferReturn(e *ast.Expr) types.TypeID {
	fc := c.curFn()
	var want types.TypeID
	hasWant := fc != nil && fc.hasRetType
	if hasWant {
		want = fc.retType
	}
	switch {
	case e.Value.IsValid() && hasWant:
		c.check(e.Value, want)
	case e.Value.IsValid():
		c.infer(e.Value)
		c.reportErr(e.Loc, diag.TypCannotInfer, "cannot infer a return type here; annotate the function's return type")
	case hasWant:
		c.reconcile(e.Loc, c.Types.Builtins().Unit, want)
	}
	return c.Types.Builtins().Nothing
}

func (c *Checker) inferUnary(e *ast.Expr) types.TypeID {
	switch e.UnOp {
	case ast.UnaryNot:
		c.check(e.Operand, c.Types.Builtins().Bool)
		return c.Types.Builtins().Bool
	default: // UnaryNeg, UnaryPlus
		t := c.infer(e.Operand)
		rt, ok := c.Types.Lookup(t)
		if !ok || (rt.Kind != types.KindInt && rt.Kind != types.KindFloat) {
			if c.shouldEmitError(t) {
				c.reportErr(e.Loc, diag.TypMismatch, "unary operator expects a numeric operand")
			}
			return c.errType()
		}
		return t
	}
}

func (c *Checker) inferBinary(e *ast.Expr) types.TypeID {
	switch e.BinOp {
	case ast.BinAssign:
		targetT := c.infer(e.LHS)
		c.checkMut(e.LHS)
		c.check(e.RHS, targetT)
		return c.Types.Builtins().Unit

	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		lt := c.infer(e.LHS)
		c.check(e.RHS, lt)
		return c.Types.Builtins().Bool

	case ast.BinAnd, ast.BinOr:
		c.check(e.LHS, c.Types.Builtins().Bool)
		c.check(e.RHS, c.Types.Builtins().Bool)
		return c.Types.Builtins().Bool

	default: // BinAdd/Sub/Mul/Div/Mod
		lt := c.infer(e.LHS)
		c.check(e.RHS, lt)
		return lt
	}
}

func (c *Checker) inferFnExpr(e *ast.Expr) types.TypeID {
	params := make([]types.TypeID, 0, len(c.Mod.ParamSlice(e.Params)))
	for _, p := range c.Mod.ParamSlice(e.Params) {
		params = append(params, c.typeOf(p.Type))
	}
	hasRet := e.RetType.IsValid()
	var result types.TypeID
	if hasRet {
		result = c.typeOf(e.RetType)
	}
	c.pushFn(&fnContext{retType: result, hasRetType: hasRet})
	switch {
	case e.Body.IsValid() && hasRet:
		c.check(e.Body, result)
	case e.Body.IsValid():
		result = c.infer(e.Body)
	case !hasRet:
		result = c.Types.Builtins().Unit
	}
	c.popFn()
	return c.Types.RegisterFn(params, result)
}
