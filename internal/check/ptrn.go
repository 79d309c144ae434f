package check

import (
	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/symbols"
	"articc/internal/types"
)

// checkPtrn binds pattern id against expected, writing p.TypeSlot exactly
// once. Mirrors Ptrn::check's per-kind dispatch.
func (c *Checker) checkPtrn(id ast.PtrnID, expected types.TypeID) types.TypeID {
	p := c.Mod.Ptrn(id)
	if p == nil {
		return c.errType()
	}
	t := c.dispatchPtrn(p, expected)
	p.TypeSlot = uint32(t)
	return t
}

func (c *Checker) dispatchPtrn(p *ast.Ptrn, expected types.TypeID) types.TypeID {
	switch p.Kind {
	case ast.PtrnError:
		return c.errType()

	case ast.PtrnTyped:
		want := c.typeOf(p.Ann)
		c.checkPtrn(p.Sub, want)
		return c.reconcile(p.Loc, want, expected)

	case ast.PtrnId:
		if expected == types.NoTypeID {
			c.reportErr(p.Loc, diag.TypCannotInfer, "cannot infer the type of '"+c.name(p.Name)+"'")
			return c.errType()
		}
		return expected

	case ast.PtrnLiteral:
		return c.reconcile(p.Loc, c.ptrnLiteralType(p, expected), expected)

	case ast.PtrnRecord:
		return c.checkRecordPtrn(p, expected)

	case ast.PtrnCtor:
		return c.checkCtorPtrn(p, expected)

	case ast.PtrnTuple:
		return c.checkTuplePtrn(p, expected)

	case ast.PtrnArray:
		return c.checkArrayPtrn(p, expected)
	}
	return c.errType()
}

func (c *Checker) ptrnLiteralType(p *ast.Ptrn, expected types.TypeID) types.TypeID {
	b := c.Types.Builtins()
	switch p.LitKind {
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
	return b.Unit
}

// checkRecordPtrn resolves the struct named by the pattern's own path
// unless expected already names an instantiated struct type, so a match
// against a value of known type reuses that instantiation's field types.
func (c *Checker) checkRecordPtrn(p *ast.Ptrn, expected types.TypeID) types.TypeID {
	if p.RecordSym == 0 {
		return c.errType()
	}
	sym := symbols.SymbolID(p.RecordSym)
	s := c.Table.Symbols.Get(sym)
	if s == nil || s.Kind != symbols.SymbolStruct {
		return c.errType()
	}
	c.declHead(s.Decl.Decl)
	structType := expected
	if _, ok := c.Types.StructInfo(expected); !ok {
		structType = c.applyNominal(s.Decl.Decl, nil, p.Loc)
	}
	fields := c.Types.StructFields(structType)
	for _, f := range p.Fields {
		fn := c.name(f.Name)
		want, found := c.errType(), false
		for _, sf := range fields {
			if c.name(sf.Name) == fn {
				want, found = sf.Type, true
				break
			}
		}
		if !found {
			c.reportErr(f.Loc, diag.TypUnknownField, "'"+c.name(s.Name)+"' has no field '"+fn+"'")
		}
		c.checkPtrn(f.Sub, want)
	}
	return structType
}

func (c *Checker) checkCtorPtrn(p *ast.Ptrn, expected types.TypeID) types.TypeID {
	if p.CtorSym == 0 {
		return c.errType()
	}
	sym := symbols.SymbolID(p.CtorSym)
	s := c.Table.Symbols.Get(sym)
	if s == nil || s.Kind != symbols.SymbolEnum {
		return c.errType()
	}
	c.declHead(s.Decl.Decl)
	enumType := expected
	if _, ok := c.Types.UnionInfo(expected); !ok {
		enumType = c.applyNominal(s.Decl.Decl, nil, p.Loc)
	}
	info, ok := c.Types.UnionInfo(enumType)
	if !ok {
		return c.errType()
	}
	name := ""
	if len(p.CtorSegments) > 0 {
		name = c.name(p.CtorSegments[len(p.CtorSegments)-1])
	}
	for _, m := range info.Members {
		if c.name(m.TagName) != name {
			continue
		}
		switch m.Kind {
		case types.UnionMemberNothing:
			if len(p.Payload) != 0 {
				c.reportErr(p.Loc, diag.TypCannotCall, "'"+name+"' carries no payload")
			}
		case types.UnionMemberType:
			c.checkCtorPayload(p, m.Type)
		}
		return enumType
	}
	c.reportErr(p.Loc, diag.TypUnknownField, "no such option '"+name+"'")
	return c.errType()
}

func (c *Checker) checkCtorPayload(p *ast.Ptrn, payload types.TypeID) {
	if len(p.Payload) == 1 {
		if info, ok := c.Types.TupleInfo(payload); !ok || len(info.Elems) != 1 {
			c.checkPtrn(p.Payload[0], payload)
			return
		}
	}
	info, ok := c.Types.TupleInfo(payload)
	if !ok || len(info.Elems) != len(p.Payload) {
		c.reportErr(p.Loc, diag.TypCannotCall, "wrong number of payload patterns")
		return
	}
	for i, sub := range p.Payload {
		c.checkPtrn(sub, info.Elems[i])
	}
}

func (c *Checker) checkTuplePtrn(p *ast.Ptrn, expected types.TypeID) types.TypeID {
	info, ok := c.Types.TupleInfo(expected)
	if !ok || len(info.Elems) != len(p.Elems) {
		for _, sub := range p.Elems {
			c.checkPtrn(sub, c.errType())
		}
		if c.shouldEmitError(expected) {
			c.reportErr(p.Loc, diag.TypMismatch, "pattern arity does not match the scrutinee's tuple type")
		}
		return c.errType()
	}
	elems := make([]types.TypeID, len(p.Elems))
	for i, sub := range p.Elems {
		elems[i] = c.checkPtrn(sub, info.Elems[i])
	}
	return c.Types.RegisterTuple(elems)
}

func (c *Checker) checkArrayPtrn(p *ast.Ptrn, expected types.TypeID) types.TypeID {
	et, ok := c.Types.Lookup(expected)
	if !ok || et.Kind != types.KindArray {
		for _, sub := range p.Elems {
			c.checkPtrn(sub, c.errType())
		}
		if c.shouldEmitError(expected) {
			c.reportErr(p.Loc, diag.TypArrayExpected, "pattern expects an array")
		}
		return c.errType()
	}
	for _, sub := range p.Elems {
		c.checkPtrn(sub, et.Elem)
	}
	return expected
}
