package check

import (
	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/symbols"
	"articc/internal/types"
)

// declHead installs a declaration's own signature so mutually recursive
// declarations can reference each other before either body is inferred:
// a struct/enum gets its bare nominal type (self-references resolve), a fn
// with a return annotation gets its full pi type eagerly, a type alias with
// no cycle gets its target resolved. Mirrors Decl::bind_head's counterpart
// on the check.cpp side, TypeChecker::infer_head.
func (c *Checker) declHead(id ast.DeclID) {
	d := c.Mod.Decl(id)
	if d == nil {
		return
	}
	if d.TypeSlot != 0 {
		return
	}
	if c.state[id] == declInProgress {
		return
	}

	switch d.Kind {
	case ast.DeclStruct, ast.DeclEnum:
		c.state[id] = declInProgress
		params := c.registerTypeParams(id, d.TypeParams)
		var base types.TypeID
		if d.Kind == ast.DeclStruct {
			base = c.Types.RegisterStruct(d.Name, d.Loc)
		} else {
			base = c.Types.RegisterUnion(d.Name, d.Loc)
		}
		c.nominalBase[id] = base
		c.typeParams[id] = params
		if len(params) > 0 {
			base = c.Types.RegisterForall(params, base)
		}
		d.TypeSlot = uint32(base)
		c.state[id] = declDone

	case ast.DeclTypeAlias:
		c.state[id] = declInProgress
		params := c.registerTypeParams(id, d.TypeParams)
		base := c.Types.RegisterAlias(d.Name, d.Loc)
		c.nominalBase[id] = base
		c.typeParams[id] = params
		if d.Aliased.IsValid() {
			c.Types.SetAliasTarget(base, c.typeOf(d.Aliased))
		}
		result := base
		if len(params) > 0 {
			result = c.Types.RegisterForall(params, base)
		}
		d.TypeSlot = uint32(result)
		c.state[id] = declDone

	case ast.DeclFn:
		if !d.RetType.IsValid() {
			// No annotation: the signature can only be known after the body
			// is inferred, so head does nothing here and full does the work,
			// same as an un-annotated fn in check.cpp's two-pass scheme.
			return
		}
		c.state[id] = declInProgress
		params := c.registerTypeParams(id, d.TypeParams)
		c.typeParams[id] = params
		domain := make([]types.TypeID, 0, len(c.Mod.ParamSlice(d.Params)))
		for _, p := range c.Mod.ParamSlice(d.Params) {
			domain = append(domain, c.typeOf(p.Type))
		}
		result := c.Types.RegisterFn(domain, c.typeOf(d.RetType))
		if len(params) > 0 {
			result = c.Types.RegisterForall(params, result)
		}
		d.TypeSlot = uint32(result)
		c.state[id] = declDone

	case ast.DeclMod:
		for _, child := range d.Body_ {
			c.declHead(child)
		}
		d.TypeSlot = uint32(c.Types.Builtins().Unit)

	case ast.DeclLet:
		// A let's type is only known once its initializer is inferred; no
		// forward-visible signature exists for a value binding.
	}
}

// registerTypeParams interns a GenericParam TypeID for every entry in a
// decl's own type-parameter list and records the symbol -> TypeID mapping
// so path elaboration inside the decl's body resolves them.
func (c *Checker) registerTypeParams(owner ast.DeclID, r ast.Range) []types.TypeID {
	tps := c.Mod.TypeParamSlice(r)
	if len(tps) == 0 {
		return nil
	}
	out := make([]types.TypeID, len(tps))
	for i, tp := range tps {
		tid := c.Types.RegisterTypeParam(tp.Name, uint32(owner), uint32(i), false, 0)
		out[i] = tid
		if tp.Sym != 0 {
			c.typeParamSym[symbols.SymbolID(tp.Sym)] = tid
		}
	}
	return out
}

// declFull infers/checks a declaration's body once its head signature (if
// any) is installed. filled guards it to run exactly once per declaration;
// a re-entrant call while a Let/Fn's own initializer/body is still being
// inferred is the recursive-inference error (struct/enum/alias can't hit
// this path re-entrantly, since their TypeSlot is installed by declHead
// before any field is elaborated). Mirrors Decl::check's per-kind dispatch.
func (c *Checker) declFull(id ast.DeclID) {
	d := c.Mod.Decl(id)
	if d == nil {
		return
	}
	if c.filled[id] {
		return
	}
	if c.state[id] == declInProgress {
		if d.Kind == ast.DeclFn && d.TypeSlot != 0 {
			// An annotated fn's signature was installed by declHead, so a
			// recursive reference while its body is checked is not a cycle.
			return
		}
		c.reportErr(d.Loc, diag.TypRecursiveInference, "'"+c.name(d.Name)+"' depends on its own type")
		d.TypeSlot = uint32(c.errType())
		c.state[id] = declDone
		c.filled[id] = true
		return
	}

	switch d.Kind {
	case ast.DeclLet:
		c.checkLetDecl(id, d)

	case ast.DeclFn:
		c.checkFnDecl(id, d)

	case ast.DeclStruct:
		c.declHead(id)
		base := c.nominalBase[id]
		fields := make([]types.StructField, 0, len(c.Mod.FieldSlice(d.Fields)))
		seen := make(map[string]bool)
		for _, f := range c.Mod.FieldSlice(d.Fields) {
			if fn := c.name(f.Name); seen[fn] {
				c.reportErr(f.Loc, diag.TypDuplicateField, "duplicate field '"+fn+"'")
			} else {
				seen[fn] = true
			}
			fields = append(fields, types.StructField{Name: f.Name, Type: c.typeOf(f.Type)})
		}
		c.Types.SetStructFields(base, fields)

	case ast.DeclEnum:
		c.declHead(id)
		base := c.nominalBase[id]
		members := make([]types.UnionMember, 0, len(c.Mod.OptionSlice(d.Options)))
		for _, o := range c.Mod.OptionSlice(d.Options) {
			if !o.Payload.IsValid() {
				members = append(members, types.UnionMember{Kind: types.UnionMemberNothing, TagName: o.Name})
				continue
			}
			members = append(members, types.UnionMember{Kind: types.UnionMemberType, Type: c.typeOf(o.Payload), TagName: o.Name})
		}
		c.Types.SetUnionMembers(base, members)

	case ast.DeclTypeAlias:
		c.declHead(id)

	case ast.DeclMod:
		for _, child := range d.Body_ {
			c.declHead(child)
		}
		for _, child := range d.Body_ {
			c.declFull(child)
		}
	}
	c.filled[id] = true
}

func (c *Checker) checkLetDecl(id ast.DeclID, d *ast.Decl) {
	c.state[id] = declInProgress
	var initType types.TypeID
	if d.Init.IsValid() {
		ann := c.ptrnAnnotation(d.Ptrn)
		if ann.IsValid() {
			initType = c.check(d.Init, c.typeOf(ann))
		} else {
			initType = c.infer(d.Init)
		}
	} else {
		initType = c.errType()
	}
	c.checkPtrn(d.Ptrn, initType)
	d.TypeSlot = uint32(initType)
	c.state[id] = declDone
}

// ptrnAnnotation returns a PtrnTyped pattern's own annotation, or NoTypeID:
// used so `let x: T = ...` checks its initializer in check-mode against T
// instead of just inferring and comparing after the fact.
func (c *Checker) ptrnAnnotation(id ast.PtrnID) ast.TypeID {
	p := c.Mod.Ptrn(id)
	if p == nil || p.Kind != ast.PtrnTyped {
		return ast.NoTypeID
	}
	return p.Ann
}

func (c *Checker) checkFnDecl(id ast.DeclID, d *ast.Decl) {
	c.state[id] = declInProgress
	if d.TypeSlot == 0 {
		// Un-annotated: infer the body first, then build the signature
		// (no recursive self-calls are possible without an annotation,
		// matching check.cpp's rule that a recursive fn must state its
		// return type).
		params := c.registerTypeParams(id, d.TypeParams)
		c.typeParams[id] = params
		domain := make([]types.TypeID, 0, len(c.Mod.ParamSlice(d.Params)))
		for _, p := range c.Mod.ParamSlice(d.Params) {
			domain = append(domain, c.typeOf(p.Type))
		}
		var result types.TypeID
		if d.Body.IsValid() {
			c.pushFn(&fnContext{hasRetType: false})
			result = c.infer(d.Body)
			c.popFn()
		} else {
			result = c.Types.Builtins().Unit
		}
		sig := c.Types.RegisterFn(domain, result)
		if len(params) > 0 {
			sig = c.Types.RegisterForall(params, sig)
		}
		d.TypeSlot = uint32(sig)
		c.state[id] = declDone
		return
	}

	sig := types.TypeID(d.TypeSlot)
	if fa, ok := c.Types.ForallInfo(sig); ok {
		sig = fa.Body
	}
	fi, ok := c.Types.FnInfo(sig)
	if !ok {
		c.state[id] = declDone
		return
	}
	if d.Body.IsValid() {
		c.pushFn(&fnContext{retType: fi.Result, hasRetType: true})
		c.check(d.Body, fi.Result)
		c.popFn()
	}
	c.state[id] = declDone
}
