package check

import (
	"strconv"

	"articc/internal/ast"
	"articc/internal/diag"
	"articc/internal/source"
	"articc/internal/types"
)

// applyNominal returns the TypeID for declID applied to args. A
// non-generic declaration rejects any args; a generic one requires exactly
// as many args as type parameters and returns a cached instance, filling
// its operands (by rewriting the base declaration's field/option types
// through the params->args substitution) the first time that instance is
// requested. Both error paths return the error type so a diagnostic
// derived from a bad application doesn't cascade (should_emit_error).
func (c *Checker) applyNominal(declID ast.DeclID, args []types.TypeID, loc source.Loc) types.TypeID {
	d := c.Mod.Decl(declID)
	if d == nil {
		return c.errType()
	}
	base := c.nominalBase[declID]
	params := c.typeParams[declID]

	if len(params) == 0 {
		if len(args) > 0 {
			c.reportErr(loc, diag.TypBadTypeArguments, "'"+c.name(d.Name)+"' is not generic, but type arguments were given")
			return c.errType()
		}
		return base
	}
	if len(args) != len(params) {
		if len(args) == 0 {
			c.reportErr(loc, diag.TypBadTypeArguments, "missing type arguments for '"+c.name(d.Name)+"'")
		} else {
			c.reportErr(loc, diag.TypBadTypeArguments, "'"+c.name(d.Name)+"' expects "+strconv.Itoa(len(params))+" type argument(s), got "+strconv.Itoa(len(args)))
		}
		return c.errType()
	}

	switch d.Kind {
	case ast.DeclStruct:
		if existing, ok := c.Types.FindStructInstance(d.Name, args); ok {
			return existing
		}
		inst := c.Types.RegisterStructInstance(d.Name, d.Loc, args)
		fields := make([]types.StructField, 0, len(c.Mod.FieldSlice(d.Fields)))
		for _, f := range c.Mod.FieldSlice(d.Fields) {
			fields = append(fields, types.StructField{
				Name: f.Name,
				Type: c.Types.Rewrite(c.typeOf(f.Type), params, args),
			})
		}
		c.Types.SetStructFields(inst, fields)
		return inst

	case ast.DeclEnum:
		if existing, ok := c.Types.FindUnionInstance(d.Name, args); ok {
			return existing
		}
		inst := c.Types.RegisterUnionInstance(d.Name, d.Loc, args)
		members := make([]types.UnionMember, 0, len(c.Mod.OptionSlice(d.Options)))
		for _, o := range c.Mod.OptionSlice(d.Options) {
			if !o.Payload.IsValid() {
				members = append(members, types.UnionMember{Kind: types.UnionMemberNothing, TagName: o.Name})
				continue
			}
			members = append(members, types.UnionMember{
				Kind:    types.UnionMemberType,
				Type:    c.Types.Rewrite(c.typeOf(o.Payload), params, args),
				TagName: o.Name,
			})
		}
		c.Types.SetUnionMembers(inst, members)
		return inst

	case ast.DeclTypeAlias:
		if existing, ok := c.Types.FindAliasInstance(d.Name, args); ok {
			return existing
		}
		inst := c.Types.RegisterAliasInstance(d.Name, d.Loc, args)
		c.Types.SetAliasTarget(inst, c.Types.Rewrite(c.typeOf(d.Aliased), params, args))
		return inst
	}
	return c.errType()
}
