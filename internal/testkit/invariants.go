package testkit

import (
	"fmt"

	"articc/internal/ast"
)

// CheckArenaInvariants runs a minimal set of structural sanity checks on a
// built module, independent of any particular pass:
//  1. every DeclID in Top is valid, unique, and addresses a live Decls slot
//  2. every Range recorded on a decl (TypeParams/Params/Fields/Options) or
//     a match expression (Cases) lies within its arena's current bounds
func CheckArenaInvariants(mod *ast.Module) error {
	if mod == nil {
		return fmt.Errorf("nil module")
	}

	seen := make(map[ast.DeclID]bool, len(mod.Top))
	for _, id := range mod.Top {
		if !id.IsValid() {
			return fmt.Errorf("top-level decl id is invalid: %d", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate top-level decl id: %d", id)
		}
		seen[id] = true
		if mod.Decl(id) == nil {
			return fmt.Errorf("top-level decl id %d has no backing slot", id)
		}
	}

	for i := uint32(1); i <= mod.Decls.Len(); i++ {
		id := ast.DeclID(i)
		d := mod.Decl(id)
		if d == nil {
			return fmt.Errorf("decl %d missing from arena despite being within Len()", id)
		}
		if err := checkRange("decl", uint32(id), "TypeParams", d.TypeParams, mod.TypeParams.Len()); err != nil {
			return err
		}
		if err := checkRange("decl", uint32(id), "Params", d.Params, mod.Params.Len()); err != nil {
			return err
		}
		if err := checkRange("decl", uint32(id), "Fields", d.Fields, mod.Fields.Len()); err != nil {
			return err
		}
		if err := checkRange("decl", uint32(id), "Options", d.Options, mod.Options.Len()); err != nil {
			return err
		}
	}

	for i := uint32(1); i <= mod.Exprs.Len(); i++ {
		id := ast.ExprID(i)
		e := mod.Expr(id)
		if e == nil {
			return fmt.Errorf("expr %d missing from arena despite being within Len()", id)
		}
		if err := checkRange("expr", uint32(id), "Cases", e.Cases, mod.Cases.Len()); err != nil {
			return err
		}
	}

	return nil
}

func checkRange(ownerKind string, owner uint32, field string, r ast.Range, arenaLen uint32) error {
	if r.Count == 0 {
		return nil
	}
	if r.Start == 0 || r.Start-1+r.Count > arenaLen {
		return fmt.Errorf("%s %d: %s range %+v out of bounds (arena len %d)", ownerKind, owner, field, r, arenaLen)
	}
	return nil
}
