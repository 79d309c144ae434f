package types

import "articc/internal/source"

// Join computes the least upper bound of a and b: identical types join to
// themselves, anything joined with the bottom type (no_ret) yields the
// other operand, and literal-agnostic integer/real families unify with any
// other member of the same family (this interner does not track bit width,
// so "compatible fixed-width" collapses to "same Kind"). Anything else has
// no join.
func (in *Interner) Join(a, b TypeID) (TypeID, bool) {
	if a == b {
		return a, true
	}
	at, aok := in.Lookup(a)
	bt, bok := in.Lookup(b)
	if !aok || !bok {
		return NoTypeID, false
	}
	if at.Kind == KindInvalid || bt.Kind == KindInvalid {
		return in.builtins.Invalid, true
	}
	if at.Kind == KindNothing {
		return b, true
	}
	if bt.Kind == KindNothing {
		return a, true
	}
	if at.Kind == KindInt && bt.Kind == KindInt {
		return a, true
	}
	if at.Kind == KindFloat && bt.Kind == KindFloat {
		return a, true
	}
	return NoTypeID, false
}

// Meet computes the greatest lower bound, dual to Join: no_ret is a subtype
// of everything so it wins a meet against any operand.
func (in *Interner) Meet(a, b TypeID) (TypeID, bool) {
	if a == b {
		return a, true
	}
	at, aok := in.Lookup(a)
	bt, bok := in.Lookup(b)
	if !aok || !bok {
		return NoTypeID, false
	}
	if at.Kind == KindInvalid || bt.Kind == KindInvalid {
		return in.builtins.Invalid, true
	}
	if at.Kind == KindNothing {
		return a, true
	}
	if bt.Kind == KindNothing {
		return b, true
	}
	if at.Kind == KindInt && bt.Kind == KindInt {
		return a, true
	}
	if at.Kind == KindFloat && bt.Kind == KindFloat {
		return a, true
	}
	return NoTypeID, false
}

// Contains reports whether sub occurs anywhere in t's structure, used by
// the checker to detect error/no-ret propagation before reporting a
// diagnostic derived from an already-broken subtree.
func (in *Interner) Contains(t, sub TypeID) bool {
	return in.contains(t, sub, make(map[TypeID]bool))
}

func (in *Interner) contains(t, sub TypeID, seen map[TypeID]bool) bool {
	if t == sub {
		return true
	}
	if t == NoTypeID || seen[t] {
		return false
	}
	seen[t] = true
	tt, ok := in.Lookup(t)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindArray, KindPtr:
		return in.contains(tt.Elem, sub, seen)
	case KindTuple:
		info, ok := in.TupleInfo(t)
		if !ok {
			return false
		}
		for _, e := range info.Elems {
			if in.contains(e, sub, seen) {
				return true
			}
		}
	case KindFn:
		info, ok := in.FnInfo(t)
		if !ok {
			return false
		}
		for _, p := range info.Params {
			if in.contains(p, sub, seen) {
				return true
			}
		}
		return in.contains(info.Result, sub, seen)
	case KindStruct:
		info, ok := in.StructInfo(t)
		if !ok {
			return false
		}
		for _, f := range info.Fields {
			if in.contains(f.Type, sub, seen) {
				return true
			}
		}
		for _, a := range info.TypeArgs {
			if in.contains(a, sub, seen) {
				return true
			}
		}
	case KindUnion:
		info, ok := in.UnionInfo(t)
		if !ok {
			return false
		}
		for _, m := range info.Members {
			if in.contains(m.Type, sub, seen) {
				return true
			}
		}
		for _, a := range info.TypeArgs {
			if in.contains(a, sub, seen) {
				return true
			}
		}
	case KindAlias:
		if target, ok := in.AliasTarget(t); ok {
			return in.contains(target, sub, seen)
		}
	case KindForall:
		info, ok := in.ForallInfo(t)
		if !ok {
			return false
		}
		return in.contains(info.Body, sub, seen)
	}
	return false
}

// HasError reports whether t is, or structurally contains, the error type.
// The checker uses this as should_emit_error's negation before reporting a
// diagnostic derived from t.
func (in *Interner) HasError(t TypeID) bool {
	return in.Contains(t, in.builtins.Invalid)
}

// Meta returns the ordered member names of a struct or union type, one name
// per operand slot, used to resolve named field/option access.
func (in *Interner) Meta(t TypeID) []source.StringID {
	tt, ok := in.Lookup(t)
	if !ok {
		return nil
	}
	switch tt.Kind {
	case KindStruct:
		info, ok := in.StructInfo(t)
		if !ok {
			return nil
		}
		names := make([]source.StringID, len(info.Fields))
		for i, f := range info.Fields {
			names[i] = f.Name
		}
		return names
	case KindUnion:
		info, ok := in.UnionInfo(t)
		if !ok {
			return nil
		}
		names := make([]source.StringID, len(info.Members))
		for i, m := range info.Members {
			names[i] = m.TagName
		}
		return names
	}
	return nil
}

// Rewrite substitutes every occurrence of a structural type variable in
// from with the corresponding entry in to inside t, used to instantiate a
// polymorphic pi type's codomain. Nominal application (struct/union/alias)
// goes through the checker's Apply instead, since only the checker knows
// which declaration to re-instantiate.
func (in *Interner) Rewrite(t TypeID, from, to []TypeID) TypeID {
	for i, f := range from {
		if t == f {
			return to[i]
		}
	}
	if len(from) == 0 {
		return t
	}
	tt, ok := in.Lookup(t)
	if !ok {
		return t
	}
	switch tt.Kind {
	case KindArray:
		elem := in.Rewrite(tt.Elem, from, to)
		if elem == tt.Elem {
			return t
		}
		return in.Intern(MakeArray(elem, tt.Count))
	case KindPtr:
		elem := in.Rewrite(tt.Elem, from, to)
		if elem == tt.Elem {
			return t
		}
		return in.Intern(MakePtr(elem))
	case KindTuple:
		info, ok := in.TupleInfo(t)
		if !ok {
			return t
		}
		elems := make([]TypeID, len(info.Elems))
		changed := false
		for i, e := range info.Elems {
			elems[i] = in.Rewrite(e, from, to)
			changed = changed || elems[i] != e
		}
		if !changed {
			return t
		}
		return in.RegisterTuple(elems)
	case KindFn:
		info, ok := in.FnInfo(t)
		if !ok {
			return t
		}
		params := make([]TypeID, len(info.Params))
		changed := false
		for i, p := range info.Params {
			params[i] = in.Rewrite(p, from, to)
			changed = changed || params[i] != p
		}
		result := in.Rewrite(info.Result, from, to)
		changed = changed || result != info.Result
		if !changed {
			return t
		}
		return in.RegisterFn(params, result)
	}
	return t
}
