package cir

import (
	"fmt"

	"fortio.org/safecast"

	"articc/internal/types"
)

// World owns the IR graph's arena and the type interner it stamps every Def
// with (a Lam's Type is a "cn" continuation type built with TypeBB, an
// Extract's Type is whatever component type the caller supplies, and so
// on) — the same append-only, ID-indexed storage discipline as
// types.Interner and ast.Arena.
type World struct {
	defs  []Def
	Types *types.Interner
}

// NewWorld constructs an empty IR graph over the given type interner. Every
// Def this World produces stamps its Type into tin, so cir and check share
// one type identity space.
func NewWorld(tin *types.Interner) *World {
	w := &World{Types: tin}
	w.defs = append(w.defs, Def{}) // index 0 is NoDefID
	return w
}

// LoadWorld reconstructs a World from a previously captured node list (index
// 0 must be the NoDefID placeholder), used by internal/irsnap to replay a
// snapshot without re-running the emitter.
func LoadWorld(tin *types.Interner, defs []Def) *World {
	return &World{Types: tin, defs: defs}
}

// Defs returns every node this World has allocated, including the index-0
// NoDefID placeholder, for a caller (internal/irsnap) that needs to walk or
// serialize the whole graph.
func (w *World) Defs() []Def {
	return w.defs
}

func (w *World) alloc(d Def) DefID {
	n, err := safecast.Conv[uint32](len(w.defs))
	if err != nil {
		panic(fmt.Errorf("cir: def arena overflow: %w", err))
	}
	w.defs = append(w.defs, d)
	return DefID(n)
}

// Def returns the node id names, or nil for NoDefID / an out-of-range id.
func (w *World) Def(id DefID) *Def {
	if id == NoDefID || int(id) >= len(w.defs) {
		return nil
	}
	return &w.defs[id]
}

// Len returns one past the highest DefID this World has allocated, so a
// caller (internal/irsnap) can walk every live node with Def(DefID(i)) for
// i in [1, Len()).
func (w *World) Len() int {
	return len(w.defs)
}

// TypeMem is the memory-token's own type: the first parameter of every
// basic block.
func (w *World) TypeMem() types.TypeID {
	return w.Types.Builtins().Mem
}

// TypeBB builds a continuation type cn(mem[, ty]) -> no_ret: the type of a
// basic block that takes the memory token and, if ty is non-zero, one
// value. Every Lam's own Type is built this way.
func (w *World) TypeBB(ty types.TypeID) types.TypeID {
	domain := []types.TypeID{w.TypeMem()}
	if ty != types.NoTypeID {
		domain = append(domain, ty)
	}
	return w.Types.RegisterFn(domain, w.Types.Builtins().Nothing)
}

// Lam allocates a basic block: a Lam node plus its Param nodes. Params[0] is
// always the memory token; it is followed by one Param of valueType when
// valueType is non-zero, then one per entry in paramTypes (paramTypes should
// not include the memory token). Body is left NoDefID until the caller
// emits this block's terminator.
func (w *World) Lam(valueType types.TypeID, paramTypes ...types.TypeID) DefID {
	lamID := w.alloc(Def{Kind: DefLam, Type: w.TypeBB(valueType)})
	if valueType != types.NoTypeID {
		paramTypes = append([]types.TypeID{valueType}, paramTypes...)
	}
	params := make([]DefID, 0, len(paramTypes)+1)
	params = append(params, w.alloc(Def{Kind: DefParam, Type: w.TypeMem(), Owner: lamID, Index: 0}))
	for i, pt := range paramTypes {
		params = append(params, w.alloc(Def{Kind: DefParam, Type: pt, Owner: lamID, Index: i + 1}))
	}
	w.defs[lamID].Params = params
	return lamID
}

// Param returns the index'th parameter of a Lam (index 0 is the memory
// token).
func (w *World) Param(lam DefID, index int) DefID {
	d := w.Def(lam)
	if d == nil || index < 0 || index >= len(d.Params) {
		return NoDefID
	}
	return d.Params[index]
}

// SetBody installs a Lam's terminator exactly once, mirroring every other
// single-assignment slot in this codebase (ast.*.TypeSlot/DefSlot,
// types nominal operand slots).
func (w *World) SetBody(lam, body DefID) {
	d := w.Def(lam)
	if d == nil {
		return
	}
	if d.Body != NoDefID {
		panic("cir: Lam body written twice")
	}
	d.Body = body
}

// App builds an application node, applying callee to arg (arg may be
// NoDefID for a nullary call). Its Type is the codomain the caller passes,
// since the IR world does not itself unpack pi/cn types.
func (w *World) App(callee, arg DefID, resultType types.TypeID) DefID {
	return w.alloc(Def{Kind: DefApp, Type: resultType, Callee: callee, Arg: arg})
}

// Branch builds a two-way terminator: jump to trueLam if cond holds,
// falseLam otherwise.
func (w *World) Branch(cond, trueLam, falseLam DefID) DefID {
	return w.alloc(Def{Kind: DefBranch, Type: w.Types.Builtins().Nothing, Cond: cond, True: trueLam, False: falseLam})
}

// Tuple builds a tuple node over elems.
func (w *World) Tuple(ty types.TypeID, elems ...DefID) DefID {
	return w.alloc(Def{Kind: DefTuple, Type: ty, Elems: append([]DefID(nil), elems...)})
}

// Extract projects the at'th component of tuple.
func (w *World) Extract(tuple DefID, at int, ty types.TypeID) DefID {
	return w.alloc(Def{Kind: DefExtract, Type: ty, Tuple: tuple, AtElem: at})
}

// Lit builds a primitive literal of the given type carrying a raw bit
// pattern, matching §6.3's `lit(type, bits)`.
func (w *World) Lit(ty types.TypeID, bits uint64) DefID {
	return w.alloc(Def{Kind: DefLit, Type: ty, Bits: bits})
}

// LitBool builds lit_true/lit_false.
func (w *World) LitBool(b bool) DefID {
	bits := uint64(0)
	if b {
		bits = 1
	}
	return w.Lit(w.Types.Builtins().Bool, bits)
}

// LitFloat builds a floating-point literal from its IEEE-754 bit pattern.
func (w *World) LitFloat(ty types.TypeID, bits uint64) DefID {
	return w.Lit(ty, bits)
}

// Prim builds a primitive operation node over args.
func (w *World) Prim(op PrimOp, ty types.TypeID, args ...DefID) DefID {
	return w.alloc(Def{Kind: DefPrim, Type: ty, Op: op, Args: append([]DefID(nil), args...)})
}

// Cps2Ds exposes a CPS Lam as a direct-style function of type dsType.
func (w *World) Cps2Ds(lam DefID, dsType types.TypeID) DefID {
	return w.alloc(Def{Kind: DefCps2Ds, Type: dsType, Inner: lam})
}

// Ds2Cps exposes a direct-style function as a CPS Lam of type cpsType.
func (w *World) Ds2Cps(fn DefID, cpsType types.TypeID) DefID {
	return w.alloc(Def{Kind: DefDs2Cps, Type: cpsType, Inner: fn})
}
