package emit

import (
	"articc/internal/ast"
	"articc/internal/cir"
	"articc/internal/source"
	"articc/internal/symbols"
	"articc/internal/types"
)

// bindPtrn binds the def slots a pattern introduces to a value already
// computed for the scrutinee it matches, and writes p.DefSlot for every
// binding occurrence. Spec §4.5 names three rules directly (Id/Tuple/Typed);
// Record and Array patterns generalize Tuple's per-component extraction,
// and Ctor/Literal patterns bind only their payload, if any (their
// discriminant was already validated by the checker; runtime tag testing
// belongs to Match lowering, not to pattern binding).
func (e *Emitter) bindPtrn(id ast.PtrnID, val cir.DefID) {
	p := e.Mod.Ptrn(id)
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.PtrnTyped:
		e.bindPtrn(p.Sub, val)
		p.DefSlot = uint32(val)

	case ast.PtrnId:
		if p.Sym != 0 {
			e.locals[symbols.SymbolID(p.Sym)] = val
		}
		p.DefSlot = uint32(val)

	case ast.PtrnTuple, ast.PtrnArray:
		for i, sub := range p.Elems {
			e.bindPtrn(sub, e.World.Extract(val, i, e.subPtrnType(sub)))
		}
		p.DefSlot = uint32(val)

	case ast.PtrnRecord:
		fields := e.Types.StructFields(types.TypeID(p.TypeSlot))
		for _, f := range p.Fields {
			idx := e.fieldIndex(fields, f.Name)
			e.bindPtrn(f.Sub, e.World.Extract(val, idx, e.subPtrnType(f.Sub)))
		}
		p.DefSlot = uint32(val)

	case ast.PtrnCtor:
		for i, sub := range p.Payload {
			e.bindPtrn(sub, e.World.Extract(val, i, e.subPtrnType(sub)))
		}
		p.DefSlot = uint32(val)

	default:
		p.DefSlot = uint32(val)
	}
}

func (e *Emitter) subPtrnType(id ast.PtrnID) types.TypeID {
	p := e.Mod.Ptrn(id)
	if p == nil {
		return types.NoTypeID
	}
	return types.TypeID(p.TypeSlot)
}

func (e *Emitter) fieldIndex(fields []types.StructField, name source.StringID) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return 0
}
