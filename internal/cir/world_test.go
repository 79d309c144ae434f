package cir

import (
	"testing"

	"articc/internal/types"
)

func TestLamHasMemoryTokenFirst(t *testing.T) {
	tin := types.NewInterner()
	w := NewWorld(tin)

	lam := w.Lam(tin.Builtins().Int)
	mem := w.Param(lam, 0)
	if mem == NoDefID {
		t.Fatal("Lam's param 0 (memory token) is unset")
	}
	memDef := w.Def(mem)
	if memDef.Type != w.TypeMem() {
		t.Fatalf("memory param type = %v, want %v", memDef.Type, w.TypeMem())
	}

	val := w.Param(lam, 1)
	if val == NoDefID {
		t.Fatal("Lam's param 1 (value) is unset")
	}
	if w.Def(val).Type != tin.Builtins().Int {
		t.Fatalf("value param type = %v, want int", w.Def(val).Type)
	}
}

func TestSetBodyOnce(t *testing.T) {
	tin := types.NewInterner()
	w := NewWorld(tin)
	lam := w.Lam(types.NoTypeID)
	app := w.App(lam, NoDefID, tin.Builtins().Nothing)
	w.SetBody(lam, app)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double SetBody")
		}
	}()
	w.SetBody(lam, app)
}

func TestTupleExtractRoundTrip(t *testing.T) {
	tin := types.NewInterner()
	w := NewWorld(tin)
	a := w.Lit(tin.Builtins().Int, 1)
	b := w.LitBool(true)
	tup := w.Tuple(types.NoTypeID, a, b)

	x0 := w.Extract(tup, 0, tin.Builtins().Int)
	x1 := w.Extract(tup, 1, tin.Builtins().Bool)

	if w.Def(x0).Tuple != tup || w.Def(x0).AtElem != 0 {
		t.Fatalf("Extract 0 malformed: %+v", w.Def(x0))
	}
	if w.Def(x1).Tuple != tup || w.Def(x1).AtElem != 1 {
		t.Fatalf("Extract 1 malformed: %+v", w.Def(x1))
	}
}

func TestBranchNodeShape(t *testing.T) {
	tin := types.NewInterner()
	w := NewWorld(tin)
	cond := w.LitBool(false)
	tLam := w.Lam(types.NoTypeID)
	fLam := w.Lam(types.NoTypeID)
	br := w.Branch(cond, tLam, fLam)

	d := w.Def(br)
	if d.Kind != DefBranch || d.Cond != cond || d.True != tLam || d.False != fLam {
		t.Fatalf("Branch malformed: %+v", d)
	}
}

func TestDefsIncludesNoDefIDPlaceholder(t *testing.T) {
	tin := types.NewInterner()
	w := NewWorld(tin)
	w.Lam(types.NoTypeID)

	defs := w.Defs()
	if len(defs) != w.Len() {
		t.Fatalf("Defs() len = %d, Len() = %d", len(defs), w.Len())
	}
	if defs[0].Kind != DefInvalid {
		t.Fatalf("defs[0] = %+v, want the zero-value NoDefID placeholder", defs[0])
	}
}
