package irsnap

import (
	"bytes"
	"path/filepath"
	"testing"

	"articc/internal/cir"
	"articc/internal/types"
)

func buildWorld() *cir.World {
	tin := types.NewInterner()
	w := cir.NewWorld(tin)

	lam := w.Lam(tin.Builtins().Int)
	a := w.Lit(tin.Builtins().Int, 1)
	b := w.Lit(tin.Builtins().Int, 2)
	sum := w.Prim(cir.PrimAdd, tin.Builtins().Int, a, b)
	tup := w.Tuple(types.NoTypeID, sum, w.LitBool(true))
	ret := w.App(lam, tup, tin.Builtins().Nothing)
	w.SetBody(lam, ret)
	return w
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	w := buildWorld()

	data, err := Encode(w)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got.Len() != w.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), w.Len())
	}
	for i := 1; i < w.Len(); i++ {
		want := w.Def(cir.DefID(i))
		have := got.Def(cir.DefID(i))
		if want.Kind != have.Kind || want.Type != have.Type {
			t.Fatalf("def %d = %+v, want %+v", i, have, want)
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	w1 := buildWorld()
	w2 := buildWorld()

	d1, err := Encode(w1)
	if err != nil {
		t.Fatalf("Encode(w1) error = %v", err)
	}
	d2, err := Encode(w2)
	if err != nil {
		t.Fatalf("Encode(w2) error = %v", err)
	}

	if !bytes.Equal(d1, d2) {
		t.Fatal("Encode() over equivalent worlds produced different bytes")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	w := buildWorld()
	path := filepath.Join(t.TempDir(), "mod.ir")

	if err := Save(path, w); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Len() != w.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), w.Len())
	}
}

func TestDecodeRejectsTruncatedData(t *testing.T) {
	w := buildWorld()
	data, err := Encode(w)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	corrupt := append([]byte(nil), data...)
	if _, err := Decode(corrupt[:len(corrupt)/2]); err == nil {
		t.Fatal("Decode() on truncated data: want error, got nil")
	}
}
