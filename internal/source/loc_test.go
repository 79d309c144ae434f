package source

import "testing"

func TestUnion(t *testing.T) {
	a := Loc{File: 1, Begin: Pos{1, 1}, End: Pos{1, 5}}
	b := Loc{File: 1, Begin: Pos{2, 1}, End: Pos{3, 10}}
	got := Union(a, b)
	want := Loc{File: 1, Begin: Pos{1, 1}, End: Pos{3, 10}}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestLoc_EnlargeAfter(t *testing.T) {
	l := Loc{File: 1, Begin: Pos{1, 1}, End: Pos{1, 5}}
	got := l.EnlargeAfter(2)
	want := Loc{File: 1, Begin: Pos{1, 1}, End: Pos{1, 7}}
	if got != want {
		t.Errorf("EnlargeAfter() = %+v, want %+v", got, want)
	}
}

func TestLoc_EnlargeBefore(t *testing.T) {
	l := Loc{File: 1, Begin: Pos{1, 5}, End: Pos{1, 10}}
	got := l.EnlargeBefore(2)
	want := Loc{File: 1, Begin: Pos{1, 3}, End: Pos{1, 10}}
	if got != want {
		t.Errorf("EnlargeBefore() = %+v, want %+v", got, want)
	}
}

func TestLoc_String(t *testing.T) {
	point := NewLoc(1, Pos{4, 2})
	if got, want := point.String(), "1(4, 2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	rng := Loc{File: 1, Begin: Pos{4, 2}, End: Pos{5, 9}}
	if got, want := rng.String(), "1(4, 2 - 5, 9)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
