package symbols

import (
	"testing"

	"articc/internal/source"
)

func TestTable_InsertAndLookup(t *testing.T) {
	strings := source.NewInterner()
	table := NewTable(Hints{}, strings)

	file := table.FileRoot(1, source.Loc{File: 1})
	x := strings.Intern("x")

	sym := table.Symbols.New(&Symbol{Name: x, Kind: SymbolLet, Scope: file})
	if prev := table.Insert(file, x, sym); prev.IsValid() {
		t.Fatalf("expected no previous binding, got %v", prev)
	}

	got, scope, ok := table.Lookup(file, x)
	if !ok || got != sym || scope != file {
		t.Fatalf("Lookup() = %v, %v, %v; want %v, %v, true", got, scope, ok, sym, file)
	}
}

func TestTable_LookupWalksAncestors(t *testing.T) {
	strings := source.NewInterner()
	table := NewTable(Hints{}, strings)

	file := table.FileRoot(1, source.Loc{File: 1})
	inner := table.Push(ScopeBlock, file, ScopeOwner{}, source.Loc{File: 1})

	x := strings.Intern("x")
	sym := table.Symbols.New(&Symbol{Name: x, Kind: SymbolLet, Scope: file})
	table.Insert(file, x, sym)

	got, scope, ok := table.Lookup(inner, x)
	if !ok || got != sym || scope != file {
		t.Fatalf("Lookup() from inner scope = %v, %v, %v; want %v, %v, true", got, scope, ok, sym, file)
	}
}

func TestTable_InsertReportsRedeclaration(t *testing.T) {
	strings := source.NewInterner()
	table := NewTable(Hints{}, strings)
	file := table.FileRoot(1, source.Loc{File: 1})

	x := strings.Intern("x")
	first := table.Symbols.New(&Symbol{Name: x, Kind: SymbolLet, Scope: file})
	table.Insert(file, x, first)

	second := table.Symbols.New(&Symbol{Name: x, Kind: SymbolLet, Scope: file})
	prev := table.Insert(file, x, second)
	if prev != first {
		t.Fatalf("Insert() prev = %v, want %v", prev, first)
	}
}

func TestTable_UnusedSkipsTopLevelAndUnderscore(t *testing.T) {
	strings := source.NewInterner()
	table := NewTable(Hints{}, strings)

	file := table.FileRoot(1, source.Loc{File: 1})
	block := table.Push(ScopeBlock, file, ScopeOwner{}, source.Loc{File: 1})

	unused := strings.Intern("y")
	sym := table.Symbols.New(&Symbol{Name: unused, Kind: SymbolLet, Scope: block})
	table.Insert(block, unused, sym)

	anon := strings.Intern("_z")
	anonSym := table.Symbols.New(&Symbol{Name: anon, Kind: SymbolLet, Scope: block})
	table.Insert(block, anon, anonSym)

	got := table.Unused(block)
	if len(got) != 1 || got[0] != sym {
		t.Fatalf("Unused() = %v, want [%v]", got, sym)
	}

	// Top-level bindings never count as unused.
	top := strings.Intern("top")
	topSym := table.Symbols.New(&Symbol{Name: top, Kind: SymbolLet, Scope: file})
	table.Insert(file, top, topSym)
	if got := table.Unused(file); got != nil {
		t.Fatalf("Unused(file) = %v, want nil", got)
	}
}

func TestTable_FindSimilar(t *testing.T) {
	strings := source.NewInterner()
	table := NewTable(Hints{}, strings)
	file := table.FileRoot(1, source.Loc{File: 1})

	counter := strings.Intern("counter")
	sym := table.Symbols.New(&Symbol{Name: counter, Kind: SymbolLet, Scope: file})
	table.Insert(file, counter, sym)

	if got := table.FindSimilar(file, "countr"); got != "counter" {
		t.Errorf("FindSimilar() = %q, want %q", got, "counter")
	}
	if got := table.FindSimilar(file, "totallyunrelated"); got != "" {
		t.Errorf("FindSimilar() = %q, want \"\"", got)
	}
}
