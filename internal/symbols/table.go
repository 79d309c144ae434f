package symbols

import (
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"

	"articc/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas for one compilation. It
// exposes the primitive scope/symbol operations; the binder drives them
// (push on entry, pop on exit, insert per declaration, find per path).
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner

	fileRoot map[source.FileID]ScopeID
}

// NewTable builds a fresh table with optional capacity hints. If strings is
// nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:   NewScopes(scopeCap),
		Symbols:  NewSymbols(symCap),
		Strings:  strings,
		fileRoot: make(map[source.FileID]ScopeID),
	}
}

// FileRoot returns (and creates if needed) the top-level scope for file.
// The file root is flagged TopLevel: names bound directly in it never
// trigger an unused-identifier warning, mirroring top-level declarations
// being implicitly exported from the compilation unit.
func (t *Table) FileRoot(file source.FileID, loc source.Loc) ScopeID {
	if scope, ok := t.fileRoot[file]; ok {
		return scope
	}
	id := t.Scopes.New(ScopeFile, NoScopeID, ScopeOwner{
		Kind:       ScopeOwnerFile,
		SourceFile: file,
	}, loc)
	t.Scopes.Get(id).TopLevel = true
	t.fileRoot[file] = id
	return id
}

// Push allocates a new scope nested under parent.
func (t *Table) Push(kind ScopeKind, parent ScopeID, owner ScopeOwner, loc source.Loc) ScopeID {
	return t.Scopes.New(kind, parent, owner, loc)
}

// Insert binds name to sym inside scope. It returns the symbol previously
// bound to the same name directly in scope (not an ancestor), if any, so
// the binder can decide between redeclaration-error and shadow-warning:
// a hit in the same scope is a redeclaration, a hit in an ancestor scope
// (found via Lookup) is a shadow.
func (t *Table) Insert(scope ScopeID, name source.StringID, sym SymbolID) (prev SymbolID) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbolID
	}
	existing := s.NameIndex[name]
	if len(existing) > 0 {
		prev = existing[len(existing)-1]
	}
	s.NameIndex[name] = append(existing, sym)
	s.Symbols = append(s.Symbols, sym)
	return prev
}

// Lookup searches scope and its ancestors for name, returning the nearest
// binding and the scope that owns it.
func (t *Table) Lookup(scope ScopeID, name source.StringID) (SymbolID, ScopeID, bool) {
	for cur := scope; cur.IsValid(); {
		s := t.Scopes.Get(cur)
		if s == nil {
			break
		}
		if ids := s.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1], cur, true
		}
		cur = s.Parent
	}
	return NoSymbolID, NoScopeID, false
}

// LookupLocal searches only scope itself, not its ancestors. Used to detect
// redeclaration within one scope.
func (t *Table) LookupLocal(scope ScopeID, name source.StringID) (SymbolID, bool) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbolID, false
	}
	ids := s.NameIndex[name]
	if len(ids) == 0 {
		return NoSymbolID, false
	}
	return ids[len(ids)-1], true
}

// Unused returns the symbols bound directly in scope that were never used,
// in declaration order, skipping TopLevel scopes and any name starting with
// '_' (the anonymous-binding convention).
func (t *Table) Unused(scope ScopeID) []SymbolID {
	s := t.Scopes.Get(scope)
	if s == nil || s.TopLevel {
		return nil
	}
	var out []SymbolID
	for _, id := range s.Symbols {
		sym := t.Symbols.Get(id)
		if sym == nil || sym.Flags.Has(SymbolFlagUsed) || sym.Flags.Has(SymbolFlagBuiltin) {
			continue
		}
		switch sym.Kind {
		case SymbolField, SymbolOption, SymbolTypeParam:
			continue
		}
		name, _ := t.Strings.Lookup(sym.Name)
		if strings.HasPrefix(name, "_") {
			continue
		}
		out = append(out, id)
	}
	return out
}

// FindSimilar suggests the closest name bound anywhere in scope's ancestor
// chain to target, for "unresolved identifier, did you mean 'x'?"
// diagnostics. It returns "" if nothing is close enough.
func (t *Table) FindSimilar(scope ScopeID, target string) string {
	const maxDistance = 3
	best := ""
	bestDist := maxDistance + 1
	for cur := scope; cur.IsValid(); {
		s := t.Scopes.Get(cur)
		if s == nil {
			break
		}
		for _, id := range s.Symbols {
			sym := t.Symbols.Get(id)
			if sym == nil {
				continue
			}
			candidate, _ := t.Strings.Lookup(sym.Name)
			if candidate == "" || candidate == target {
				continue
			}
			d := levenshtein(target, candidate)
			if d < bestDist {
				bestDist = d
				best = candidate
			}
		}
		cur = s.Parent
	}
	if bestDist > maxDistance {
		return ""
	}
	return best
}

// levenshtein computes the edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = minInt(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Names returns every name directly bound in scope, sorted, for debugging
// and golden-file snapshots.
func (t *Table) Names(scope ScopeID) []string {
	s := t.Scopes.Get(scope)
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.NameIndex))
	for name := range s.NameIndex {
		str, _ := t.Strings.Lookup(name)
		out = append(out, str)
	}
	sort.Strings(out)
	return out
}
