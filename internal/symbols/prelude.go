package symbols

import "articc/internal/source"

// builtinTypeNames are the primitive type names available without an
// explicit declaration. They aren't inserted as symbols (TypeExprPrim
// resolves them structurally), but other packages need the canonical list
// to reject them as ordinary identifiers or decide whether a path segment
// is a builtin.
var builtinTypeNames = []string{"unit", "bool", "int", "float", "char", "string"}

// IsBuiltinTypeName reports whether name names a primitive type.
func IsBuiltinTypeName(strings *source.Interner, name source.StringID) bool {
	s, ok := strings.Lookup(name)
	if !ok {
		return false
	}
	for _, b := range builtinTypeNames {
		if b == s {
			return true
		}
	}
	return false
}
