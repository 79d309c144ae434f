package diag

import (
	"fmt"
)

// Code identifies the kind of a Diagnostic. Codes are grouped into numeric
// namespaces by pipeline phase so the prefix alone tells a reader which pass
// produced the diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// Name binding (internal/binder), 1000-1999.
	BndInfo                 Code = 1000
	BndUnresolvedIdentifier  Code = 1001 // path does not resolve in any enclosing scope
	BndRedeclaration         Code = 1002 // identifier already bound in the same scope
	BndShadow                Code = 1003 // identifier shadows a binding from an outer scope (warning)
	BndUnusedIdentifier      Code = 1004 // let/param bound but never read (warning)
	BndInvalidBreak          Code = 1005 // break outside an enclosing loop
	BndInvalidContinue       Code = 1006 // continue outside an enclosing loop
	BndInvalidReturn         Code = 1007 // return outside an enclosing function
	BndAmbiguousEnumPath     Code = 1008 // enum option path has the wrong depth
	BndModuleMemberNotFound  Code = 1009 // path segment not found inside a module
	BndModuleMemberNotPublic Code = 1010 // path segment refers to a private member

	// Type checking (internal/check), 2000-2999.
	TypInfo                Code = 2000
	TypMismatch            Code = 2001 // inferred/checked type disagrees with the expected type
	TypCannotInfer         Code = 2002 // no expected type and nothing to infer from
	TypRecursiveInference  Code = 2003 // inference revisited a declaration still being typed
	TypUnreachableCode     Code = 2004 // statement follows a no_ret expression (warning)
	TypMissingField        Code = 2005 // struct literal omits a required field
	TypDuplicateField      Code = 2006 // struct literal repeats a field
	TypUnknownField        Code = 2007 // struct literal or projection names a field the struct doesn't have
	TypNonMutableAssignment Code = 2008 // assignment target is not declared mutable
	TypBadTypeArguments    Code = 2009 // type application arity mismatch
	TypIndexNotInteger     Code = 2010 // tuple/array index is not an integer constant
	TypStructExpected      Code = 2011 // field projection on a non-struct type
	TypFnExpected          Code = 2012 // call target is not a function type
	TypArrayExpected       Code = 2013 // indexing/iterating a non-array, non-range type
	TypCannotCall          Code = 2014 // call argument count disagrees with the function's arity

	// I/O, 4000-4999.
	IOLoadFileError Code = 4001

	// Project / manifest (internal/project), 5000-5999.
	ProjInfo              Code = 5000
	ProjMissingManifest   Code = 5001 // no artic.toml found walking up from the root
	ProjInvalidManifest   Code = 5002 // artic.toml failed to parse or is missing required fields
	ProjDuplicateModule   Code = 5003 // two source files claim the same module path
	ProjMissingModule     Code = 5004 // imported module path does not exist in the project
	ProjImportCycle       Code = 5005 // module import graph has a cycle

	// Observability, 6000-6999.
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	BndInfo:                  "Name binding information",
	BndUnresolvedIdentifier:  "Unresolved identifier",
	BndRedeclaration:         "Identifier already declared in this scope",
	BndShadow:                "Identifier shadows an outer binding",
	BndUnusedIdentifier:      "Identifier is never used",
	BndInvalidBreak:          "'break' outside a loop",
	BndInvalidContinue:       "'continue' outside a loop",
	BndInvalidReturn:         "'return' outside a function",
	BndAmbiguousEnumPath:     "Enum option path has the wrong number of segments",
	BndModuleMemberNotFound:  "Module member not found",
	BndModuleMemberNotPublic: "Module member is not public",
	TypInfo:                  "Type checking information",
	TypMismatch:              "Type mismatch",
	TypCannotInfer:           "Cannot infer type",
	TypRecursiveInference:    "Recursive type inference",
	TypUnreachableCode:       "Unreachable code",
	TypMissingField:          "Missing field in record expression",
	TypDuplicateField:        "Duplicate field in record expression",
	TypUnknownField:          "Unknown field",
	TypNonMutableAssignment:  "Assignment to a non-mutable binding",
	TypBadTypeArguments:      "Wrong number of type arguments",
	TypIndexNotInteger:       "Index must be an integer",
	TypStructExpected:        "Struct type expected",
	TypFnExpected:            "Function type expected",
	TypArrayExpected:         "Array type expected",
	TypCannotCall:            "Wrong number of call arguments",
	IOLoadFileError:          "I/O load file error",
	ProjInfo:                 "Project information",
	ProjMissingManifest:      "Missing project manifest",
	ProjInvalidManifest:      "Invalid project manifest",
	ProjDuplicateModule:      "Duplicate module definition",
	ProjMissingModule:        "Missing module",
	ProjImportCycle:          "Import cycle detected",
	ObsInfo:                  "Observability information",
	ObsTimings:               "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BND%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
