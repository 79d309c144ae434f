package source

import "fmt"

// Pos is a 1-based (row, col) position inside a source file.
type Pos struct {
	Row, Col uint32
}

// Loc is a source location: a file handle plus a begin/end position pair.
// Locations form a semilattice under Union over the same file and are
// immutable value types, freely copied.
type Loc struct {
	File  FileID
	Begin Pos
	End   Pos
}

// NewLoc builds a zero-width location at pos.
func NewLoc(file FileID, pos Pos) Loc {
	return Loc{File: file, Begin: pos, End: pos}
}

// Union returns the smallest location covering both first and last, taking
// first's Begin and last's End. Both must belong to the same file.
func Union(first, last Loc) Loc {
	return Loc{File: first.File, Begin: first.Begin, End: last.End}
}

// AtBegin returns a location starting at l's Begin and ending at end.
func (l Loc) AtBegin(end Pos) Loc { return Loc{File: l.File, Begin: l.Begin, End: end} }

// AtEnd returns a location starting at begin and ending at l's End.
func (l Loc) AtEnd(begin Pos) Loc { return Loc{File: l.File, Begin: begin, End: l.End} }

// EnlargeAfter extends the location's end by cols columns on the same row.
func (l Loc) EnlargeAfter(cols uint32) Loc {
	return l.AtBegin(Pos{Row: l.End.Row, Col: l.End.Col + cols})
}

// EnlargeBefore pulls the location's begin back by cols columns on the same row.
func (l Loc) EnlargeBefore(cols uint32) Loc {
	return l.AtEnd(Pos{Row: l.Begin.Row, Col: l.Begin.Col - cols})
}

func (l Loc) String() string {
	if l.Begin == l.End {
		return fmt.Sprintf("%d(%d, %d)", l.File, l.Begin.Row, l.Begin.Col)
	}
	return fmt.Sprintf("%d(%d, %d - %d, %d)", l.File, l.Begin.Row, l.Begin.Col, l.End.Row, l.End.Col)
}

// ToSpan converts the location to a byte-offset Span using the given FileSet,
// for collaborators (such as the binder and checker, whose diagnostics carry
// Spans) that need byte offsets.
func (l Loc) ToSpan(fs *FileSet) Span {
	f := fs.Get(l.File)
	return Span{
		File:  l.File,
		Start: offsetOf(f, l.Begin),
		End:   offsetOf(f, l.End),
	}
}

func offsetOf(f *File, pos Pos) uint32 {
	if f == nil || pos.Row == 0 {
		return 0
	}
	var lineStart uint32
	if pos.Row > 1 && int(pos.Row-2) < len(f.LineIdx) {
		lineStart = f.LineIdx[pos.Row-2] + 1
	}
	return lineStart + pos.Col - 1
}
