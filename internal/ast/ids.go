package ast

// Typed handles into the arenas owned by a Module. Every node is addressed
// by a small integer handle rather than a pointer so the tree can be walked,
// hashed, and serialized without worrying about aliasing.
type (
	FileID uint32
	DeclID uint32
	StmtID uint32
	ExprID uint32
	TypeID uint32
	PtrnID uint32
	// sub-lists threaded through a parent node
	ParamID     uint32
	FieldID     uint32
	OptionID    uint32
	TypeParamID uint32
	CaseID      uint32
)

const (
	NoFileID      FileID      = 0
	NoDeclID      DeclID      = 0
	NoStmtID      StmtID      = 0
	NoExprID      ExprID      = 0
	NoTypeID      TypeID      = 0
	NoPtrnID      PtrnID      = 0
	NoParamID     ParamID     = 0
	NoFieldID     FieldID     = 0
	NoOptionID    OptionID    = 0
	NoTypeParamID TypeParamID = 0
	NoCaseID      CaseID      = 0
)

func (id FileID) IsValid() bool      { return id != NoFileID }
func (id DeclID) IsValid() bool      { return id != NoDeclID }
func (id StmtID) IsValid() bool      { return id != NoStmtID }
func (id ExprID) IsValid() bool      { return id != NoExprID }
func (id TypeID) IsValid() bool      { return id != NoTypeID }
func (id PtrnID) IsValid() bool      { return id != NoPtrnID }
func (id ParamID) IsValid() bool     { return id != NoParamID }
func (id FieldID) IsValid() bool     { return id != NoFieldID }
func (id OptionID) IsValid() bool    { return id != NoOptionID }
func (id TypeParamID) IsValid() bool { return id != NoTypeParamID }
func (id CaseID) IsValid() bool      { return id != NoCaseID }
