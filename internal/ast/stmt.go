package ast

import "articc/internal/source"

type StmtKind uint8

const (
	StmtDecl StmtKind = iota // let/fn/struct/enum/type nested inside a block
	StmtExpr                 // a bare expression, evaluated for effect
)

type Stmt struct {
	Kind StmtKind
	Loc  source.Loc
	Decl DeclID
	Expr ExprID
}
