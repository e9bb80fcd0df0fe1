// Package catalog tracks the schema a script builds. Walking CREATE, ALTER,
// DROP and RENAME statements through a DatabaseState yields the tables,
// columns, indexes and foreign keys that exist once the script has run, or a
// WalkThroughError for the first statement that cannot apply.
package catalog

import (
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/parser"
	"github.com/nsxbet/sql-parser/pkg/statements"
	"github.com/nsxbet/sql-parser/pkg/types"
)

// FinderContext is the context for finder.
type FinderContext struct {
	// CheckIntegrity defines the policy for integrity checking. When unset,
	// references to unknown tables and columns create them on the fly.
	CheckIntegrity bool

	// IgnoreCaseSensitive makes database and table names compare case
	// insensitively. Column and index names always do.
	IgnoreCaseSensitive bool
}

// Copy returns the deep copy.
func (ctx *FinderContext) Copy() *FinderContext {
	if ctx == nil {
		return &FinderContext{}
	}
	return &FinderContext{
		CheckIntegrity:      ctx.CheckIntegrity,
		IgnoreCaseSensitive: ctx.IgnoreCaseSensitive,
	}
}

// Finder is the service for finding schema information in database.
type Finder struct {
	// Origin is the state before the walk and Final the state after it.
	Origin *DatabaseState
	Final  *DatabaseState
}

// NewFinder creates a finder for the empty database named database.
func NewFinder(database string, ctx *FinderContext) *Finder {
	return &Finder{Origin: newDatabaseState(database, ctx), Final: newDatabaseState(database, ctx)}
}

// NewEmptyFinder creates a finder with an unnamed empty database.
func NewEmptyFinder(ctx *FinderContext) *Finder {
	return NewFinder("", ctx)
}

// Seed applies stmts to both the origin and the final state. It loads the
// existing schema before the statements under review are walked.
func (f *Finder) Seed(stmts []statements.Statement) error {
	if err := f.Origin.WalkThrough(stmts); err != nil {
		return err
	}
	return f.Final.WalkThrough(stmts)
}

// WalkThrough applies stmts to the final state.
func (f *Finder) WalkThrough(stmts []statements.Statement) error {
	return f.Final.WalkThrough(stmts)
}

// WalkThroughResult applies the statements of a parse to the final state.
// The error reports the line its statement starts on.
func (f *Finder) WalkThroughResult(result *parser.Result) error {
	return f.Final.walkThrough(result.Statements, lineLocator(result.Tokens))
}

// lineLocator maps a statement to the 1-based line of its first token.
func lineLocator(list *lexer.List) func(statements.Statement) int {
	if list == nil {
		return nil
	}
	index := types.NewLineIndex(lexer.Build(list.Tokens))
	return func(stmt statements.Statement) int {
		first, _ := stmt.Bounds()
		if first < 0 || first >= len(list.Tokens) {
			return 0
		}
		return int(index.Position(list.Tokens[first].Position).Line)
	}
}
