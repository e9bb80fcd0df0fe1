// Package query answers questions about parsed statements and rewrites
// them: what kind of query a statement is, which tables it touches, how to
// add a LIMIT, and how to drop comments from SQL text.
package query

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/statements"
)

// Type is the kind of a statement.
type Type string

// Statement kinds.
const (
	TypeAlter       Type = "ALTER"
	TypeCall        Type = "CALL"
	TypeCreate      Type = "CREATE"
	TypeDelete      Type = "DELETE"
	TypeDrop        Type = "DROP"
	TypeExplain     Type = "EXPLAIN"
	TypeInsert      Type = "INSERT"
	TypeMaintenance Type = "MAINTENANCE"
	TypeRename      Type = "RENAME"
	TypeReplace     Type = "REPLACE"
	TypeSelect      Type = "SELECT"
	TypeSet         Type = "SET"
	TypeShow        Type = "SHOW"
	TypeTransaction Type = "TRANSACTION"
	TypeTruncate    Type = "TRUNCATE"
	TypeUpdate      Type = "UPDATE"
	TypeUse         Type = "USE"
	TypeUnknown     Type = "UNKNOWN"
)

// Flags describe a statement at a glance. Clients use them to decide how to
// present the statement and its result.
type Flags struct {
	QueryType Type `json:"query_type" yaml:"query_type"`

	// IsAffected is set for statements that report affected rows.
	IsAffected  bool `json:"is_affected,omitempty" yaml:"is_affected,omitempty"`
	IsSelect    bool `json:"is_select,omitempty" yaml:"is_select,omitempty"`
	IsInsert    bool `json:"is_insert,omitempty" yaml:"is_insert,omitempty"`
	IsReplace   bool `json:"is_replace,omitempty" yaml:"is_replace,omitempty"`
	IsDelete    bool `json:"is_delete,omitempty" yaml:"is_delete,omitempty"`
	IsExplain   bool `json:"is_explain,omitempty" yaml:"is_explain,omitempty"`
	IsShow      bool `json:"is_show,omitempty" yaml:"is_show,omitempty"`
	IsMaint     bool `json:"is_maint,omitempty" yaml:"is_maint,omitempty"`
	IsProcedure bool `json:"is_procedure,omitempty" yaml:"is_procedure,omitempty"`

	// IsCount is set for a SELECT whose only column is COUNT(...).
	IsCount bool `json:"is_count,omitempty" yaml:"is_count,omitempty"`
	// IsExport is set for SELECT ... INTO OUTFILE or DUMPFILE.
	IsExport   bool `json:"is_export,omitempty" yaml:"is_export,omitempty"`
	IsFunc     bool `json:"is_func,omitempty" yaml:"is_func,omitempty"`
	IsGroup    bool `json:"is_group,omitempty" yaml:"is_group,omitempty"`
	IsSubquery bool `json:"is_subquery,omitempty" yaml:"is_subquery,omitempty"`

	Distinct bool `json:"distinct,omitempty" yaml:"distinct,omitempty"`
	Having   bool `json:"having,omitempty" yaml:"having,omitempty"`
	Join     bool `json:"join,omitempty" yaml:"join,omitempty"`
	Limit    bool `json:"limit,omitempty" yaml:"limit,omitempty"`
	Offset   bool `json:"offset,omitempty" yaml:"offset,omitempty"`
	Order    bool `json:"order,omitempty" yaml:"order,omitempty"`
	Union    bool `json:"union,omitempty" yaml:"union,omitempty"`

	// DropDatabase is set for DROP DATABASE and DROP SCHEMA.
	DropDatabase bool `json:"drop_database,omitempty" yaml:"drop_database,omitempty"`
	// Reload is set when the statement changes the schema or the default
	// database, so cached structure must be refreshed.
	Reload bool `json:"reload,omitempty" yaml:"reload,omitempty"`
}

// aggregates are the functions that make a SELECT return grouped rows.
var aggregates = map[string]bool{
	"AVG": true, "BIT_AND": true, "BIT_OR": true, "BIT_XOR": true, "COUNT": true,
	"GROUP_CONCAT": true, "JSON_ARRAYAGG": true, "JSON_OBJECTAGG": true, "MAX": true,
	"MIN": true, "STD": true, "STDDEV": true, "STDDEV_POP": true, "STDDEV_SAMP": true,
	"SUM": true, "VAR_POP": true, "VAR_SAMP": true, "VARIANCE": true,
}

// GetFlags computes the flags of stmt.
func GetFlags(stmt statements.Statement) *Flags {
	f := &Flags{QueryType: TypeUnknown}

	switch s := stmt.(type) {
	case *statements.SelectStatement:
		f.QueryType = TypeSelect
		f.IsSelect = true
		selectFlags(f, s)

	case *statements.InsertStatement:
		f.IsAffected = true
		if s.Kind == "REPLACE" {
			f.QueryType, f.IsReplace = TypeReplace, true
		} else {
			f.QueryType, f.IsInsert = TypeInsert, true
		}
		if s.Select != nil {
			f.IsSubquery = true
		}

	case *statements.UpdateStatement:
		f.QueryType = TypeUpdate
		f.IsAffected = true
		f.Join = len(s.Joins) > 0 || len(s.Tables) > 1
		f.Order = len(s.Order) > 0
		f.Limit = s.Limit != nil
		f.IsSubquery = hasSubquery(s.Where)

	case *statements.DeleteStatement:
		f.QueryType = TypeDelete
		f.IsAffected, f.IsDelete = true, true
		f.Join = len(s.Joins) > 0 || len(s.From) > 1
		f.Order = len(s.Order) > 0
		f.Limit = s.Limit != nil
		f.IsSubquery = hasSubquery(s.Where)

	case *statements.CreateStatement:
		f.QueryType = TypeCreate
		f.Reload = true
		f.IsProcedure = s.Object() == "PROCEDURE" || s.Object() == "FUNCTION"

	case *statements.AlterStatement:
		f.QueryType = TypeAlter
		f.Reload = true

	case *statements.DropStatement:
		f.QueryType = TypeDrop
		f.Reload = true
		object := s.Object()
		f.DropDatabase = object == "DATABASE" || object == "SCHEMA"

	case *statements.RenameStatement:
		f.QueryType = TypeRename
		f.Reload = true

	case *statements.TruncateStatement:
		f.QueryType = TypeTruncate
		f.IsAffected = true

	case *statements.CallStatement:
		f.QueryType = TypeCall
		f.IsProcedure = true

	case *statements.ExplainStatement:
		f.QueryType = TypeExplain
		f.IsExplain = true

	case *statements.ShowStatement:
		f.QueryType = TypeShow
		f.IsShow = true

	case *statements.MaintenanceStatement:
		f.QueryType = TypeMaintenance
		f.IsMaint = true

	case *statements.SetStatement:
		f.QueryType = TypeSet

	case *statements.UseStatement:
		f.QueryType = TypeUse
		f.Reload = true

	case *statements.TransactionStatement:
		f.QueryType = TypeTransaction
	}
	return f
}

func selectFlags(f *Flags, s *statements.SelectStatement) {
	f.Distinct = s.Options.Has("DISTINCT") || s.Options.Has("DISTINCTROW")
	f.IsExport = s.Into != nil && s.Into.Type != ""
	f.Join = len(s.Joins) > 0 || len(s.From) > 1
	f.Having = len(s.Having) > 0
	f.IsGroup = len(s.Group) > 0 || f.Having
	f.Order = len(s.Order) > 0
	f.Union = len(s.Unions) > 0
	if s.Limit != nil {
		f.Limit = true
		f.Offset = s.Limit.Offset != ""
	}

	for _, e := range s.Exprs {
		if e.Subquery != "" {
			f.IsSubquery = true
		}
		if e.Function == "" {
			continue
		}
		f.IsFunc = true
		if aggregates[strings.ToUpper(e.Function)] {
			f.IsGroup = true
		}
	}
	for _, e := range s.From {
		if e.Subquery != "" {
			f.IsSubquery = true
		}
	}
	if hasSubquery(s.Where) || hasSubquery(s.Having) {
		f.IsSubquery = true
	}

	if len(s.Exprs) == 1 && len(s.Group) == 0 && !f.Union &&
		strings.EqualFold(s.Exprs[0].Function, "COUNT") {
		f.IsCount = true
	}
}

// hasSubquery reports whether a condition list nests a statement.
func hasSubquery(conds []*components.Condition) bool {
	for _, cond := range conds {
		if cond.IsOperator {
			continue
		}
		upper := strings.ToUpper(cond.Expr)
		if strings.Contains(upper, "(SELECT ") || strings.Contains(upper, "( SELECT ") {
			return true
		}
	}
	return false
}

// Detect returns the type of the first statement of sql without collecting
// diagnostics.
func Detect(sql string) (Type, error) {
	list, err := lexer.Lex(sql)
	if err != nil {
		return TypeUnknown, err
	}
	for ; list.Idx < list.Count; list.Idx++ {
		if tok := list.Tokens[list.Idx]; tok.IsSignificant() && tok.Type != lexer.TypeDelimiter {
			break
		}
	}
	stmt := statements.Parse(nil, list)
	if stmt == nil {
		return TypeUnknown, nil
	}
	return GetFlags(stmt).QueryType, nil
}
