package query

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/statements"
)

// GetTables returns the tables stmt reads or changes, in order of
// appearance and without duplicates. Names are qualified with the database
// when the statement qualifies them.
func GetTables(stmt statements.Statement) []string {
	var exprs []*components.Expression

	switch s := stmt.(type) {
	case *statements.SelectStatement:
		exprs = selectTables(s)
	case *statements.InsertStatement:
		if s.Into != nil {
			exprs = append(exprs, s.Into.Dest)
		}
		if s.Select != nil {
			exprs = append(exprs, selectTables(s.Select)...)
		}
	case *statements.UpdateStatement:
		exprs = append(exprs, s.Tables...)
		exprs = append(exprs, joinTables(s.Joins)...)
	case *statements.DeleteStatement:
		exprs = append(exprs, s.From...)
		exprs = append(exprs, s.Using...)
		exprs = append(exprs, joinTables(s.Joins)...)
	case *statements.CreateStatement:
		if s.Object() == "TABLE" || s.Object() == "VIEW" {
			exprs = append(exprs, s.Name, s.Like)
			if s.Select != nil {
				exprs = append(exprs, selectTables(s.Select)...)
			}
		}
		exprs = append(exprs, s.Table)
	case *statements.AlterStatement:
		if s.Object() == "TABLE" || s.Object() == "VIEW" {
			exprs = append(exprs, s.Table)
		}
	case *statements.DropStatement:
		switch s.Object() {
		case "TABLE", "TABLES", "VIEW":
			exprs = append(exprs, s.Fields...)
		}
		exprs = append(exprs, s.Table)
	case *statements.RenameStatement:
		for _, r := range s.Renames {
			exprs = append(exprs, r.Old, r.New)
		}
	case *statements.TruncateStatement:
		exprs = append(exprs, s.Table)
	case *statements.MaintenanceStatement:
		exprs = append(exprs, s.Tables...)
	case *statements.ExplainStatement:
		if s.Statement != nil {
			return GetTables(s.Statement)
		}
		exprs = append(exprs, s.Table)
	}

	var ret []string
	seen := map[string]bool{}
	for _, e := range exprs {
		name := tableName(e)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		ret = append(ret, name)
	}
	return ret
}

func selectTables(s *statements.SelectStatement) []*components.Expression {
	ret := s.Tables()
	for _, u := range s.Unions {
		ret = append(ret, u.Select.Tables()...)
	}
	return ret
}

func joinTables(joins []*components.JoinKeyword) []*components.Expression {
	ret := make([]*components.Expression, 0, len(joins))
	for _, j := range joins {
		ret = append(ret, j.Expr)
	}
	return ret
}

func tableName(e *components.Expression) string {
	if e == nil || e.Table == "" {
		return ""
	}
	if e.Database != "" {
		return e.Database + "." + e.Table
	}
	return e.Table
}
