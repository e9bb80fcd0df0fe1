package query

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/statements"
)

// ReplaceLimit sets the LIMIT of a SELECT to offset, rowCount, replacing any
// limit it had. A zero offset is omitted. For a UNION the limit is placed
// after the last query, where it applies to the whole result. The statement
// is changed in place and its new text is returned.
func ReplaceLimit(stmt statements.Statement, offset, rowCount int) (string, error) {
	s, ok := stmt.(*statements.SelectStatement)
	if !ok {
		return "", errors.Errorf("cannot set a limit on a %s statement", stmt.Keyword())
	}
	if offset < 0 || rowCount < 0 {
		return "", errors.Errorf("invalid limit %d, %d", offset, rowCount)
	}

	off := ""
	if offset > 0 {
		off = strconv.Itoa(offset)
	}
	limit := components.NewLimit(strconv.Itoa(rowCount), off)

	target := s
	if n := len(s.Unions); n > 0 {
		target = s.Unions[n-1].Select
	}
	target.Limit = limit
	return s.Build(), nil
}
