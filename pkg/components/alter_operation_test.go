package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

func TestParseAlterOperations(t *testing.T) {
	list, c := lex(t, "ADD COLUMN c INT NOT NULL, DROP INDEX idx, ENGINE=InnoDB")
	ops := ParseAlterOperations(c, list, AlterTableOptions)
	require.Empty(t, c.Errors())
	require.Len(t, ops, 3)
	require.Equal(t, len(list.Tokens)-1, list.Idx)

	require.Equal(t, "ADD", ops[0].Verb())
	require.Equal(t, "COLUMN", ops[0].Object())
	require.Equal(t, "c", ops[0].Field.Column)
	require.Equal(t, "INT NOT NULL", ops[0].Rest())
	require.Equal(t, "ADD COLUMN c INT NOT NULL", ops[0].Build())

	require.Equal(t, "DROP INDEX idx", ops[1].Build())
	require.Equal(t, "ENGINE=InnoDB", ops[2].Build())
	require.Equal(t, "ADD COLUMN c INT NOT NULL, DROP INDEX idx, ENGINE=InnoDB", BuildAll(ops, ", "))

	def := ops[0].ColumnDefinition()
	require.NotNil(t, def)
	require.Equal(t, "c", def.Name)
	require.Equal(t, "INT", def.Type.Name)
	require.True(t, def.Options.Has("NOT NULL"))
	require.Nil(t, ops[1].ColumnDefinition())
}

func TestAlterOperationDefinitions(t *testing.T) {
	list, c := lex(t, "ADD UNIQUE KEY uk (a, b), CHANGE old_name new_name VARCHAR(10)")
	ops := ParseAlterOperations(c, list, AlterTableOptions)
	require.Empty(t, c.Errors())
	require.Len(t, ops, 2)

	key := ops[0].KeyDefinition()
	require.NotNil(t, key)
	require.NotNil(t, key.Key)
	require.Equal(t, "uk", key.Key.Name)
	require.Equal(t, []string{"a", "b"}, key.Key.Columns())

	col := ops[1].ColumnDefinition()
	require.NotNil(t, col)
	require.Equal(t, "old_name", ops[1].Field.Column)
	require.Equal(t, "new_name", col.Name)
	require.Equal(t, "VARCHAR(10)", col.Type.Build())
}

func TestAlterOperationPosition(t *testing.T) {
	list, c := lex(t, "ADD COLUMN c INT AFTER b, MODIFY d TEXT FIRST, DROP e")
	ops := ParseAlterOperations(c, list, AlterTableOptions)
	require.Empty(t, c.Errors())
	require.Len(t, ops, 3)

	first, after := ops[0].Position()
	require.False(t, first)
	require.Equal(t, "b", after)
	require.Equal(t, "INT", ops[0].ColumnDefinition().Type.Name)

	first, after = ops[1].Position()
	require.True(t, first)
	require.Empty(t, after)

	first, after = ops[2].Position()
	require.False(t, first)
	require.Empty(t, after)
}

func TestParseAlterDatabase(t *testing.T) {
	list, c := lex(t, "CHARACTER SET = utf8mb4 COLLATE utf8mb4_general_ci")
	ops := ParseAlterOperations(c, list, DatabaseOptions)
	require.Empty(t, c.Errors())
	require.Len(t, ops, 1)
	require.Equal(t, "CHARACTER SET=utf8mb4 COLLATE=utf8mb4_general_ci", ops[0].Build())
}

func TestParseRenameOperations(t *testing.T) {
	list, c := lex(t, "a TO b, db.c TO db.d")
	ops := ParseRenameOperations(c, list)
	require.Empty(t, c.Errors())
	require.Len(t, ops, 2)
	require.Equal(t, "db", ops[1].New.Database)
	require.Equal(t, "d", ops[1].New.Table)
	require.Equal(t, "a TO b, db.c TO db.d", BuildAll(ops, ", "))

	list, c = lex(t, "a b")
	ParseRenameOperations(c, list)
	require.Equal(t, []sqlerr.Code{sqlerr.MissingKeyword}, codes(c))

	list, c = lex(t, "a TO b,")
	ops = ParseRenameOperations(c, list)
	require.Len(t, ops, 1)
	require.Equal(t, []sqlerr.Code{sqlerr.UnexpectedEnd}, codes(c))
}
