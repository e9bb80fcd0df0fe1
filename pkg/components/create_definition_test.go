package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		sql   string
		name  string
		build string
	}{
		{"VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin", "VARCHAR", "VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"},
		{"int(10) unsigned zerofill", "INT", "INT(10) UNSIGNED ZEROFILL"},
		{"ENUM('a','b')", "ENUM", "ENUM('a','b')"},
		{"DECIMAL(10, 2)", "DECIMAL", "DECIMAL(10,2)"},
		{"DOUBLE PRECISION", "DOUBLE PRECISION", "DOUBLE PRECISION"},
	}
	for _, tc := range tests {
		t.Run(tc.sql, func(t *testing.T) {
			list, c := lex(t, tc.sql)
			dt := ParseDataType(c, list)
			require.NotNil(t, dt)
			require.Empty(t, c.Errors())
			assert.Equal(t, tc.name, dt.Name)
			assert.Equal(t, tc.build, dt.Build())
		})
	}

	list, c := lex(t, "foo")
	require.Nil(t, ParseDataType(c, list))
	require.Equal(t, []sqlerr.Code{sqlerr.UnexpectedToken}, codes(c))
	require.Equal(t, -1, list.Idx)
}

func TestParseKey(t *testing.T) {
	list, c := lex(t, "PRIMARY KEY (id)")
	key := ParseKey(c, list)
	require.Empty(t, c.Errors())
	require.True(t, key.IsPrimary())
	require.True(t, key.IsUnique())
	require.Equal(t, []string{"id"}, key.Columns())
	require.Equal(t, "PRIMARY KEY (id)", key.Build())

	list, c = lex(t, "UNIQUE KEY uk_name (a(10), b DESC) USING BTREE COMMENT 'c'")
	key = ParseKey(c, list)
	require.Empty(t, c.Errors())
	require.Equal(t, "UNIQUE KEY", key.Type)
	require.Equal(t, "uk_name", key.Name)
	require.Len(t, key.Parts, 2)
	require.Equal(t, "10", key.Parts[0].Length)
	require.Equal(t, "DESC", key.Parts[1].Order)
	require.Equal(t, "UNIQUE KEY uk_name (a(10), b DESC) USING BTREE COMMENT 'c'", key.Build())

	list, c = lex(t, "INDEX idx ((a + b))")
	key = ParseKey(c, list)
	require.Empty(t, c.Errors())
	require.Equal(t, "(a + b)", key.Parts[0].Expr)
	require.Empty(t, key.Columns())
	require.Equal(t, "INDEX idx ((a + b))", key.Build())
}

func TestParseReference(t *testing.T) {
	list, c := lex(t, "parent (id) ON DELETE CASCADE ON UPDATE SET NULL")
	ref := ParseReference(c, list)
	require.Empty(t, c.Errors())
	require.Equal(t, "parent", ref.Table.Table)
	require.Equal(t, []string{"id"}, ref.Columns)
	v, _ := ref.Options.Value("ON UPDATE")
	require.Equal(t, "SET NULL", v)
	require.Equal(t, "parent (id) ON DELETE CASCADE ON UPDATE SET NULL", ref.Build())
}

const createBody = `(
  id INT UNSIGNED NOT NULL AUTO_INCREMENT,
  name VARCHAR(64) DEFAULT 'x' COMMENT 'the name',
  parent_id INT,
  PRIMARY KEY (id),
  KEY idx_name (name),
  CONSTRAINT fk_parent FOREIGN KEY (parent_id) REFERENCES parent (id) ON DELETE CASCADE
)`

func TestParseCreateDefinitions(t *testing.T) {
	list, c := lex(t, createBody)
	defs := ParseCreateDefinitions(c, list)
	require.Empty(t, c.Errors())
	require.Len(t, defs, 6)
	require.Equal(t, ")", list.Current().Value)

	want := []string{
		"id INT UNSIGNED NOT NULL AUTO_INCREMENT",
		"name VARCHAR(64) DEFAULT 'x' COMMENT 'the name'",
		"parent_id INT",
		"PRIMARY KEY (id)",
		"KEY idx_name (name)",
		"CONSTRAINT fk_parent FOREIGN KEY (parent_id) REFERENCES parent (id) ON DELETE CASCADE",
	}
	for i, def := range defs {
		assert.Equal(t, want[i], def.Build())
	}

	require.True(t, defs[0].IsColumn())
	require.True(t, defs[0].Options.Has("AUTO_INCREMENT"))
	require.False(t, defs[3].IsColumn())
	require.True(t, defs[5].IsConstraint)
	require.Equal(t, "fk_parent", defs[5].Name)
	require.NotNil(t, defs[5].References)

	// Rebuilding and parsing again gives the same text.
	built := BuildCreateDefinitions(defs)
	list, c = lex(t, built)
	again := ParseCreateDefinitions(c, list)
	require.Empty(t, c.Errors())
	require.Equal(t, built, BuildCreateDefinitions(again))
}

func TestParseCreateDefinitionsErrors(t *testing.T) {
	list, c := lex(t, "(id INT, 12 foo, name TEXT")
	defs := ParseCreateDefinitions(c, list)
	// The missing bracket is reported at the opening one, so it sorts first.
	require.Equal(t, []sqlerr.Code{sqlerr.UnexpectedEnd, sqlerr.ExpectedIdentifier}, codes(c))
	require.Len(t, defs, 2)
	require.Equal(t, "name", defs[1].Name)

	list, c = lex(t, "id INT")
	require.Nil(t, ParseCreateDefinitions(c, list))
	require.Equal(t, []sqlerr.Code{sqlerr.UnexpectedToken}, codes(c))
}
