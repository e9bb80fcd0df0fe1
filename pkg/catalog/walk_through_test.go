package catalog

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-parser/pkg/parser"
)

type testCase struct {
	Statement           string                 `yaml:"statement"`
	IgnoreCaseSensitive bool                   `yaml:"ignore_case_sensitive"`
	SkipIntegrity       bool                   `yaml:"skip_integrity"`
	Want                []tableSnapshot        `yaml:"want"`
	Err                 *testCaseErrorMetadata `yaml:"err"`
}

type testCaseErrorMetadata struct {
	Type    int    `yaml:"type"`
	Content string `yaml:"content"`
	Line    int    `yaml:"line"`
}

type tableSnapshot struct {
	Name        string             `yaml:"name"`
	Engine      string             `yaml:"engine,omitempty"`
	Collation   string             `yaml:"collation,omitempty"`
	Comment     string             `yaml:"comment,omitempty"`
	Columns     []columnSnapshot   `yaml:"columns,omitempty"`
	Indexes     []indexSnapshot    `yaml:"indexes,omitempty"`
	ForeignKeys []*ForeignKeyState `yaml:"foreign_keys,omitempty"`
}

type columnSnapshot struct {
	Name     string  `yaml:"name"`
	Position int     `yaml:"position"`
	Type     string  `yaml:"type"`
	Nullable bool    `yaml:"nullable,omitempty"`
	Default  *string `yaml:"default,omitempty"`
	Comment  string  `yaml:"comment,omitempty"`
}

type indexSnapshot struct {
	Name        string   `yaml:"name"`
	Expressions []string `yaml:"expressions"`
	Type        string   `yaml:"type"`
	Unique      bool     `yaml:"unique,omitempty"`
	Primary     bool     `yaml:"primary,omitempty"`
	Invisible   bool     `yaml:"invisible,omitempty"`
}

func TestWalkThrough(t *testing.T) {
	yamlData, err := os.ReadFile("testdata/walk_through.yaml")
	require.NoError(t, err)
	var testCases []testCase
	require.NoError(t, yaml.Unmarshal(yamlData, &testCases))

	p := parser.New()
	for _, tc := range testCases {
		t.Run(tc.Statement, func(t *testing.T) {
			finder := NewFinder("test", &FinderContext{
				CheckIntegrity:      !tc.SkipIntegrity,
				IgnoreCaseSensitive: tc.IgnoreCaseSensitive,
			})

			result, err := p.Parse(tc.Statement)
			require.NoError(t, err)
			require.Empty(t, result.Errors)

			walkErr := finder.WalkThroughResult(result)
			if tc.Err != nil {
				var walkThroughErr *WalkThroughError
				require.True(t, errors.As(walkErr, &walkThroughErr), "error should be a WalkThroughError: %v", walkErr)
				require.Equal(t, WalkThroughErrorType(tc.Err.Type), walkThroughErr.Type)
				require.Equal(t, tc.Err.Content, walkThroughErr.Content)
				if tc.Err.Line != 0 {
					require.Equal(t, tc.Err.Line, walkThroughErr.Line)
				}
				return
			}
			require.NoError(t, walkErr)
			require.Equal(t, tc.Want, snapshot(finder.Final))
		})
	}
}

func TestFinderSeed(t *testing.T) {
	p := parser.New()
	schema, err := p.Parse("CREATE TABLE users (id INT PRIMARY KEY, email VARCHAR(100));")
	require.NoError(t, err)
	change, err := p.Parse("ALTER TABLE users ADD COLUMN name VARCHAR(50) FIRST;\nDROP TABLE users;")
	require.NoError(t, err)

	finder := NewFinder("app", &FinderContext{CheckIntegrity: true})
	require.NoError(t, finder.Seed(schema.Statements))
	require.NoError(t, finder.WalkThrough(change.Statements[:1]))

	origin := finder.Origin.Table("users")
	require.NotNil(t, origin)
	require.Len(t, origin.Columns(), 2)

	final := finder.Final.Table("users")
	require.NotNil(t, final)
	columns := final.Columns()
	require.Len(t, columns, 3)
	require.Equal(t, "name", columns[0].Name())
	require.Equal(t, 3, final.Column("EMAIL").Position())
	require.Equal(t, []string{"id"}, final.PrimaryKey().Expressions())
	require.False(t, final.Column("id").Nullable())

	require.NoError(t, finder.WalkThrough(change.Statements[1:]))
	require.Nil(t, finder.Final.Table("users"))
	require.NotNil(t, finder.Origin.Table("users"))
}

func TestWalkThroughDatabaseOptions(t *testing.T) {
	result, err := parser.New().Parse("ALTER DATABASE test CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;")
	require.NoError(t, err)

	finder := NewFinder("test", &FinderContext{CheckIntegrity: true})
	require.NoError(t, finder.WalkThrough(result.Statements))
	require.Equal(t, "utf8mb4", finder.Final.CharacterSet())
	require.Equal(t, "utf8mb4_bin", finder.Final.Collation())
	require.Empty(t, finder.Origin.CharacterSet())
}

func TestWalkThroughWithoutPositions(t *testing.T) {
	result, err := parser.New().Parse("SELECT 1;\nDROP TABLE missing;")
	require.NoError(t, err)

	err = NewEmptyFinder(&FinderContext{CheckIntegrity: true}).WalkThrough(result.Statements)
	var walkThroughErr *WalkThroughError
	require.True(t, errors.As(err, &walkThroughErr))
	require.Equal(t, WalkThroughErrorType(ErrorTypeTableNotExists), walkThroughErr.Type)
	require.Zero(t, walkThroughErr.Line)
}

// snapshot flattens a database state for comparison with fixtures.
func snapshot(state *DatabaseState) []tableSnapshot {
	var tables []tableSnapshot
	for _, table := range state.Tables() {
		ts := tableSnapshot{
			Name:      table.Name(),
			Engine:    table.Engine(),
			Collation: table.Collation(),
			Comment:   table.Comment(),
		}
		for _, col := range table.Columns() {
			cs := columnSnapshot{
				Name:     col.Name(),
				Position: col.Position(),
				Type:     col.Type(),
				Nullable: col.Nullable(),
				Comment:  col.Comment(),
			}
			if value, ok := col.Default(); ok {
				cs.Default = &value
			}
			ts.Columns = append(ts.Columns, cs)
		}
		for _, idx := range table.Indexes() {
			ts.Indexes = append(ts.Indexes, indexSnapshot{
				Name:        idx.Name(),
				Expressions: idx.Expressions(),
				Type:        idx.Type(),
				Unique:      idx.Unique(),
				Primary:     idx.Primary(),
				Invisible:   !idx.Visible(),
			})
		}
		if fks := table.ForeignKeys(); len(fks) > 0 {
			ts.ForeignKeys = fks
		}
		tables = append(tables, ts)
	}
	return tables
}
