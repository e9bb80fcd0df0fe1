package catalog

import (
	"sort"
	"strings"
)

// DatabaseState is the schema of one database as known after walking a
// script.
type DatabaseState struct {
	ctx          *FinderContext
	name         string
	deleted      bool
	characterSet string
	collation    string
	tableSet     map[string]*TableState
}

func newDatabaseState(name string, ctx *FinderContext) *DatabaseState {
	return &DatabaseState{
		ctx:      ctx.Copy(),
		name:     name,
		tableSet: make(map[string]*TableState),
	}
}

// Name returns the database name.
func (d *DatabaseState) Name() string { return d.name }

// Deleted reports whether the script dropped the database.
func (d *DatabaseState) Deleted() bool { return d.deleted }

// CharacterSet returns the default character set set by the script.
func (d *DatabaseState) CharacterSet() string { return d.characterSet }

// Collation returns the default collation set by the script.
func (d *DatabaseState) Collation() string { return d.collation }

// Table returns the table named name, or nil.
func (d *DatabaseState) Table(name string) *TableState {
	table, _ := d.getTable(name)
	return table
}

// Tables returns the tables ordered by name.
func (d *DatabaseState) Tables() []*TableState {
	ret := make([]*TableState, 0, len(d.tableSet))
	for _, table := range d.tableSet {
		ret = append(ret, table)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].name < ret[j].name })
	return ret
}

func (d *DatabaseState) tableKey(name string) string {
	if d.ctx.IgnoreCaseSensitive {
		return strings.ToLower(name)
	}
	return name
}

func (d *DatabaseState) getTable(name string) (*TableState, bool) {
	table, ok := d.tableSet[d.tableKey(name)]
	return table, ok
}

func (d *DatabaseState) putTable(table *TableState) {
	d.tableSet[d.tableKey(table.name)] = table
}

func (d *DatabaseState) deleteTable(name string) {
	delete(d.tableSet, d.tableKey(name))
}

// isCurrentDatabase reports whether database names this database.
func (d *DatabaseState) isCurrentDatabase(database string) bool {
	return compareIdentifier(d.name, database, d.ctx.IgnoreCaseSensitive)
}

// TableState is a table with its columns, indexes and foreign keys.
type TableState struct {
	name         string
	engine       string
	collation    string
	characterSet string
	comment      string
	columnSet    map[string]*ColumnState
	indexSet     map[string]*IndexState
	foreignKeys  []*ForeignKeyState
}

func newTableState(name string) *TableState {
	return &TableState{
		name:      name,
		columnSet: make(map[string]*ColumnState),
		indexSet:  make(map[string]*IndexState),
	}
}

func (t *TableState) Name() string         { return t.name }
func (t *TableState) Engine() string       { return t.engine }
func (t *TableState) Collation() string    { return t.collation }
func (t *TableState) CharacterSet() string { return t.characterSet }
func (t *TableState) Comment() string      { return t.comment }

// Column returns the column named name, or nil. Column names are case
// insensitive.
func (t *TableState) Column(name string) *ColumnState {
	return t.columnSet[strings.ToLower(name)]
}

// Columns returns the columns in table order.
func (t *TableState) Columns() []*ColumnState {
	ret := make([]*ColumnState, 0, len(t.columnSet))
	for _, col := range t.columnSet {
		ret = append(ret, col)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].position < ret[j].position })
	return ret
}

// Index returns the index named name, or nil. The primary key is named
// PRIMARY.
func (t *TableState) Index(name string) *IndexState {
	return t.indexSet[strings.ToLower(name)]
}

// PrimaryKey returns the primary key, or nil.
func (t *TableState) PrimaryKey() *IndexState {
	return t.Index(PrimaryKeyName)
}

// Indexes returns the indexes ordered by name.
func (t *TableState) Indexes() []*IndexState {
	ret := make([]*IndexState, 0, len(t.indexSet))
	for _, idx := range t.indexSet {
		ret = append(ret, idx)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].name < ret[j].name })
	return ret
}

// ForeignKeys returns the foreign keys in declaration order.
func (t *TableState) ForeignKeys() []*ForeignKeyState {
	return t.foreignKeys
}

func (t *TableState) foreignKey(name string) (int, *ForeignKeyState) {
	for i, fk := range t.foreignKeys {
		if strings.EqualFold(fk.Name, name) {
			return i, fk
		}
	}
	return -1, nil
}

func (t *TableState) copy() *TableState {
	ret := &TableState{
		name:         t.name,
		engine:       t.engine,
		collation:    t.collation,
		characterSet: t.characterSet,
		comment:      t.comment,
		columnSet:    make(map[string]*ColumnState, len(t.columnSet)),
		indexSet:     make(map[string]*IndexState, len(t.indexSet)),
	}
	for key, col := range t.columnSet {
		ret.columnSet[key] = col.copy()
	}
	for key, idx := range t.indexSet {
		ret.indexSet[key] = idx.copy()
	}
	// Foreign keys are not copied by CREATE TABLE ... LIKE.
	return ret
}

// ColumnState is a column of a table.
type ColumnState struct {
	name          string
	position      int
	columnType    string
	nullable      bool
	defaultValue  *string
	characterSet  string
	collation     string
	comment       string
	autoIncrement bool
}

func (c *ColumnState) Name() string { return c.name }

// Position is the 1-based position of the column in the table.
func (c *ColumnState) Position() int { return c.position }

// Type is the lower-cased data type with its parameters, such as
// varchar(255) or int unsigned.
func (c *ColumnState) Type() string         { return c.columnType }
func (c *ColumnState) Nullable() bool       { return c.nullable }
func (c *ColumnState) CharacterSet() string { return c.characterSet }
func (c *ColumnState) Collation() string    { return c.collation }
func (c *ColumnState) Comment() string      { return c.comment }
func (c *ColumnState) AutoIncrement() bool  { return c.autoIncrement }

// Default returns the default value and whether one is set. String
// literals are unquoted.
func (c *ColumnState) Default() (string, bool) {
	if c.defaultValue == nil {
		return "", false
	}
	return *c.defaultValue, true
}

func (c *ColumnState) copy() *ColumnState {
	ret := *c
	if c.defaultValue != nil {
		value := *c.defaultValue
		ret.defaultValue = &value
	}
	return &ret
}

// IndexState is an index of a table, the primary key included.
type IndexState struct {
	name           string
	expressionList []string
	indexType      string
	unique         bool
	primary        bool
	visible        bool
	comment        string
}

func (i *IndexState) Name() string { return i.name }

// Expressions returns the indexed columns or expressions in key order.
func (i *IndexState) Expressions() []string { return i.expressionList }

// Type is BTREE, HASH, FULLTEXT or SPATIAL.
func (i *IndexState) Type() string    { return i.indexType }
func (i *IndexState) Unique() bool    { return i.unique }
func (i *IndexState) Primary() bool   { return i.primary }
func (i *IndexState) Visible() bool   { return i.visible }
func (i *IndexState) Comment() string { return i.comment }

func (i *IndexState) copy() *IndexState {
	ret := *i
	ret.expressionList = append([]string(nil), i.expressionList...)
	return &ret
}

func (i *IndexState) dropColumn(columnName string) {
	var keys []string
	for _, key := range i.expressionList {
		if !strings.EqualFold(key, columnName) {
			keys = append(keys, key)
		}
	}
	i.expressionList = keys
}

// ForeignKeyState is a foreign key of a table.
type ForeignKeyState struct {
	Name               string   `json:"name" yaml:"name"`
	Columns            []string `json:"columns" yaml:"columns"`
	ReferencedDatabase string   `json:"referenced_database,omitempty" yaml:"referenced_database,omitempty"`
	ReferencedTable    string   `json:"referenced_table" yaml:"referenced_table"`
	ReferencedColumns  []string `json:"referenced_columns" yaml:"referenced_columns"`
	OnDelete           string   `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
	OnUpdate           string   `json:"on_update,omitempty" yaml:"on_update,omitempty"`
}

func compareIdentifier(a, b string, ignoreCaseSensitive bool) bool {
	if ignoreCaseSensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}
