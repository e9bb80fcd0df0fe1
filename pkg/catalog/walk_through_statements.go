package catalog

import (
	"fmt"
	"strings"

	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/statements"
)

// changeState applies one statement. Statements that do not change the
// schema are ignored.
func (d *DatabaseState) changeState(stmt statements.Statement) *WalkThroughError {
	switch stmt.(type) {
	case *statements.CreateStatement, *statements.AlterStatement,
		*statements.DropStatement, *statements.RenameStatement:
	default:
		return nil
	}

	if d.deleted {
		return &WalkThroughError{
			Type:    ErrorTypeDatabaseIsDeleted,
			Content: fmt.Sprintf("Database `%s` is deleted", d.name),
		}
	}

	switch s := stmt.(type) {
	case *statements.CreateStatement:
		switch object := s.Object(); {
		case object == "TABLE":
			return d.createTable(s)
		case object == "DATABASE" || object == "SCHEMA":
			return d.createDatabase(s)
		case strings.HasSuffix(object, "INDEX"):
			return d.createIndex(s)
		}
	case *statements.AlterStatement:
		switch s.Object() {
		case "TABLE":
			return d.alterTable(s)
		case "DATABASE", "SCHEMA":
			return d.alterDatabase(s)
		}
	case *statements.DropStatement:
		switch s.Object() {
		case "TABLE", "TABLES":
			return d.dropTable(s)
		case "DATABASE", "SCHEMA":
			return d.dropDatabase(s)
		case "INDEX":
			return d.dropIndex(s)
		}
	case *statements.RenameStatement:
		for _, op := range s.Renames {
			oldDatabase, oldName := objectName(op.Old)
			newDatabase, newName := objectName(op.New)
			if err := d.renameTable(oldDatabase, oldName, newDatabase, newName); err != nil {
				return err
			}
		}
	}
	return nil
}

// objectName splits a table or database reference into its database
// qualifier and name.
func objectName(e *components.Expression) (database, name string) {
	if e == nil {
		return "", ""
	}
	switch {
	case e.Table != "":
		return e.Database, e.Table
	case e.Column != "":
		return e.Database, e.Column
	}
	return e.Database, e.Expr
}

// fieldName returns the name an ALTER TABLE operation refers to.
func fieldName(e *components.Expression) string {
	if e == nil {
		return ""
	}
	switch {
	case e.Column != "":
		return e.Column
	case e.Table != "":
		return e.Table
	}
	return e.Expr
}

// optionValue returns the value of the first of names set in opts.
func optionValue(opts *components.OptionsArray, names ...string) (string, bool) {
	for _, name := range names {
		if value, ok := opts.Value(name); ok {
			return value, true
		}
	}
	return "", false
}

func (d *DatabaseState) checkDatabase(database string) *WalkThroughError {
	if database != "" && !d.isCurrentDatabase(database) {
		return NewAccessOtherDatabaseError(d.name, database)
	}
	return nil
}

func (d *DatabaseState) createDatabase(s *statements.CreateStatement) *WalkThroughError {
	_, name := objectName(s.Name)
	if !d.isCurrentDatabase(name) {
		return NewAccessOtherDatabaseError(d.name, name)
	}
	d.applyOptions(s.EntityOptions)
	return nil
}

func (d *DatabaseState) alterDatabase(s *statements.AlterStatement) *WalkThroughError {
	if s.Table != nil {
		if _, name := objectName(s.Table); !d.isCurrentDatabase(name) {
			return NewAccessOtherDatabaseError(d.name, name)
		}
	}
	for _, op := range s.Operations {
		d.applyOptions(op.Options)
	}
	return nil
}

func (d *DatabaseState) applyOptions(opts *components.OptionsArray) {
	if charset, ok := optionValue(opts, "CHARACTER SET", "CHARSET", "DEFAULT CHARACTER SET", "DEFAULT CHARSET"); ok {
		d.characterSet = charset
	}
	if collation, ok := optionValue(opts, "COLLATE", "DEFAULT COLLATE"); ok {
		d.collation = collation
	}
}

func (d *DatabaseState) dropDatabase(s *statements.DropStatement) *WalkThroughError {
	for _, field := range s.Fields {
		_, name := objectName(field)
		if !d.isCurrentDatabase(name) {
			return NewAccessOtherDatabaseError(d.name, name)
		}
		d.deleted = true
	}
	return nil
}

// findTable returns the table name of database. Without integrity checks
// an unknown table is created empty.
func (d *DatabaseState) findTable(database, name string) (*TableState, *WalkThroughError) {
	if err := d.checkDatabase(database); err != nil {
		return nil, err
	}
	table, exists := d.getTable(name)
	if !exists {
		if d.ctx.CheckIntegrity {
			return nil, NewTableNotExistsError(name)
		}
		table = newTableState(name)
		d.putTable(table)
	}
	return table, nil
}

func (d *DatabaseState) createTable(s *statements.CreateStatement) *WalkThroughError {
	database, name := objectName(s.Name)
	if err := d.checkDatabase(database); err != nil {
		return err
	}
	if _, exists := d.getTable(name); exists {
		if s.Options.Has("IF NOT EXISTS") {
			return nil
		}
		return NewTableExistsError(name)
	}

	if s.Select != nil {
		return &WalkThroughError{
			Type:    ErrorTypeUseCreateTableAs,
			Content: fmt.Sprintf("Disallow the CREATE TABLE AS statement but \"%s\" uses", s.Build()),
		}
	}

	if s.Like != nil {
		likeDatabase, likeName := objectName(s.Like)
		source, err := d.findTable(likeDatabase, likeName)
		if err != nil {
			return err
		}
		table := source.copy()
		table.name = name
		d.putTable(table)
		return nil
	}

	table := newTableState(name)
	table.applyOptions(s.EntityOptions)
	d.putTable(table)

	// Keys may name columns declared after them.
	for _, def := range s.Fields {
		if !def.IsColumn() {
			continue
		}
		if err := table.createColumn(d.ctx, def, columnPlace{}); err != nil {
			return err
		}
	}
	for _, def := range s.Fields {
		if def.IsColumn() {
			continue
		}
		if err := table.createConstraint(d.ctx, def); err != nil {
			return err
		}
	}
	return nil
}

func (d *DatabaseState) dropTable(s *statements.DropStatement) *WalkThroughError {
	for _, field := range s.Fields {
		database, name := objectName(field)
		if err := d.checkDatabase(database); err != nil {
			return err
		}
		if _, exists := d.getTable(name); !exists {
			if s.Options.Has("IF EXISTS") || !d.ctx.CheckIntegrity {
				continue
			}
			return NewTableNotExistsError(name)
		}
		d.deleteTable(name)
	}
	return nil
}

func (d *DatabaseState) renameTable(oldDatabase, oldName, newDatabase, newName string) *WalkThroughError {
	inCurrent := func(database string) bool {
		return database == "" || d.isCurrentDatabase(database)
	}

	switch {
	case inCurrent(oldDatabase) && inCurrent(newDatabase):
		if compareIdentifier(oldName, newName, d.ctx.IgnoreCaseSensitive) {
			return nil
		}
		table, exists := d.getTable(oldName)
		if !exists {
			if d.ctx.CheckIntegrity {
				return NewTableNotExistsError(oldName)
			}
			table = newTableState(oldName)
		}
		if _, exists := d.getTable(newName); exists {
			return NewTableExistsError(newName)
		}
		d.deleteTable(oldName)
		table.name = newName
		d.putTable(table)
	case inCurrent(oldDatabase):
		// The table moves to another database.
		if _, exists := d.getTable(oldName); !exists && d.ctx.CheckIntegrity {
			return NewTableNotExistsError(oldName)
		}
		d.deleteTable(oldName)
	default:
		return NewAccessOtherDatabaseError(d.name, oldDatabase)
	}
	return nil
}

func (d *DatabaseState) createIndex(s *statements.CreateStatement) *WalkThroughError {
	database, tableName := objectName(s.Table)
	table, err := d.findTable(database, tableName)
	if err != nil {
		return err
	}

	object := s.Object()
	options := &components.OptionsArray{}
	options.Merge(s.IndexType)
	options.Merge(s.EntityOptions)
	key := &components.Key{
		Type:    strings.TrimSuffix(object, " INDEX") + " KEY",
		Parts:   s.Parts,
		Options: options,
	}
	if object == "INDEX" {
		key.Type = "KEY"
	}
	_, key.Name = objectName(s.Name)
	return table.createKey(d.ctx, key, "")
}

func (d *DatabaseState) dropIndex(s *statements.DropStatement) *WalkThroughError {
	database, tableName := objectName(s.Table)
	table, err := d.findTable(database, tableName)
	if err != nil {
		return err
	}
	for _, field := range s.Fields {
		_, name := objectName(field)
		if err := table.dropIndex(d.ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (d *DatabaseState) alterTable(s *statements.AlterStatement) *WalkThroughError {
	database, name := objectName(s.Table)
	table, err := d.findTable(database, name)
	if err != nil {
		return err
	}
	for _, op := range s.Operations {
		if err := d.alterTableOperation(table, op); err != nil {
			return err
		}
	}
	return nil
}

func (d *DatabaseState) alterTableOperation(table *TableState, op *components.AlterOperation) *WalkThroughError {
	table.applyOptions(op.Options)
	first, after := op.Position()
	place := columnPlace{first: first, after: after}

	switch op.Verb() {
	case "ADD":
		if def := op.ColumnDefinition(); def != nil && def.IsColumn() {
			return table.createColumn(d.ctx, def, place)
		}
		if def := op.KeyDefinition(); def != nil {
			return table.createConstraint(d.ctx, def)
		}
	case "DROP":
		switch object := op.Object(); object {
		case "", "COLUMN":
			if op.Field == nil {
				return nil
			}
			return table.dropColumn(d.ctx, fieldName(op.Field))
		case "PRIMARY KEY":
			return table.dropIndex(d.ctx, PrimaryKeyName)
		case "INDEX", "KEY":
			return table.dropIndex(d.ctx, fieldName(op.Field))
		case "FOREIGN KEY", "CONSTRAINT":
			return table.dropForeignKey(d.ctx, fieldName(op.Field), object == "FOREIGN KEY")
		}
	case "MODIFY":
		if def := op.ColumnDefinition(); def != nil && def.IsColumn() {
			return table.changeColumn(d.ctx, def.Name, def, place)
		}
	case "CHANGE":
		if def := op.ColumnDefinition(); def != nil && def.IsColumn() {
			return table.changeColumn(d.ctx, fieldName(op.Field), def, place)
		}
	case "RENAME":
		switch op.Object() {
		case "COLUMN":
			return table.renameColumn(d.ctx, fieldName(op.Field), renameTarget(op.Unknown))
		case "INDEX", "KEY":
			return table.renameIndex(d.ctx, fieldName(op.Field), renameTarget(op.Unknown))
		default:
			if op.Field == nil {
				return nil
			}
			// The new name is parsed as a column, qualified by its database.
			return d.renameTable("", table.name, op.Field.Table, op.Field.Column)
		}
	case "ALTER":
		return table.alterColumnOrIndex(d.ctx, op)
	}
	return nil
}

// renameTarget returns the name following TO or AS.
func renameTarget(tokens []*lexer.Token) string {
	seen := false
	for _, tok := range tokens {
		if !tok.IsSignificant() {
			continue
		}
		if seen {
			return tok.Identifier()
		}
		seen = tok.IsKeyword("TO", "AS")
	}
	return ""
}

func (t *TableState) applyOptions(opts *components.OptionsArray) {
	if engine, ok := opts.Value("ENGINE"); ok {
		t.engine = engine
	}
	if charset, ok := optionValue(opts, "CHARACTER SET", "CHARSET", "DEFAULT CHARACTER SET", "DEFAULT CHARSET"); ok {
		t.characterSet = charset
	}
	if collation, ok := optionValue(opts, "COLLATE", "DEFAULT COLLATE"); ok {
		t.collation = collation
	}
	if comment, ok := opts.Value("COMMENT"); ok {
		t.comment = comment
	}
}

// columnPlace is the FIRST or AFTER clause of a column definition.
type columnPlace struct {
	first bool
	after string
}

// reorderColumn makes room for a column at place and returns its position.
func (t *TableState) reorderColumn(ctx *FinderContext, place columnPlace) (int, *WalkThroughError) {
	switch {
	case place.first:
		for _, column := range t.columnSet {
			column.position++
		}
		return 1, nil
	case place.after != "":
		column, exists := t.columnSet[strings.ToLower(place.after)]
		if !exists {
			if ctx.CheckIntegrity {
				return 0, NewColumnNotExistsError(t.name, place.after)
			}
			return len(t.columnSet) + 1, nil
		}
		for _, col := range t.columnSet {
			if col.position > column.position {
				col.position++
			}
		}
		return column.position + 1, nil
	}
	return len(t.columnSet) + 1, nil
}

func (t *TableState) createColumn(ctx *FinderContext, def *components.CreateDefinition, place columnPlace) *WalkThroughError {
	columnName := def.Name
	key := strings.ToLower(columnName)
	if _, exists := t.columnSet[key]; exists {
		return &WalkThroughError{
			Type:    ErrorTypeColumnExists,
			Content: fmt.Sprintf("Column `%s` already exists in table `%s`", columnName, t.name),
		}
	}

	opts := def.Options
	col := &ColumnState{
		name:       columnName,
		columnType: columnType(def.Type),
		nullable:   !opts.Has("NOT NULL"),
	}
	col.characterSet, _ = optionValue(def.Type.Options, "CHARACTER SET", "CHARSET")
	col.collation, _ = optionValue(def.Type.Options, "COLLATE")
	if collation, ok := opts.Value("COLLATE"); ok {
		col.collation = collation
	}
	if comment, ok := opts.Value("COMMENT"); ok {
		col.comment = comment
	}

	setNullDefault := false
	if o := opts.Get("DEFAULT"); o != nil {
		value, isNull := defaultLiteral(o.Normalized)
		if isNull {
			setNullDefault = true
		} else {
			if err := checkDefault(columnName, def.Type); err != nil {
				return err
			}
			col.defaultValue = &value
		}
	}
	if opts.Has("ON UPDATE") && !isTimeType(def.Type) {
		return &WalkThroughError{
			Type:    ErrorTypeOnUpdateColumnNotDatetimeOrTimestamp,
			Content: fmt.Sprintf("Column `%s` use ON UPDATE but is not DATETIME or TIMESTAMP", columnName),
		}
	}
	if opts.Has("AUTO_INCREMENT") {
		for _, other := range t.columnSet {
			if other.autoIncrement {
				return &WalkThroughError{
					Type: ErrorTypeAutoIncrementExists,
					// The content comes from MySQL error content.
					Content: fmt.Sprintf("There can be only one auto column for table `%s`", t.name),
				}
			}
		}
		col.autoIncrement = true
	}
	primary := opts.Has("PRIMARY KEY") || opts.Has("PRIMARY")
	if primary {
		col.nullable = false
	}
	if !col.nullable && setNullDefault {
		return &WalkThroughError{
			Type: ErrorTypeSetNullDefaultForNotNullColumn,
			// Content comes from MySQL Error content.
			Content: fmt.Sprintf("Invalid default value for column `%s`", columnName),
		}
	}

	pos, err := t.reorderColumn(ctx, place)
	if err != nil {
		return err
	}
	col.position = pos
	t.columnSet[key] = col

	if primary {
		if err := t.createPrimaryKey([]string{columnName}, "BTREE"); err != nil {
			return err
		}
	}
	if opts.Has("UNIQUE") || opts.Has("UNIQUE KEY") {
		return t.createIndex("", []string{columnName}, true, "BTREE", true, "")
	}
	return nil
}

// columnType renders a data type the way it is reported by the state.
func columnType(dt *components.DataType) string {
	ret := strings.ToLower(dt.Name)
	if len(dt.Parameters) > 0 {
		ret += "(" + strings.Join(dt.Parameters, ",") + ")"
	}
	if dt.Options.Has("UNSIGNED") {
		ret += " unsigned"
	}
	if dt.Options.Has("ZEROFILL") {
		ret += " zerofill"
	}
	return ret
}

// defaultLiteral unquotes a DEFAULT value and reports whether it is NULL.
func defaultLiteral(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "NULL") {
		return "", true
	}
	if n := len(value); n >= 2 {
		if q := value[0]; (q == '\'' || q == '"') && value[n-1] == q {
			quote := string(q)
			return strings.ReplaceAll(value[1:n-1], quote+quote, quote), false
		}
	}
	return value, false
}

func isTimeType(dt *components.DataType) bool {
	name := strings.ToUpper(dt.Name)
	return name == "DATETIME" || name == "TIMESTAMP"
}

// noDefaultTypes cannot have a literal default value.
var noDefaultTypes = map[string]bool{
	"TEXT": true, "TINYTEXT": true, "MEDIUMTEXT": true, "LONGTEXT": true,
	"BLOB": true, "TINYBLOB": true, "MEDIUMBLOB": true, "LONGBLOB": true,
	"LONG": true, "SERIAL": true, "JSON": true,
	"GEOMETRY": true, "GEOMETRYCOLLECTION": true, "POINT": true, "MULTIPOINT": true,
	"LINESTRING": true, "MULTILINESTRING": true, "POLYGON": true, "MULTIPOLYGON": true,
}

func checkDefault(columnName string, dt *components.DataType) *WalkThroughError {
	if noDefaultTypes[strings.ToUpper(dt.Name)] {
		return &WalkThroughError{
			Type:    ErrorTypeInvalidColumnTypeForDefaultValue,
			Content: fmt.Sprintf("BLOB, TEXT, GEOMETRY or JSON column `%s` can't have a default value", columnName),
		}
	}
	return nil
}

// changeColumn replaces the column oldName with def, for MODIFY and CHANGE.
// Without a FIRST or AFTER clause the column keeps its position.
func (t *TableState) changeColumn(ctx *FinderContext, oldName string, def *components.CreateDefinition, place columnPlace) *WalkThroughError {
	old, exists := t.columnSet[strings.ToLower(oldName)]
	if !exists {
		if ctx.CheckIntegrity {
			return NewColumnNotExistsError(t.name, oldName)
		}
		return t.createColumn(ctx, def, place)
	}
	renamed := !strings.EqualFold(oldName, def.Name)
	if _, exists := t.columnSet[strings.ToLower(def.Name)]; renamed && exists {
		return &WalkThroughError{
			Type:    ErrorTypeColumnExists,
			Content: fmt.Sprintf("Column `%s` already exists in table `%s`", def.Name, t.name),
		}
	}

	delete(t.columnSet, strings.ToLower(oldName))
	for _, col := range t.columnSet {
		if col.position > old.position {
			col.position--
		}
	}
	if !place.first && place.after == "" {
		// Put the column back after its previous neighbor.
		if old.position == 1 {
			place.first = true
		} else {
			for _, col := range t.columnSet {
				if col.position == old.position-1 {
					place.after = col.name
				}
			}
		}
	}
	if err := t.createColumn(ctx, def, place); err != nil {
		return err
	}
	if renamed {
		t.renameColumnInIndexKey(oldName, def.Name)
	}
	return nil
}

func (t *TableState) dropColumn(ctx *FinderContext, columnName string) *WalkThroughError {
	column, exists := t.columnSet[strings.ToLower(columnName)]
	if !exists {
		if ctx.CheckIntegrity {
			return NewColumnNotExistsError(t.name, columnName)
		}
	} else if len(t.columnSet) == 1 {
		return &WalkThroughError{
			Type:    ErrorTypeDropAllColumns,
			Content: fmt.Sprintf("Can't delete all columns with ALTER TABLE; use DROP TABLE %s instead", t.name),
		}
	}

	for key, index := range t.indexSet {
		index.dropColumn(columnName)
		if len(index.expressionList) == 0 {
			delete(t.indexSet, key)
		}
	}
	if column != nil {
		for _, col := range t.columnSet {
			if col.position > column.position {
				col.position--
			}
		}
	}
	delete(t.columnSet, strings.ToLower(columnName))
	return nil
}

func (t *TableState) renameColumn(ctx *FinderContext, oldName string, newName string) *WalkThroughError {
	if strings.EqualFold(oldName, newName) {
		return nil
	}

	column, exists := t.columnSet[strings.ToLower(oldName)]
	if !exists {
		if ctx.CheckIntegrity {
			return NewColumnNotExistsError(t.name, oldName)
		}
		column = &ColumnState{name: oldName, position: len(t.columnSet) + 1, nullable: true}
	}
	if _, exists := t.columnSet[strings.ToLower(newName)]; exists {
		return &WalkThroughError{
			Type:    ErrorTypeColumnExists,
			Content: fmt.Sprintf("Column `%s` already exists in table `%s`", newName, t.name),
		}
	}

	column.name = newName
	delete(t.columnSet, strings.ToLower(oldName))
	t.columnSet[strings.ToLower(newName)] = column

	t.renameColumnInIndexKey(oldName, newName)
	return nil
}

func (t *TableState) renameColumnInIndexKey(oldName string, newName string) {
	for _, index := range t.indexSet {
		for i, key := range index.expressionList {
			if strings.EqualFold(key, oldName) {
				index.expressionList[i] = newName
			}
		}
	}
	for _, fk := range t.foreignKeys {
		for i, col := range fk.Columns {
			if strings.EqualFold(col, oldName) {
				fk.Columns[i] = newName
			}
		}
	}
}

// alterColumnOrIndex applies ALTER COLUMN ... SET/DROP DEFAULT and ALTER
// INDEX ... VISIBLE/INVISIBLE.
func (t *TableState) alterColumnOrIndex(ctx *FinderContext, op *components.AlterOperation) *WalkThroughError {
	name := fieldName(op.Field)
	if object := op.Object(); object == "INDEX" || object == "KEY" {
		index, exists := t.indexSet[strings.ToLower(name)]
		if !exists {
			if ctx.CheckIntegrity {
				return NewIndexNotExistsError(t.name, name)
			}
			return nil
		}
		for _, tok := range op.Unknown {
			switch tok.Upper() {
			case "VISIBLE":
				index.visible = true
			case "INVISIBLE":
				index.visible = false
			}
		}
		return nil
	}

	column, exists := t.columnSet[strings.ToLower(name)]
	if !exists {
		if ctx.CheckIntegrity {
			return NewColumnNotExistsError(t.name, name)
		}
		return nil
	}
	set, drop, value := defaultClause(op.Unknown)
	switch {
	case drop:
		column.defaultValue = nil
	case set:
		literal, isNull := defaultLiteral(strings.Trim(value, "()"))
		if isNull {
			if !column.nullable {
				return &WalkThroughError{
					Type:    ErrorTypeSetNullDefaultForNotNullColumn,
					Content: fmt.Sprintf("Invalid default value for column `%s`", column.name),
				}
			}
			column.defaultValue = nil
			return nil
		}
		column.defaultValue = &literal
	}
	return nil
}

// defaultClause recognizes SET DEFAULT value and DROP DEFAULT.
func defaultClause(tokens []*lexer.Token) (set, drop bool, value string) {
	var words []string
	for i, tok := range tokens {
		if !tok.IsSignificant() {
			continue
		}
		words = append(words, strings.Fields(tok.Upper())...)
		if len(words) < 2 {
			continue
		}
		if words[1] == "DEFAULT" {
			switch words[0] {
			case "SET":
				return true, false, strings.TrimSpace(lexer.Build(tokens[i+1:]))
			case "DROP":
				return false, true, ""
			}
		}
		break
	}
	return false, false, ""
}

func (t *TableState) createConstraint(ctx *FinderContext, def *components.CreateDefinition) *WalkThroughError {
	switch {
	case def.Key != nil && def.Key.Type == "FOREIGN KEY":
		return t.createForeignKey(ctx, def)
	case def.Key != nil:
		symbol := ""
		if def.IsConstraint {
			symbol = def.Name
		}
		return t.createKey(ctx, def.Key, symbol)
	}
	// CHECK constraints are not tracked.
	return nil
}

// createKey adds the index key declares. symbol is the CONSTRAINT name,
// used when the key itself is unnamed.
func (t *TableState) createKey(ctx *FinderContext, key *components.Key, symbol string) *WalkThroughError {
	spatial := strings.HasPrefix(key.Type, SpatialName)
	if err := t.validateColumnList(ctx, key.Columns(), key.IsPrimary(), spatial); err != nil {
		return err
	}

	var keys []string
	for _, part := range key.Parts {
		if part.Name != "" {
			keys = append(keys, part.Name)
		} else {
			keys = append(keys, part.Expr)
		}
	}

	tp := "BTREE"
	switch {
	case strings.HasPrefix(key.Type, FullTextName):
		tp = FullTextName
	case spatial:
		tp = SpatialName
	default:
		if using, ok := key.Options.Value("USING"); ok {
			tp = strings.ToUpper(using)
		}
	}
	if key.IsPrimary() {
		return t.createPrimaryKey(keys, tp)
	}

	name := key.Name
	if name == "" {
		name = symbol
	}
	comment, _ := key.Options.Value("COMMENT")
	return t.createIndex(name, keys, key.IsUnique(), tp, !key.Options.Has("INVISIBLE"), comment)
}

func (t *TableState) validateColumnList(ctx *FinderContext, columnList []string, primary bool, isSpatial bool) *WalkThroughError {
	for _, columnName := range columnList {
		column, exists := t.columnSet[strings.ToLower(columnName)]
		if !exists {
			if ctx.CheckIntegrity {
				return NewColumnNotExistsError(t.name, columnName)
			}
			continue
		}
		if primary {
			column.nullable = false
		}
		if isSpatial && column.nullable {
			return &WalkThroughError{
				Type:    ErrorTypeSpatialIndexKeyNullable,
				Content: fmt.Sprintf("All parts of a SPATIAL index must be NOT NULL, but `%s` is nullable", column.name),
			}
		}
	}
	return nil
}

func (t *TableState) createIndex(name string, keyList []string, unique bool, tp string, visible bool, comment string) *WalkThroughError {
	if len(keyList) == 0 {
		return &WalkThroughError{
			Type:    ErrorTypeIndexEmptyKeys,
			Content: fmt.Sprintf("Index `%s` in table `%s` has empty key", name, t.name),
		}
	}
	if name != "" {
		if _, exists := t.indexSet[strings.ToLower(name)]; exists {
			return NewIndexExistsError(t.name, name)
		}
	} else {
		// MySQL names the index after its first key, with a numeric suffix
		// when taken.
		for suffix := 1; ; suffix++ {
			name = keyList[0]
			if suffix > 1 {
				name = fmt.Sprintf("%s_%d", keyList[0], suffix)
			}
			if _, exists := t.indexSet[strings.ToLower(name)]; !exists {
				break
			}
		}
	}

	t.indexSet[strings.ToLower(name)] = &IndexState{
		name:           name,
		expressionList: keyList,
		indexType:      tp,
		unique:         unique,
		visible:        visible,
		comment:        comment,
	}
	return nil
}

func (t *TableState) createPrimaryKey(keys []string, tp string) *WalkThroughError {
	if _, exists := t.indexSet[strings.ToLower(PrimaryKeyName)]; exists {
		return &WalkThroughError{
			Type:    ErrorTypePrimaryKeyExists,
			Content: fmt.Sprintf("Primary key exists in table `%s`", t.name),
		}
	}

	t.indexSet[strings.ToLower(PrimaryKeyName)] = &IndexState{
		name:           PrimaryKeyName,
		expressionList: keys,
		indexType:      tp,
		unique:         true,
		primary:        true,
		visible:        true,
	}
	return nil
}

func (t *TableState) dropIndex(ctx *FinderContext, indexName string) *WalkThroughError {
	if _, exists := t.indexSet[strings.ToLower(indexName)]; !exists && ctx.CheckIntegrity {
		if strings.EqualFold(indexName, PrimaryKeyName) {
			return &WalkThroughError{
				Type:    ErrorTypePrimaryKeyNotExists,
				Content: fmt.Sprintf("Primary key does not exist in table `%s`", t.name),
			}
		}
		return NewIndexNotExistsError(t.name, indexName)
	}

	delete(t.indexSet, strings.ToLower(indexName))
	return nil
}

func (t *TableState) renameIndex(ctx *FinderContext, oldName string, newName string) *WalkThroughError {
	index, exists := t.indexSet[strings.ToLower(oldName)]
	if !exists {
		if ctx.CheckIntegrity {
			return NewIndexNotExistsError(t.name, oldName)
		}
		return nil
	}
	if strings.EqualFold(oldName, newName) {
		return nil
	}
	if _, exists := t.indexSet[strings.ToLower(newName)]; exists {
		return NewIndexExistsError(t.name, newName)
	}
	delete(t.indexSet, strings.ToLower(oldName))
	index.name = newName
	t.indexSet[strings.ToLower(newName)] = index
	return nil
}

func (t *TableState) createForeignKey(ctx *FinderContext, def *components.CreateDefinition) *WalkThroughError {
	key := def.Key
	name := key.Name
	if def.IsConstraint && def.Name != "" {
		name = def.Name
	}
	if name == "" {
		name = fmt.Sprintf("%s_ibfk_%d", t.name, len(t.foreignKeys)+1)
	}
	if _, fk := t.foreignKey(name); fk != nil {
		return &WalkThroughError{
			Type:    ErrorTypeConstraintExists,
			Content: fmt.Sprintf("Foreign key `%s` already exists in table `%s`", name, t.name),
		}
	}
	if err := t.validateColumnList(ctx, key.Columns(), false, false); err != nil {
		return err
	}

	fk := &ForeignKeyState{Name: name, Columns: key.Columns()}
	if ref := def.References; ref != nil {
		fk.ReferencedDatabase, fk.ReferencedTable = objectName(ref.Table)
		fk.ReferencedColumns = ref.Columns
		fk.OnDelete, _ = ref.Options.Value("ON DELETE")
		fk.OnUpdate, _ = ref.Options.Value("ON UPDATE")
	}
	t.foreignKeys = append(t.foreignKeys, fk)
	return nil
}

// dropForeignKey removes the foreign key name. DROP CONSTRAINT may name a
// key or check that is not tracked, so only DROP FOREIGN KEY is strict.
func (t *TableState) dropForeignKey(ctx *FinderContext, name string, strict bool) *WalkThroughError {
	i, fk := t.foreignKey(name)
	if fk == nil {
		if strict && ctx.CheckIntegrity {
			return &WalkThroughError{
				Type:    ErrorTypeConstraintNotExists,
				Content: fmt.Sprintf("Foreign key `%s` does not exist in table `%s`", name, t.name),
			}
		}
		return nil
	}
	t.foreignKeys = append(t.foreignKeys[:i], t.foreignKeys[i+1:]...)
	return nil
}
