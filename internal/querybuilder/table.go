package querybuilder

import (
	"fmt"
)

// IDLength is the length of every generated identifier
const IDLength = 21

// ColumnType describes how a column is stored and validated
type ColumnType int

const (
	// TypeID is a 21 character nanoid stored as char(21)
	TypeID ColumnType = iota
	TypeText
	TypeInteger
	// TypeSerial is assigned by the database (serial or sequence default)
	TypeSerial
	// TypeDecimal is numeric(20,4)
	TypeDecimal
	TypeBoolean
	// TypeTimestamp is a timestamp without time zone exchanged as "YYYY-MM-DD HH:MM:SS"
	TypeTimestamp
	TypeEnum
)

// Column is the static metadata of one table column
type Column struct {
	Name       string
	Type       ColumnType
	Required   bool
	Enum       []string
	Searchable bool
}

// Generated reports whether the database assigns the value
func (c Column) Generated() bool {
	return c.Type == TypeSerial
}

// NotNull marks the column as required on insert
func (c Column) NotNull() Column {
	c.Required = true
	return c
}

// ID declares a char(21) identifier column
func ID(name string) Column { return Column{Name: name, Type: TypeID} }

// Text declares a text column
func Text(name string) Column { return Column{Name: name, Type: TypeText} }

// Integer declares an integer column
func Integer(name string) Column { return Column{Name: name, Type: TypeInteger} }

// Serial declares a database assigned integer column
func Serial(name string) Column { return Column{Name: name, Type: TypeSerial} }

// Decimal declares a numeric(20,4) column
func Decimal(name string) Column { return Column{Name: name, Type: TypeDecimal} }

// Boolean declares a boolean column
func Boolean(name string) Column { return Column{Name: name, Type: TypeBoolean} }

// Timestamp declares a timestamp column
func Timestamp(name string) Column { return Column{Name: name, Type: TypeTimestamp} }

// Enum declares a column restricted to the given values
func Enum(name string, values ...string) Column {
	return Column{Name: name, Type: TypeEnum, Enum: values}
}

// Table is a named relation with an ordered, unique set of columns.
// Searchability is fixed when the table is declared.
type Table struct {
	Schema  string
	Name    string
	columns []Column
	index   map[string]int
}

// NewTable declares a table. It panics on duplicate column names since
// tables are declared once at package initialization.
func NewTable(schema, name string, columns ...Column) *Table {
	t := &Table{
		Schema:  schema,
		Name:    name,
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, dup := t.index[c.Name]; dup {
			panic(fmt.Sprintf("querybuilder: duplicate column %q in table %s.%s", c.Name, schema, name))
		}
		c.Searchable = !IsExcluded(c.Name)
		t.index[c.Name] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// From returns the schema qualified relation name used in FROM and JOIN clauses
func (t *Table) From() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Ref returns the quoted, table qualified column reference: "table"."column"
func (t *Table) Ref(column string) string {
	return fmt.Sprintf(`"%s"."%s"`, t.Name, column)
}

// Col returns an unquoted table.column reference for projections
func (t *Table) Col(column string) string {
	return t.Name + "." + column
}

// Columns returns the columns in declaration order
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks up a column by name
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Has reports whether the table declares the column
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// SearchableColumns returns the qualified names of the columns eligible for free-text search
func (t *Table) SearchableColumns() []string {
	var out []string
	for _, c := range t.columns {
		if c.Searchable {
			out = append(out, t.Ref(c.Name))
		}
	}
	return out
}

// Join attaches a secondary table to a query
type Join struct {
	Table *Table
	On    string
}
