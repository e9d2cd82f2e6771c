package frame

import "fmt"

// LogicalType is the closed set of column types the bridge understands.
// Each logical type maps to exactly one in-memory Go type; the database
// column type is chosen by the adapter's dialect.
type LogicalType int

const (
	// Float maps to float64.
	Float LogicalType = iota
	// Integer maps to int32.
	Integer
	// BigInteger maps to int64.
	BigInteger
	// Boolean maps to bool.
	Boolean
	// String maps to string.
	String
	// DateTime maps to time.Time.
	DateTime
)

var typeNames = [...]string{"Float", "Integer", "BigInteger", "Boolean", "String", "DateTime"}

// String returns the canonical name of the logical type.
func (t LogicalType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("LogicalType(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is one of the six defined logical types.
func (t LogicalType) Valid() bool {
	return t >= Float && t <= DateTime
}

// GoType returns the name of the Go type a logical type maps to in memory.
func (t LogicalType) GoType() string {
	switch t {
	case Float:
		return "float64"
	case Integer:
		return "int32"
	case BigInteger:
		return "int64"
	case Boolean:
		return "bool"
	case String:
		return "string"
	case DateTime:
		return "time.Time"
	default:
		return "invalid"
	}
}

// ParseLogicalType converts a type name into a LogicalType.
// Unknown names are an error rather than being silently dropped.
func ParseLogicalType(name string) (LogicalType, error) {
	for i, n := range typeNames {
		if n == name {
			return LogicalType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown logical type %q (valid: %v)", name, typeNames)
}

// ColumnType pairs a column name with its logical type.
type ColumnType struct {
	Name string
	Type LogicalType
}

// TypeMap is an ordered column-name to LogicalType mapping. It is used both
// to describe a table's schema at creation time and to coerce a frame's
// columns before load or after query.
type TypeMap []ColumnType

// NewTypeMap builds a TypeMap from entries, rejecting duplicate column names
// and invalid logical types.
func NewTypeMap(entries ...ColumnType) (TypeMap, error) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			return nil, fmt.Errorf("duplicate column %q in type map", e.Name)
		}
		if !e.Type.Valid() {
			return nil, fmt.Errorf("column %q: invalid logical type %d", e.Name, int(e.Type))
		}
		seen[e.Name] = true
	}
	return TypeMap(entries), nil
}

// Get returns the logical type mapped to a column name.
func (tm TypeMap) Get(name string) (LogicalType, bool) {
	for _, e := range tm {
		if e.Name == name {
			return e.Type, true
		}
	}
	return 0, false
}

// Columns returns the column names in declaration order.
func (tm TypeMap) Columns() []string {
	names := make([]string, len(tm))
	for i, e := range tm {
		names[i] = e.Name
	}
	return names
}

// DateColumns returns the names of DateTime columns in declaration order.
// These take a separate parsing path during coercion and querying.
func (tm TypeMap) DateColumns() []string {
	var names []string
	for _, e := range tm {
		if e.Type == DateTime {
			names = append(names, e.Name)
		}
	}
	return names
}

// WithoutDates returns a copy of the type map with DateTime entries removed.
func (tm TypeMap) WithoutDates() TypeMap {
	var out TypeMap
	for _, e := range tm {
		if e.Type != DateTime {
			out = append(out, e)
		}
	}
	return out
}
