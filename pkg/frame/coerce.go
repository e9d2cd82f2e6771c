package frame

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// TypeCoercionError is returned when a column value cannot be cast to the
// in-memory type its LogicalType requires.
type TypeCoercionError struct {
	Column string
	Value  any
	Type   LogicalType
	Err    error
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("column %q: cannot coerce %v (%T) to %s: %v", e.Column, e.Value, e.Value, e.Type, e.Err)
}

func (e *TypeCoercionError) Unwrap() error {
	return e.Err
}

// dateLayouts are tried in order when parsing DateTime values from strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Coerce returns a copy of the frame with every column named in the type map
// cast to its logical type's in-memory representation. Non-DateTime columns
// are converted in one pass; DateTime columns go through the date-parsing
// path afterward, since scalar casting does not handle heterogeneous date
// strings. Nil values pass through unchanged. A nil logger discards the
// before/after type diagnostics.
func Coerce(f *Frame, tm TypeMap, logger *slog.Logger) (*Frame, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Debug("coercing frame", slog.Any("types_before", f.typeVector()))

	out := &Frame{
		names:  append([]string(nil), f.names...),
		data:   make(map[string][]any, len(f.names)),
		index:  append([]string(nil), f.index...),
		length: f.length,
	}
	for _, name := range f.names {
		out.data[name] = append([]any(nil), f.data[name]...)
	}

	for _, e := range tm.WithoutDates() {
		if err := coerceColumn(out, e.Name, e.Type); err != nil {
			return nil, err
		}
	}
	for _, name := range tm.DateColumns() {
		if err := coerceColumn(out, name, DateTime); err != nil {
			return nil, err
		}
	}

	logger.Debug("coerced frame", slog.Any("types_after", out.typeVector()))
	return out, nil
}

func coerceColumn(f *Frame, name string, t LogicalType) error {
	vals, ok := f.data[name]
	if !ok {
		return &TypeCoercionError{Column: name, Type: t, Err: fmt.Errorf("no such column")}
	}
	for i, v := range vals {
		if v == nil {
			continue
		}
		cast, err := castValue(v, t)
		if err != nil {
			return &TypeCoercionError{Column: name, Value: v, Type: t, Err: err}
		}
		vals[i] = cast
	}
	return nil
}

// castValue converts a single value to the in-memory type for t.
func castValue(v any, t LogicalType) (any, error) {
	switch t {
	case Float:
		return toFloat(v)
	case Integer:
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return nil, fmt.Errorf("value %d overflows int32", n)
		}
		return int32(n), nil
	case BigInteger:
		return toInt(v)
	case Boolean:
		return toBool(v)
	case String:
		return toString(v)
	case DateTime:
		return toTime(v)
	default:
		return nil, fmt.Errorf("invalid logical type %d", int(t))
	}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
	default:
		return 0, fmt.Errorf("unsupported source type %T", v)
	}
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v has a fractional part", x)
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported source type %T", v)
	}
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int:
		return x != 0, nil
	case int32:
		return x != 0, nil
	case int64:
		return x != 0, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(x))
	case []byte:
		return strconv.ParseBool(strings.TrimSpace(string(x)))
	default:
		return false, fmt.Errorf("unsupported source type %T", v)
	}
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int:
		return strconv.Itoa(x), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	default:
		return fmt.Sprintf("%v", x), nil
	}
}

func toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		return parseTime(x)
	case []byte:
		return parseTime(string(x))
	case int64:
		// Unix seconds, the common bare-integer timestamp encoding.
		return time.Unix(x, 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported source type %T", v)
	}
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date/time value %q", s)
}
