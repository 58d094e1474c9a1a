package database

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBool
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// DateTimeLayout is the layout used when a time.Time is bound or read back.
const DateTimeLayout = "2006-01-02 15:04:05"

// Value is a single scalar crossing the boundary to the driver. The zero
// Value is NULL.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

func Null() Value { return Value{} }

func Int(v int64) Value { return Value{kind: KindInt, i: v} }

func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

func Text(v string) Value { return Value{kind: KindText, s: v} }

func Bytes(v []byte) Value { return Value{kind: KindBytes, b: v} }

// Time binds t as text in DateTimeLayout, which both MySQL DATETIME and
// SQLite accept.
func Time(t time.Time) Value { return Text(t.Format(DateTimeLayout)) }

func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, i: 1}
	}
	return Value{kind: KindBool}
}

// ValueOf converts a Go scalar into a Value, for callers holding loosely
// typed data (decoded JSON, CLI input) rather than building Values with the
// typed constructors. Unsigned integers that do not fit in an int64 and
// non-scalar types are rejected with ErrUnsupportedValue.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Text(x), nil
	case bool:
		return Bool(x), nil
	case []byte:
		return Bytes(x), nil
	case time.Time:
		return Time(x), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func fromUint(u uint64) (Value, error) {
	if u > 1<<63-1 {
		return Value{}, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedValue, u)
	}
	return Int(int64(u)), nil
}

// Values converts every argument with ValueOf, so a positional parameter
// list can be written as plain Go values:
//
//	params, err := database.Values(orderID, "Pending")
//	rows, err := g.Select(ctx, "orders", "id = ? AND status = ?", params...)
func Values(args ...any) ([]Value, error) {
	out := make([]Value, len(args))
	for i, a := range args {
		v, err := ValueOf(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsInt() (int64, bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

// AsFloat also accepts integers and numeric text, which is how most drivers
// hand back DECIMAL columns.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindText:
		f, err := strconv.ParseFloat(v.s, 64)
		return f, err == nil
	}
	return 0, false
}

func (v Value) AsText() (string, bool) {
	if v.kind == KindText {
		return v.s, true
	}
	return "", false
}

func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool, KindInt:
		return v.i != 0, true
	}
	return false, false
}

// AsBytes returns a copy, so callers cannot change the Value through it.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind == KindBytes {
		return bytes.Clone(v.b), true
	}
	return nil, false
}

// Any returns the plain Go value held by v. Byte slices are copied.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBool:
		return v.i != 0
	case KindBytes:
		return bytes.Clone(v.b)
	default:
		return nil
	}
}

// Value implements driver.Valuer.
func (v Value) Value() (driver.Value, error) {
	return v.Any(), nil
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindFloat:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.b, o.b)
	default:
		return v.i == o.i
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindText:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	case KindBytes:
		return fmt.Sprintf("%x", v.b)
	default:
		return ""
	}
}

// fromDriver converts a scanned driver value. Byte slices become text unless
// the column is binary.
func fromDriver(src any, binary bool) Value {
	switch x := src.(type) {
	case nil:
		return Null()
	case int64:
		return Int(x)
	case float64:
		return Float(x)
	case bool:
		return Bool(x)
	case string:
		return Text(x)
	case []byte:
		if binary {
			return Bytes(x)
		}
		return Text(string(x))
	case time.Time:
		return Time(x)
	default:
		// Anything else a driver may hand back is rendered as text.
		return Text(fmt.Sprint(x))
	}
}
