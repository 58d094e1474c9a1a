package database

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null()},
		{"int", 42, Int(42)},
		{"int8", int8(-3), Int(-3)},
		{"uint32", uint32(7), Int(7)},
		{"float32", float32(0.5), Float(0.5)},
		{"float64", 1200.00, Float(1200)},
		{"string", "Pending", Text("Pending")},
		{"bool", true, Bool(true)},
		{"bytes", []byte("raw"), Bytes([]byte("raw"))},
		{"time", time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC), Text("2024-05-01 13:04:05")},
		{"value", Int(9), Int(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueOf_Rejects(t *testing.T) {
	_, err := ValueOf(struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = ValueOf(uint64(1 << 63))
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = Values("ok", map[string]int{})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
	assert.Contains(t, err.Error(), "argument 1")
}

func TestValue_DriverValue(t *testing.T) {
	tests := []struct {
		in   Value
		want driver.Value
	}{
		{Null(), nil},
		{Int(1), int64(1)},
		{Float(2.5), 2.5},
		{Text("x"), "x"},
		{Bool(false), false},
		{Bytes([]byte{1}), []byte{1}},
	}

	for _, tt := range tests {
		t.Run(tt.in.Kind().String(), func(t *testing.T) {
			got, err := tt.in.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	i, ok := Int(5).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(5), i)

	_, ok = Text("5").AsInt()
	assert.False(t, ok)

	f, ok := Text("1200.00").AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 1200.0, f)

	f, ok = Int(3).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = Text("abc").AsFloat()
	assert.False(t, ok)

	b, ok := Int(1).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	s, ok := Text("hi").AsText()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	raw, ok := Bytes([]byte("z")).AsBytes()
	assert.True(t, ok)
	assert.Equal(t, []byte("z"), raw)

	assert.True(t, Value{}.IsNull())
	assert.Equal(t, "NULL", Null().String())
	assert.Equal(t, "1200.5", Float(1200.5).String())
	assert.Equal(t, "true", Bool(true).String())
}

func TestValue_BytesAreCopied(t *testing.T) {
	v := Bytes([]byte("abc"))

	raw, _ := v.AsBytes()
	raw[0] = 'x'
	anyRaw := v.Any().([]byte)
	anyRaw[1] = 'y'

	assert.Equal(t, Bytes([]byte("abc")), v)
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Text("a").Equal(Text("a")))
	assert.False(t, Text("1").Equal(Int(1)))
	assert.True(t, Bytes([]byte("a")).Equal(Bytes([]byte("a"))))
	assert.True(t, Null().Equal(Value{}))
	assert.False(t, Float(1).Equal(Float(1.5)))
}

func TestFromDriver(t *testing.T) {
	assert.Equal(t, Text("Tablet"), fromDriver([]byte("Tablet"), false))
	assert.Equal(t, Bytes([]byte{0xff}), fromDriver([]byte{0xff}, true))
	assert.Equal(t, Int(4), fromDriver(int64(4), false))
	assert.Equal(t, Float(1.5), fromDriver(1.5, false))
	assert.Equal(t, Null(), fromDriver(nil, false))
	assert.Equal(t, Text("2024-05-01 13:04:05"), fromDriver(time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC), false))
}

func TestColumns(t *testing.T) {
	cols := NewColumns().
		Set("name", Text("Tablet")).
		Set("price", Float(1200)).
		Set("name", Text("Phone"))

	assert.Equal(t, 2, cols.Len())
	assert.Equal(t, []string{"name", "price"}, cols.Names())
	assert.Equal(t, []Value{Text("Phone"), Float(1200)}, cols.Values())

	v, ok := cols.Get("price")
	assert.True(t, ok)
	assert.Equal(t, Float(1200), v)

	_, ok = cols.Get("missing")
	assert.False(t, ok)

	var zero Columns
	zero.Set("a", Int(1))
	assert.Equal(t, 1, zero.Len())

	var nilCols *Columns
	assert.Zero(t, nilCols.Len())
	assert.Nil(t, nilCols.Names())
}

func TestIsBinaryType(t *testing.T) {
	for _, name := range []string{"BLOB", "blob", "LONGBLOB", "VARBINARY", "BINARY"} {
		assert.True(t, isBinaryType(name), name)
	}
	for _, name := range []string{"TEXT", "VARCHAR", "DECIMAL", "INTEGER", ""} {
		assert.False(t, isBinaryType(name), name)
	}
}
