package vals

import (
	"testing"

	"src.wdl.dev/pkg/tt"
	"src.wdl.dev/pkg/types"
)

func TestTypeOf(t *testing.T) {
	tt.Test(t, tt.Fn("TypeOf", TypeOf), tt.Table{
		tt.Args(Bool(true)).Rets(types.Type(types.Boolean{})),
		tt.Args(Int(5)).Rets(types.Type(types.Int{})),
		tt.Args(Float(1.5)).Rets(types.Type(types.Float{})),
		tt.Args(String("x")).Rets(types.Type(types.String{})),
		tt.Args(Array{Item: types.Int{}, Items: []Value{Int(1)}}).
			Rets(types.Type(types.Array{Item: types.Int{}})),
	})
}

func TestCoerce(t *testing.T) {
	// Identity.
	v, err := Coerce(Int(5), types.Int{})
	if err != nil || v != Int(5) {
		t.Errorf("identity coercion -> (%v, %v)", v, err)
	}
	// Int widens to Float.
	v, err = Coerce(Int(5), types.Float{})
	if err != nil || v != Float(5) {
		t.Errorf("Int to Float -> (%v, %v), want (5.0, nil)", v, err)
	}
	// Arrays coerce item-wise.
	v, err = Coerce(
		Array{Item: types.Int{}, Items: []Value{Int(1), Int(2)}},
		types.Array{Item: types.Float{}})
	if err != nil {
		t.Fatalf("array coercion -> error %v", err)
	}
	want := Array{Item: types.Float{}, Items: []Value{Float(1), Float(2)}}
	if !Equal(v, want) || !types.Equal(TypeOf(v), TypeOf(want)) {
		t.Errorf("array coercion -> %v, want %v", v, want)
	}
	// Float does not narrow to Int.
	if _, err := Coerce(Float(1.5), types.Int{}); err == nil {
		t.Errorf("Float to Int coercion did not fail")
	}
	if _, err := Coerce(Bool(true), types.String{}); err == nil {
		t.Errorf("Bool to String coercion did not fail")
	}
}

func TestToString(t *testing.T) {
	tt.Test(t, tt.Fn("ToString", ToString), tt.Table{
		tt.Args(Bool(true)).Rets("true"),
		tt.Args(Bool(false)).Rets("false"),
		tt.Args(Int(42)).Rets("42"),
		tt.Args(Float(1.5)).Rets("1.500000"),
		tt.Args(String("hi")).Rets("hi"),
		tt.Args(Array{Item: types.Int{}, Items: []Value{Int(1), Int(2)}}).Rets("[1, 2]"),
	})
}

func TestEqualValues(t *testing.T) {
	tt.Test(t, tt.Fn("Equal", Equal), tt.Table{
		tt.Args(Int(1), Int(1)).Rets(true),
		tt.Args(Int(1), Float(1)).Rets(false),
		tt.Args(
			Array{Item: types.Int{}, Items: []Value{Int(1)}},
			Array{Item: types.Int{}, Items: []Value{Int(1)}}).Rets(true),
		tt.Args(
			Array{Item: types.Int{}, Items: []Value{Int(1)}},
			Array{Item: types.Int{}, Items: []Value{Int(2)}}).Rets(false),
	})
}

func TestJSONRoundTrip(t *testing.T) {
	values := []Value{
		Bool(true),
		Int(-3),
		Float(0.25),
		String("quick brown fox"),
		Array{Item: types.Float{}, Items: []Value{Float(1), Float(2.5)}},
		Array{Item: types.Array{Item: types.Int{}},
			Items: []Value{Array{Item: types.Int{}, Items: []Value{Int(1)}}}},
	}
	for _, v := range values {
		got, err := FromJSON(ToJSON(v), TypeOf(v))
		if err != nil {
			t.Errorf("FromJSON(ToJSON(%v)) -> error %v", v, err)
			continue
		}
		if !Equal(got, v) {
			t.Errorf("round trip of %v -> %v", v, got)
		}
	}
}

func TestFromJSON_Mismatch(t *testing.T) {
	if _, err := FromJSON("hi", types.Int{}); err == nil {
		t.Errorf("FromJSON of string as Int did not fail")
	}
	if _, err := FromJSON(1.5, types.Int{}); err == nil {
		t.Errorf("FromJSON of non-integral number as Int did not fail")
	}
	if _, err := FromJSON(float64(3), types.Int{}); err != nil {
		t.Errorf("FromJSON of integral float64 as Int -> %v", err)
	}
}
