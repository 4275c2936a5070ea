package service

import (
	"errors"
	"testing"
)

func TestParseOperation(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"add", OpAdd, false},
		{"Addition", OpAdd, false},
		{"SUB", OpSubtract, false},
		{"subtraction", OpSubtract, false},
		{" multiply ", OpMultiply, false},
		{"mul", OpMultiply, false},
		{"div", OpDivide, false},
		{"Division", OpDivide, false},
		{"modulo", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseOperation(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseOperation(%q): expected ErrValidation, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOperation(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseOperation(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCompute(t *testing.T) {
	cases := []struct {
		op   string
		a, b float64
		want float64
	}{
		{OpAdd, 2, 3, 5},
		{OpAdd, -2, 2, 0},
		{OpSubtract, 10, 4, 6},
		{OpMultiply, 4, 5, 20},
		{OpMultiply, 4, 0, 0},
		{OpDivide, 9, 3, 3},
		{OpDivide, 1, 4, 0.25},
	}

	for _, tc := range cases {
		got, err := Compute(tc.op, tc.a, tc.b)
		if err != nil {
			t.Errorf("Compute(%s, %v, %v): unexpected error %v", tc.op, tc.a, tc.b, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Compute(%s, %v, %v) = %v, want %v", tc.op, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompute_DivisionByZero(t *testing.T) {
	for _, a := range []float64{0, 1, -3.5, 1e9} {
		if _, err := Compute(OpDivide, a, 0); !errors.Is(err, ErrValidation) {
			t.Errorf("Compute(divide, %v, 0): expected ErrValidation, got %v", a, err)
		}
	}
}

func TestCompute_UnknownOperation(t *testing.T) {
	if _, err := Compute("power", 2, 3); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
