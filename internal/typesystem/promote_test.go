package typesystem

import "testing"

func TestPromote(t *testing.T) {
	tests := []struct {
		op   string
		l, r PrimitiveKind
		want Type
	}{
		{"+", KindNumber, KindNumber, TNumber},
		{"-", KindNumber, KindNumber, TNumber},

		{"+", KindTime, KindNumber, TTime},
		{"+", KindNumber, KindTime, TTime},
		{"+", KindDate, KindNumber, TDate},
		{"+", KindNumber, KindDate, TDate},
		{"+", KindDate, KindTime, TDateTime},
		{"+", KindTime, KindDate, TDateTime},
		{"+", KindDateTime, KindNumber, TDateTime},
		{"+", KindNumber, KindDateTime, TDateTime},

		{"-", KindTime, KindNumber, TTime},
		{"-", KindDate, KindNumber, TDate},
		{"-", KindDateTime, KindNumber, TDateTime},
		{"-", KindDate, KindDate, TNumber},
		{"-", KindTime, KindTime, TNumber},
		{"-", KindDateTime, KindDateTime, TNumber},
	}
	for _, tt := range tests {
		got, ok := Promote(tt.op, tt.l, tt.r)
		if !ok || !Equal(got, tt.want) {
			t.Errorf("Promote(%q, %v, %v) = %v/%v, want %s", tt.op, tt.l, tt.r, got, ok, tt.want)
		}
	}
}

func TestPromoteRejections(t *testing.T) {
	bad := []struct {
		op   string
		l, r PrimitiveKind
	}{
		// Subtraction is not symmetric: a number cannot lose a date.
		{"-", KindNumber, KindDate},
		{"-", KindNumber, KindTime},
		{"-", KindNumber, KindDateTime},
		// Mixed date/time subtraction has no meaning.
		{"-", KindDate, KindTime},
		{"-", KindDateTime, KindDate},
		// Strings and booleans never promote.
		{"+", KindString, KindNumber},
		{"+", KindBoolean, KindBoolean},
		{"*", KindDate, KindNumber},
	}
	for _, tt := range bad {
		if got, ok := Promote(tt.op, tt.l, tt.r); ok {
			t.Errorf("Promote(%q, %v, %v) = %s, want rejection", tt.op, tt.l, tt.r, got)
		}
	}
}

func TestIsDateTimeKind(t *testing.T) {
	for _, k := range []PrimitiveKind{KindDate, KindTime, KindDateTime} {
		if !IsDateTimeKind(k) {
			t.Errorf("IsDateTimeKind(%v) = false", k)
		}
	}
	for _, k := range []PrimitiveKind{KindString, KindNumber, KindBoolean} {
		if IsDateTimeKind(k) {
			t.Errorf("IsDateTimeKind(%v) = true", k)
		}
	}
}
