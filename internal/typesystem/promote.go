package typesystem

// Promote applies the binary "+" / "-" promotion rules for primitive
// operands. ok=false means the combination is invalid: number-with-
// date/time combinations outside the table are type errors, not
// silent Any.
//
//	time ± number => time      date ± number => date
//	number + time => time      number + date => date
//	date + time   => datetime  datetime ± number => datetime
//	date - date   => number    time - time => number
//	datetime - datetime => number
func Promote(op string, l, r PrimitiveKind) (Type, bool) {
	if l == KindNumber && r == KindNumber {
		return TNumber, true
	}

	switch op {
	case "+":
		switch {
		case l == KindTime && r == KindNumber, l == KindNumber && r == KindTime:
			return TTime, true
		case l == KindDate && r == KindNumber, l == KindNumber && r == KindDate:
			return TDate, true
		case l == KindDate && r == KindTime, l == KindTime && r == KindDate:
			return TDateTime, true
		case l == KindDateTime && r == KindNumber, l == KindNumber && r == KindDateTime:
			return TDateTime, true
		}
	case "-":
		switch {
		case l == KindTime && r == KindNumber:
			return TTime, true
		case l == KindDate && r == KindNumber:
			return TDate, true
		case l == KindDateTime && r == KindNumber:
			return TDateTime, true
		case l == KindDate && r == KindDate:
			return TNumber, true
		case l == KindTime && r == KindTime:
			return TNumber, true
		case l == KindDateTime && r == KindDateTime:
			return TNumber, true
		}
	}
	return nil, false
}

// IsDateTimeKind reports whether k is one of the date/time primitives.
func IsDateTimeKind(k PrimitiveKind) bool {
	return k == KindDate || k == KindTime || k == KindDateTime
}
