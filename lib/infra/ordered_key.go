package infra

// Signed is a constraint that permits any signed integer type.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey constrains the key types a tree knows how to sort.
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// OrderedKeyComparator reports the order of i relative to j.
//  1. i == j (return 0)
//  2. i > j (return 1), turn to the right part.
//  3. i < j (return -1), turn to the left part.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

// CompareKey is the default ascending comparator.
func CompareKey[K OrderedKey](i, j K) int64 {
	if i == j {
		return 0
	} else if i < j {
		return -1
	}
	return 1
}
