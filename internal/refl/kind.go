package refl

// Kind discriminates the variants of a Type descriptor.
type Kind uint8

const (
	KindArithmetic Kind = iota
	KindEnum
	KindClass
	KindPointer
	KindVector
	KindMap
	KindSet
	KindVoid
)

var kindNames = [...]string{
	KindArithmetic: "arithmetic",
	KindEnum:       "enum",
	KindClass:      "class",
	KindPointer:    "pointer",
	KindVector:     "vector",
	KindMap:        "map",
	KindSet:        "set",
	KindVoid:       "void",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsContainer reports whether k is one of the container kinds.
func (k Kind) IsContainer() bool {
	return k == KindVector || k == KindMap || k == KindSet
}

// ArithKind classifies an arithmetic descriptor by storage class.
type ArithKind uint8

const (
	ArithUnknown ArithKind = iota
	ArithBool
	ArithChar
	ArithShort
	ArithInt
	ArithLong
	ArithLongLong
	ArithFloat
	ArithDouble
)

var arithNames = [...]string{
	ArithUnknown:  "unknown",
	ArithBool:     "bool",
	ArithChar:     "char",
	ArithShort:    "short",
	ArithInt:      "int",
	ArithLong:     "long",
	ArithLongLong: "long long",
	ArithFloat:    "float",
	ArithDouble:   "double",
}

func (k ArithKind) String() string {
	if int(k) < len(arithNames) {
		return arithNames[k]
	}
	return "unknown"
}

// Mode is the ownership mode of an Any.
type Mode uint8

const (
	ModeEmpty Mode = iota
	ModeCopy
	ModeMove
	ModeRef
	ModeConstRef
)

var modeNames = [...]string{
	ModeEmpty:    "empty",
	ModeCopy:     "copy",
	ModeMove:     "move",
	ModeRef:      "ref",
	ModeConstRef: "cref",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Owns reports whether values in this mode own their storage.
func (m Mode) Owns() bool { return m == ModeCopy || m == ModeMove }
