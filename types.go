package cinit

import "fmt"

// Kind enumerates the handful of C type categories the initializer
// engine needs to distinguish: struct, union, array, char, void,
// function, integer.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindLDouble
	KindPointer
	KindArray
	KindStruct
	KindUnion
	KindFunction
)

func (k Kind) String() string {
	names := [...]string{"void", "_Bool", "char", "short", "int", "long",
		"float", "double", "long double", "pointer", "array", "struct", "union", "function"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// Member is one field of a struct or union type tree: its name, its
// own sub-type, its byte Offset from the start of the owning
// aggregate, and, for bit-field slots, FieldOffset/FieldWidth in bits
// from the start of the storage unit denoted by Type.
type Member struct {
	Name        string
	Type        *Type
	Offset      int64
	FieldOffset int
	FieldWidth  int
}

func (m Member) IsBitfield() bool { return m.FieldWidth > 0 }

// Type is the concrete realization of the engine's type tree. Scalar
// kinds are leaves; Array wraps Elem with a (possibly incomplete, Len
// < 0) length; Struct/Union carry a Members list laid out by the
// owning builder (BuildStruct/BuildUnion).
type Type struct {
	Kind    Kind
	Size    int64 // 0 for an incomplete/flexible array
	Elem    *Type // array element type, or pointer pointee
	Len     int64 // array length; -1 means incomplete
	Members []Member
	Tag     string
}

var (
	VoidType   = &Type{Kind: KindVoid, Size: 0}
	BoolType   = &Type{Kind: KindBool, Size: 1}
	CharType   = &Type{Kind: KindChar, Size: 1}
	ShortType  = &Type{Kind: KindShort, Size: 2}
	IntType    = &Type{Kind: KindInt, Size: 4}
	LongType   = &Type{Kind: KindLong, Size: 8}
	FloatType  = &Type{Kind: KindFloat, Size: 4}
	DoubleType = &Type{Kind: KindDouble, Size: 8}
)

func NewPointerType(elem *Type) *Type {
	return &Type{Kind: KindPointer, Size: 8, Elem: elem}
}

// NewArrayType mirrors type_create_array(elem, n): n < 0 produces an
// incomplete (flexible) array of size 0.
func NewArrayType(elem *Type, n int64) *Type {
	t := &Type{Kind: KindArray, Elem: elem, Len: n}
	if n >= 0 {
		t.Size = elem.SizeOf() * n
	}
	return t
}

func (t *Type) IsStruct() bool         { return t.Kind == KindStruct }
func (t *Type) IsUnion() bool          { return t.Kind == KindUnion }
func (t *Type) IsStructOrUnion() bool  { return t.IsStruct() || t.IsUnion() }
func (t *Type) IsArray() bool          { return t.Kind == KindArray }
func (t *Type) IsChar() bool           { return t.Kind == KindChar }
func (t *Type) IsVoid() bool           { return t.Kind == KindVoid }
func (t *Type) IsFunction() bool       { return t.Kind == KindFunction }
func (t *Type) IsPointer() bool        { return t.Kind == KindPointer }
func (t *Type) IsIntegerOrPointer() bool {
	return t.IsInteger() || t.IsPointer()
}

func (t *Type) IsInteger() bool {
	switch t.Kind {
	case KindBool, KindChar, KindShort, KindInt, KindLong:
		return true
	default:
		return false
	}
}

// IsCompatibleUnqualified implements is_compatible_unqualified(a,b),
// used by the whole-object aggregate-assignment shortcut. Struct/union
// identity is by pointer (this module never duplicates a declared
// aggregate type), scalars by Kind, array/pointer by recursing on the
// element type.
func (t *Type) IsCompatibleUnqualified(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindArray, KindPointer:
		return t.Elem.IsCompatibleUnqualified(other.Elem)
	case KindStruct, KindUnion:
		return false // distinct aggregate declarations are never compatible here
	default:
		return true
	}
}

func (t *Type) NMembers() int { return len(t.Members) }

func (t *Type) Member(i int) *Member { return &t.Members[i] }

// FindMember implements find_type_member(T, name, &i): it returns the
// member and its index, starting the scan from startAt (so a resync
// after a designator can continue from the matched position).
func (t *Type) FindMember(name string, startAt int) (*Member, int, bool) {
	for i := startAt; i < len(t.Members); i++ {
		if t.Members[i].Name == name {
			return &t.Members[i], i, true
		}
	}
	for i := 0; i < startAt; i++ {
		if t.Members[i].Name == name {
			return &t.Members[i], i, true
		}
	}
	return nil, 0, false
}

// Next implements type_next(array): the element type of an array.
func (t *Type) Next() *Type { return t.Elem }

// ArrayLen implements type_array_len(array).
func (t *Type) ArrayLen() int64 { return t.Len }

// SetArrayLength implements set_array_length(T, n), patching an
// incomplete array's length once the initializer's high-water mark is
// known.
func (t *Type) SetArrayLength(n int64) {
	t.Len = n
	t.Size = t.Elem.SizeOf() * n
}

// SizeOf implements size_of(T).
func (t *Type) SizeOf() int64 { return t.Size }

func (t *Type) String() string {
	switch t.Kind {
	case KindArray:
		return fmt.Sprintf("%s[%d]", t.Elem, t.Len)
	case KindPointer:
		return fmt.Sprintf("%s*", t.Elem)
	case KindStruct:
		return fmt.Sprintf("struct %s", t.Tag)
	case KindUnion:
		return fmt.Sprintf("union %s", t.Tag)
	default:
		return t.Kind.String()
	}
}

// FieldSpec describes one struct/union member before layout: a plain
// field if BitWidth == 0, a bit-field of BitWidth bits otherwise. The
// bit-field's storage unit size is taken from Type.SizeOf(), matching
// how C packs consecutive compatible-typed bit-fields into one
// storage unit before spilling to the next.
type FieldSpec struct {
	Name     string
	Type     *Type
	BitWidth int
}

// BuildStruct lays out members at natural alignment (scalars align to
// their own size, aggregates to their widest member). Bit-fields pack
// sequentially into a storage unit sized by the field's declared Type
// for as long as they fit, then spill into a fresh unit, the same
// storage-unit bookkeeping the zero-fill walk in postprocess.go later
// has to undo.
func BuildStruct(tag string, fields []FieldSpec) *Type {
	var (
		members []Member
		offset  int64
		align   int64 = 1

		bitUnitOffset int64 = -1
		bitUnitSize   int64
		bitPos        int
	)
	flushBits := func() {
		if bitUnitOffset >= 0 {
			offset = bitUnitOffset + bitUnitSize
			bitUnitOffset = -1
			bitPos = 0
		}
	}
	for _, f := range fields {
		a := alignOf(f.Type)
		if a > align {
			align = a
		}
		if f.BitWidth > 0 {
			unitSize := f.Type.SizeOf()
			if bitUnitOffset < 0 || bitUnitSize != unitSize || bitPos+f.BitWidth > int(unitSize*8) {
				flushBits()
				offset = alignUp(offset, a)
				bitUnitOffset = offset
				bitUnitSize = unitSize
				bitPos = 0
			}
			members = append(members, Member{
				Name:        f.Name,
				Type:        f.Type,
				Offset:      bitUnitOffset,
				FieldOffset: bitPos,
				FieldWidth:  f.BitWidth,
			})
			bitPos += f.BitWidth
			continue
		}

		flushBits()
		offset = alignUp(offset, a)
		members = append(members, Member{Name: f.Name, Type: f.Type, Offset: offset})
		offset += f.Type.SizeOf()
	}
	flushBits()
	size := alignUp(offset, align)
	return &Type{Kind: KindStruct, Size: size, Members: members, Tag: tag}
}

// BuildUnion lays out every member at offset 0, sized to the widest
// member, matching C union layout.
func BuildUnion(tag string, fields []FieldSpec) *Type {
	var members []Member
	var size int64
	for _, f := range fields {
		members = append(members, Member{Name: f.Name, Type: f.Type, FieldOffset: 0, FieldWidth: f.BitWidth})
		if s := f.Type.SizeOf(); s > size {
			size = s
		}
	}
	return &Type{Kind: KindUnion, Size: size, Members: members, Tag: tag}
}

// BuildFlexibleStruct is BuildStruct plus a trailing flexible array
// member (T x[]) represented as a zero-length incomplete array at the
// tail.
func BuildFlexibleStruct(tag string, fields []FieldSpec, flexName string, flexElem *Type) *Type {
	t := BuildStruct(tag, fields)
	t.Members = append(t.Members, Member{Name: flexName, Type: NewArrayType(flexElem, -1), Offset: t.Size})
	return t
}

func alignOf(t *Type) int64 {
	switch t.Kind {
	case KindArray:
		return alignOf(t.Elem)
	case KindStruct, KindUnion:
		var a int64 = 1
		for _, m := range t.Members {
			if ma := alignOf(m.Type); ma > a {
				a = ma
			}
		}
		return a
	default:
		if t.Size == 0 {
			return 1
		}
		return t.Size
	}
}

func alignUp(off, align int64) int64 {
	if align <= 1 {
		return off
	}
	return (off + align - 1) / align * align
}
