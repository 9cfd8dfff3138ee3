// Package stmt provides statement definitions and line-based parsing for
// the supported Java-like grammar.
package stmt

import (
	"strconv"
	"strings"
)

// TypeTag identifies a supported declared type.
type TypeTag uint8

// Supported declared types.
const (
	TypeUnknown TypeTag = iota
	TypeInt
	TypeDouble
	TypeBoolean
	TypeChar
	TypeString
	TypeInteger
	TypeArrayList
	TypeLinkedList
	TypeStack
	TypeHashMap
	TypeTreeMap
	TypeLinkedHashMap
	TypeHashSet
	TypeTreeSet
	TypeBST
)

var typeNames = map[string]TypeTag{
	"int":           TypeInt,
	"double":        TypeDouble,
	"boolean":       TypeBoolean,
	"char":          TypeChar,
	"String":        TypeString,
	"Integer":       TypeInteger,
	"ArrayList":     TypeArrayList,
	"LinkedList":    TypeLinkedList,
	"Stack":         TypeStack,
	"HashMap":       TypeHashMap,
	"TreeMap":       TypeTreeMap,
	"LinkedHashMap": TypeLinkedHashMap,
	"HashSet":       TypeHashSet,
	"TreeSet":       TypeTreeSet,
	"BST":           TypeBST,
}

var typeTagNames = func() map[TypeTag]string {
	m := make(map[TypeTag]string, len(typeNames))
	for name, tag := range typeNames {
		m[tag] = name
	}
	return m
}()

// ParseTypeTag resolves a type word to its tag, stripping any
// angle-bracket generic parameter (LinkedList<Integer> -> LinkedList).
func ParseTypeTag(word string) TypeTag {
	if i := strings.IndexByte(word, '<'); i >= 0 {
		word = word[:i]
	}
	return typeNames[word]
}

func (t TypeTag) String() string {
	if s, ok := typeTagNames[t]; ok {
		return s
	}
	return "unknown"
}

// IsPrimitive reports whether the type stores its literal directly on the
// variable, with no heap or pool allocation.
func (t TypeTag) IsPrimitive() bool {
	switch t {
	case TypeInt, TypeDouble, TypeBoolean, TypeChar:
		return true
	}
	return false
}

// IsStructure reports whether the type is a constructed data structure.
func (t TypeTag) IsStructure() bool {
	switch t {
	case TypeArrayList, TypeLinkedList, TypeStack, TypeHashMap, TypeTreeMap,
		TypeLinkedHashMap, TypeHashSet, TypeTreeSet, TypeBST:
		return true
	}
	return false
}

// LiteralKind identifies the variant held by a Literal.
type LiteralKind uint8

// Literal variants.
const (
	LitNull LiteralKind = iota
	LitInt
	LitFloat
	LitBool
	LitChar
	LitString
)

// Literal is a parsed literal argument or initializer.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Bool  bool
	Char  rune
	Str   string
}

// IsNumeric reports whether the literal is an int or float.
func (l Literal) IsNumeric() bool {
	return l.Kind == LitInt || l.Kind == LitFloat
}

func (l Literal) String() string {
	switch l.Kind {
	case LitNull:
		return "null"
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case LitBool:
		return strconv.FormatBool(l.Bool)
	case LitChar:
		return "'" + string(l.Char) + "'"
	case LitString:
		return "\"" + l.Str + "\""
	}
	return "?"
}

// ParseLiteral interprets a single token as a literal. A bare word is a
// string literal unless it parses as a number.
func ParseLiteral(tok string) Literal {
	tok = strings.TrimSpace(tok)
	switch {
	case tok == "null":
		return Literal{Kind: LitNull}
	case tok == "true" || tok == "false":
		return Literal{Kind: LitBool, Bool: tok == "true"}
	case len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"':
		return Literal{Kind: LitString, Str: tok[1 : len(tok)-1]}
	case len(tok) >= 3 && tok[0] == '\'' && tok[len(tok)-1] == '\'':
		return Literal{Kind: LitChar, Char: []rune(tok[1 : len(tok)-1])[0]}
	}
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Literal{Kind: LitInt, Int: v}
	}
	if v, err := strconv.ParseFloat(tok, 64); err == nil {
		return Literal{Kind: LitFloat, Float: v}
	}
	// Unquoted bare word: treated as a string literal.
	return Literal{Kind: LitString, Str: tok}
}

// Op classifies a statement.
type Op uint8

// Statement operations.
const (
	OpUnknown Op = iota
	OpDeclare
	OpDeclareArray
	OpCall
)

// Method is a canonical per-type operation name.
type Method uint8

// Canonical methods. insert/delete parse as aliases of Add/Remove.
const (
	MethodUnknown Method = iota
	MethodAdd
	MethodRemove
	MethodPush
	MethodPop
	MethodPut
	MethodSet
	MethodReset
)

var methodNames = map[string]Method{
	"add":    MethodAdd,
	"insert": MethodAdd,
	"remove": MethodRemove,
	"delete": MethodRemove,
	"push":   MethodPush,
	"pop":    MethodPop,
	"put":    MethodPut,
	"set":    MethodSet,
	"reset":  MethodReset,
}

// ParseMethod resolves a method spelling to its canonical form.
func ParseMethod(name string) (Method, bool) {
	m, ok := methodNames[name]
	return m, ok
}

func (m Method) String() string {
	switch m {
	case MethodAdd:
		return "add"
	case MethodRemove:
		return "remove"
	case MethodPush:
		return "push"
	case MethodPop:
		return "pop"
	case MethodPut:
		return "put"
	case MethodSet:
		return "set"
	case MethodReset:
		return "reset"
	}
	return "unknown"
}

// Statement is one parsed source line. Only the fields for the
// statement's Op are meaningful.
type Statement struct {
	Line int
	Op   Op

	// Declaration fields
	Type      TypeTag
	Name      string
	NewObject bool     // constructor form `new <Type>(...)`
	CtorArg   *Literal // optional single constructor argument

	// Array declaration fields
	ArrayLen  int
	ArrayInit []Literal

	// Call fields
	Recv   string
	Method Method
	Args   []Literal
}
