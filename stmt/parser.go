package stmt

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports one unparseable line. Parsing recovers: the line is
// skipped and reported, and the remaining lines are still parsed.
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parser turns source text into an ordered statement sequence.
// Parsing is purely lexical and line-based: no block structure, no
// expression evaluation beyond literal recognition.
type Parser struct{}

// NewParser creates a statement parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse maps every non-empty, non-comment line to exactly one Statement
// or one SyntaxError. All errors are collected; the successfully parsed
// statements are returned alongside them so the caller can execute the
// valid subset.
func (p *Parser) Parse(src string) ([]Statement, []*SyntaxError) {
	var stmts []Statement
	var errs []*SyntaxError

	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		lineNo := i + 1
		fail := func(msg string) {
			errs = append(errs, &SyntaxError{Line: lineNo, Text: line, Msg: msg})
		}

		if !strings.HasSuffix(line, ";") {
			fail("missing ';'")
			continue
		}
		body := strings.TrimSpace(strings.TrimSuffix(line, ";"))
		if body == "" {
			fail("empty statement")
			continue
		}

		var s Statement
		var err error
		switch {
		// Calls classify first: a quoted call argument may contain '='.
		case p.isCall(body):
			s, err = p.parseCall(body)
		case p.isArrayDecl(body):
			s, err = p.parseArrayDecl(body)
		case p.isDecl(body):
			s, err = p.parseDecl(body)
		default:
			err = fmt.Errorf("unrecognized statement")
		}
		if err != nil {
			fail(err.Error())
			continue
		}
		s.Line = lineNo
		stmts = append(stmts, s)
	}

	return stmts, errs
}

// isArrayDecl checks for `<T>[] <name> = ...`.
func (p *Parser) isArrayDecl(body string) bool {
	first, _, ok := strings.Cut(body, " ")
	return ok && strings.HasSuffix(first, "[]") && strings.Contains(body, "=")
}

// isDecl checks for `<Type> <name> = ...`.
func (p *Parser) isDecl(body string) bool {
	return strings.Contains(body, "=")
}

// isCall checks for `<name>.<op>(...)`.
func (p *Parser) isCall(body string) bool {
	dot := strings.IndexByte(body, '.')
	paren := strings.IndexByte(body, '(')
	return dot > 0 && paren > dot && strings.HasSuffix(body, ")")
}

// parseDecl parses `<Type> <name> = <literal-or-constructor>`.
func (p *Parser) parseDecl(body string) (Statement, error) {
	lhs, rhs, _ := strings.Cut(body, "=")
	typeWord, name, ok := splitDecl(strings.TrimSpace(lhs))
	if !ok {
		return Statement{}, fmt.Errorf("expected '<Type> <name> = ...'")
	}

	tag := ParseTypeTag(typeWord)
	if tag == TypeUnknown {
		return Statement{}, fmt.Errorf("unsupported type %q", typeWord)
	}
	if !isIdentifier(name) {
		return Statement{}, fmt.Errorf("invalid variable name %q", name)
	}

	s := Statement{Op: OpDeclare, Type: tag, Name: name}
	rhs = strings.TrimSpace(rhs)
	if rhs == "" {
		return Statement{}, fmt.Errorf("missing initializer")
	}

	if strings.HasPrefix(rhs, "new ") {
		return p.parseConstructor(s, strings.TrimSpace(rhs[len("new "):]))
	}

	lit := ParseLiteral(rhs)
	if err := checkLiteralType(tag, lit); err != nil {
		return Statement{}, err
	}
	s.CtorArg = &lit
	return s, nil
}

// splitDecl separates a declaration lhs into its type word and variable
// name. The name is the last space-separated token; the type word may
// itself contain spaces inside a generic parameter
// (`HashMap<String, Integer> m`).
func splitDecl(lhs string) (typeWord, name string, ok bool) {
	i := strings.LastIndexByte(lhs, ' ')
	if i < 0 {
		return "", "", false
	}
	typeWord = strings.TrimSpace(lhs[:i])
	name = lhs[i+1:]
	return typeWord, name, typeWord != "" && name != ""
}

// parseConstructor parses the `new <Type>(<optional arg>)` initializer.
func (p *Parser) parseConstructor(s Statement, rest string) (Statement, error) {
	paren := strings.IndexByte(rest, '(')
	if paren < 0 || !strings.HasSuffix(rest, ")") {
		return Statement{}, fmt.Errorf("malformed constructor")
	}
	ctorTag := ParseTypeTag(strings.TrimSpace(rest[:paren]))
	if ctorTag != s.Type {
		return Statement{}, fmt.Errorf("constructor type does not match declared type %s", s.Type)
	}
	if s.Type.IsPrimitive() {
		return Statement{}, fmt.Errorf("primitive type %s cannot be constructed with new", s.Type)
	}

	s.NewObject = true
	inner := strings.TrimSpace(rest[paren+1 : len(rest)-1])
	args := splitArgs(inner)
	switch {
	case len(args) == 0:
		if s.Type == TypeString || s.Type == TypeInteger {
			return Statement{}, fmt.Errorf("new %s requires a value argument", s.Type)
		}
	case len(args) == 1 && (s.Type == TypeString || s.Type == TypeInteger):
		lit := ParseLiteral(args[0])
		if err := checkLiteralType(s.Type, lit); err != nil {
			return Statement{}, err
		}
		s.CtorArg = &lit
	default:
		return Statement{}, fmt.Errorf("constructor for %s takes no arguments", s.Type)
	}
	return s, nil
}

// parseArrayDecl parses `<T>[] <name> = new <T>[<size>]` and
// `<T>[] <name> = {<comma-separated literals>}`.
func (p *Parser) parseArrayDecl(body string) (Statement, error) {
	lhs, rhs, _ := strings.Cut(body, "=")
	fields := strings.Fields(strings.TrimSpace(lhs))
	if len(fields) != 2 {
		return Statement{}, fmt.Errorf("expected '<Type>[] <name> = ...'")
	}

	elemWord := strings.TrimSuffix(fields[0], "[]")
	tag := ParseTypeTag(elemWord)
	if tag == TypeUnknown || tag.IsStructure() {
		return Statement{}, fmt.Errorf("unsupported array element type %q", elemWord)
	}
	name := fields[1]
	if !isIdentifier(name) {
		return Statement{}, fmt.Errorf("invalid variable name %q", name)
	}

	s := Statement{Op: OpDeclareArray, Type: tag, Name: name}
	rhs = strings.TrimSpace(rhs)

	if strings.HasPrefix(rhs, "{") {
		if !strings.HasSuffix(rhs, "}") {
			return Statement{}, fmt.Errorf("malformed array initializer")
		}
		for _, tok := range splitArgs(rhs[1 : len(rhs)-1]) {
			lit := ParseLiteral(tok)
			if err := checkLiteralType(tag, lit); err != nil {
				return Statement{}, err
			}
			s.ArrayInit = append(s.ArrayInit, lit)
		}
		s.ArrayLen = len(s.ArrayInit)
		return s, nil
	}

	if !strings.HasPrefix(rhs, "new ") {
		return Statement{}, fmt.Errorf("array initializer must be 'new %s[n]' or '{...}'", elemWord)
	}
	rest := strings.TrimSpace(rhs[len("new "):])
	open := strings.IndexByte(rest, '[')
	if open < 0 || !strings.HasSuffix(rest, "]") {
		return Statement{}, fmt.Errorf("malformed array constructor")
	}
	if ParseTypeTag(strings.TrimSpace(rest[:open])) != tag {
		return Statement{}, fmt.Errorf("array constructor type does not match %s[]", tag)
	}
	size, err := strconv.Atoi(strings.TrimSpace(rest[open+1 : len(rest)-1]))
	if err != nil || size < 0 {
		return Statement{}, fmt.Errorf("invalid array size")
	}
	s.ArrayLen = size
	return s, nil
}

// parseCall parses `<recv>.<method>(<0..2 args>)`.
func (p *Parser) parseCall(body string) (Statement, error) {
	dot := strings.IndexByte(body, '.')
	recv := strings.TrimSpace(body[:dot])
	if !isIdentifier(recv) {
		return Statement{}, fmt.Errorf("invalid receiver %q", recv)
	}

	rest := body[dot+1:]
	paren := strings.IndexByte(rest, '(')
	if paren < 0 || !strings.HasSuffix(rest, ")") {
		return Statement{}, fmt.Errorf("malformed method call")
	}
	methodName := strings.TrimSpace(rest[:paren])
	method, ok := ParseMethod(methodName)
	if !ok {
		return Statement{}, fmt.Errorf("unknown method %q", methodName)
	}

	s := Statement{Op: OpCall, Recv: recv, Method: method}
	for _, tok := range splitArgs(rest[paren+1 : len(rest)-1]) {
		s.Args = append(s.Args, ParseLiteral(tok))
	}
	if err := checkArity(method, len(s.Args)); err != nil {
		return Statement{}, err
	}
	return s, nil
}

// checkArity validates the argument count per canonical method.
func checkArity(m Method, n int) error {
	var min, max int
	switch m {
	case MethodPut, MethodSet:
		min, max = 2, 2
	case MethodAdd, MethodPush, MethodReset:
		min, max = 1, 1
	case MethodPop:
		min, max = 0, 0
	case MethodRemove:
		min, max = 0, 1
	}
	if n < min || n > max {
		return fmt.Errorf("%s expects %d-%d argument(s), got %d", m, min, max, n)
	}
	return nil
}

// checkLiteralType validates a literal against a declared type.
func checkLiteralType(tag TypeTag, lit Literal) error {
	ok := true
	switch tag {
	case TypeInt, TypeInteger:
		ok = lit.Kind == LitInt
	case TypeDouble:
		ok = lit.IsNumeric()
	case TypeBoolean:
		ok = lit.Kind == LitBool
	case TypeChar:
		ok = lit.Kind == LitChar
	case TypeString:
		ok = lit.Kind == LitString
	default:
		return fmt.Errorf("%s requires a constructor", tag)
	}
	if !ok {
		return fmt.Errorf("literal %s is not assignable to %s", lit, tag)
	}
	return nil
}

// splitArgs splits a comma-separated argument list, respecting double and
// single quotes. Blank input yields no arguments.
func splitArgs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var args []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == ',':
			args = append(args, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	args = append(args, strings.TrimSpace(cur.String()))
	return args
}

// isIdentifier reports whether s is a valid variable name.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		alpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if i == 0 && !alpha {
			return false
		}
		if !alpha && !digit {
			return false
		}
	}
	return true
}
