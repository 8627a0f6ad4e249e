package expr

import (
	"strconv"
	"strings"
)

// tokenKind enumerates the lexical categories the hand-rolled scanner
// produces, grounded on the single-character-lookahead
// JSONParser in jsonschema/v2/parser.go (a struct carrying data/pos
// with parseX methods), generalized here into a conventional
// scan-then-parse pipeline since the expression grammar has operators
// the JSON grammar does not.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokInt
	tokFloat
	tokString
	tokVar   // {name}
	tokIdent // bare identifier: function name or keyword
	tokLParen
	tokRParen
	tokComma
	tokDot
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
)

type token struct {
	kind tokenKind
	text string
	ival int64
	fval float64
	pos  int
}

type lexer struct {
	src []byte
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: []byte(src)}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentPart(b byte) bool { return isIdentStart(b) || isDigit(b) }

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	ch := l.src[l.pos]

	switch ch {
	case '(':
		l.pos++
		return token{kind: tokLParen, pos: start}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen, pos: start}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, pos: start}, nil
	case '.':
		l.pos++
		return token{kind: tokDot, pos: start}, nil
	case '+':
		l.pos++
		return token{kind: tokPlus, pos: start}, nil
	case '-':
		l.pos++
		return token{kind: tokMinus, pos: start}, nil
	case '*':
		l.pos++
		return token{kind: tokStar, pos: start}, nil
	case '/':
		l.pos++
		return token{kind: tokSlash, pos: start}, nil
	case '=':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokEq, pos: start}, nil
		}
		return token{}, newErr(ErrParse, start, "unexpected character '='")
	case '!':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokNe, pos: start}, nil
		}
		return token{}, newErr(ErrParse, start, "unexpected character '!'")
	case '<':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokLe, pos: start}, nil
		}
		l.pos++
		return token{kind: tokLt, pos: start}, nil
	case '>':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokGe, pos: start}, nil
		}
		l.pos++
		return token{kind: tokGt, pos: start}, nil
	case '{':
		return l.scanVar()
	case '"':
		return l.scanString()
	}

	if isDigit(ch) {
		return l.scanNumber()
	}
	if isIdentStart(ch) {
		return l.scanIdent()
	}
	return token{}, newErr(ErrParse, start, "unexpected character %q", string(ch))
}

func (l *lexer) scanVar() (token, error) {
	start := l.pos
	l.pos++ // consume '{'
	nameStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '}' {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{}, newErr(ErrParse, start, "unclosed '{' variable reference")
	}
	name := string(l.src[nameStart:l.pos])
	l.pos++ // consume '}'
	if name == "" {
		return token{}, newErr(ErrParse, start, "empty variable reference")
	}
	return token{kind: tokVar, text: name, pos: start}, nil
}

func (l *lexer) scanString() (token, error) {
	start := l.pos
	l.pos++ // consume opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, newErr(ErrParse, start, "unclosed string literal")
		}
		ch := l.src[l.pos]
		if ch == '"' {
			l.pos++
			return token{kind: tokString, text: sb.String(), pos: start}, nil
		}
		if ch == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return token{}, newErr(ErrParse, start, "unclosed escape in string literal")
			}
			switch l.src[l.pos] {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				return token{}, newErr(ErrParse, l.pos, "invalid escape character %q", string(l.src[l.pos]))
			}
			l.pos++
			continue
		}
		sb.WriteByte(ch)
		l.pos++
	}
}

func (l *lexer) scanNumber() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		isFloat = true
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	text := string(l.src[start:l.pos])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, newErr(ErrParse, start, "invalid float literal %q", text)
		}
		return token{kind: tokFloat, fval: f, pos: start}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, newErr(ErrParse, start, "invalid integer literal %q", text)
	}
	return token{kind: tokInt, ival: i, pos: start}, nil
}

func (l *lexer) scanIdent() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.src[start:l.pos]), pos: start}, nil
}
