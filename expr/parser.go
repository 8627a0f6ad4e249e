package expr

import "github.com/oarkflow/schemacore/value"

// parser turns a token stream into an AST, implementing the
// precedence table in (tightest first): unary not/-, * /, + -,
// comparisons, and, or, ternary.
type parser struct {
	lex  *lexer
	tok  token
	peek bool
	err  error
}

// Parse parses a single expression from src and returns its AST. It
// rejects empty input, unclosed strings/braces, trailing operators and
// invalid identifiers parser contract.
func Parse(src string) (Node, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, newErr(ErrParse, 0, "empty expression")
	}
	n, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, newErr(ErrParse, p.tok.pos, "unexpected trailing input")
	}
	return n, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) isKeyword(kw string) bool {
	return p.tok.kind == tokIdent && p.tok.text == kw
}

func (p *parser) parseTernary() (Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("if") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		cond, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.isKeyword("else") {
			return nil, newErr(ErrParse, p.tok.pos, "expected 'else' in ternary expression")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseExpr, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		return Ternary{Cond: cond, Then: left, Else: elseExpr}, nil
	}
	return left, nil
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.tok.kind {
		case tokEq:
			op = "=="
		case tokNe:
			op = "!="
		case tokLt:
			op = "<"
		case tokLe:
			op = "<="
		case tokGt:
			op = ">"
		case tokGe:
			op = ">="
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdd() (Node, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := "+"
		if p.tok.kind == tokMinus {
			op = "-"
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseMul() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := "*"
		if p.tok.kind == tokSlash {
			op = "/"
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.isKeyword("not") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: "not", Expr: e}, nil
	}
	if p.tok.kind == tokMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: "-", Expr: e}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokDot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokIdent {
			return nil, newErr(ErrParse, p.tok.pos, "expected field name after '.'")
		}
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		n = Field{Base: n, Name: name}
	}
	return n, nil
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.tok.kind {
	case tokInt:
		v := p.tok.ival
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Literal{Value: value.Int(v)}, nil
	case tokFloat:
		v := p.tok.fval
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Literal{Value: value.Float(v)}, nil
	case tokString:
		v := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Literal{Value: value.String(v)}, nil
	case tokVar:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Var{Name: name}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, newErr(ErrParse, p.tok.pos, "expected ')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return n, nil
	case tokIdent:
		name := p.tok.text
		switch name {
		case "true":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return Literal{Value: value.Bool(true)}, nil
		case "false":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return Literal{Value: value.Bool(false)}, nil
		case "null":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return Literal{Value: value.Null()}, nil
		case "and", "or", "not", "if", "else":
			return nil, newErr(ErrParse, p.tok.pos, "unexpected keyword %q", name)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokLParen {
			return nil, newErr(ErrParse, p.tok.pos, "unexpected identifier %q (did you mean {%s}?)", name, name)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		var args []Node
		if p.tok.kind != tokRParen {
			for {
				arg, err := p.parseTernary()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.tok.kind == tokComma {
					if err := p.advance(); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
		}
		if p.tok.kind != tokRParen {
			return nil, newErr(ErrParse, p.tok.pos, "expected ')' to close call to %q", name)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Call{Name: name, Args: args}, nil
	case tokEOF:
		return nil, newErr(ErrParse, p.tok.pos, "unexpected end of expression")
	default:
		return nil, newErr(ErrParse, p.tok.pos, "unexpected token")
	}
}
