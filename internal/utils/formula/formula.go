// Package formula evaluates journal template amount formulas.
//
// A formula combines named decimal variables and numeric literals with
// + - * / and parentheses, e.g. "amount", "amount * 0.11", "gross - deductions".
// All arithmetic runs on shopspring decimals; the result is rounded to two
// decimal places, half-up, once after the full expression is evaluated.
package formula

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownVariable indicates the formula references a name absent from the environment.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrDivisionByZero indicates a division whose divisor evaluated to zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrSyntax indicates a malformed expression.
	ErrSyntax = errors.New("invalid formula syntax")
)

// Env is the variable environment a formula is evaluated against. SIMPLE
// templates provide at least "amount"; DETAILED templates add their named
// variables.
type Env map[string]decimal.Decimal

// Evaluate parses and evaluates formula against env. A blank formula is
// shorthand for "amount". The result carries exactly two decimal places.
func Evaluate(formulaStr string, env Env) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(formulaStr)
	if trimmed == "" {
		trimmed = "amount"
	}

	root, err := parse(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("formula %q: %w", trimmed, err)
	}

	result, err := root.eval(env)
	if err != nil {
		return decimal.Zero, fmt.Errorf("formula %q: %w", trimmed, err)
	}

	// Single half-up rounding after full evaluation, never per sub-operation.
	return result.Round(2), nil
}

// Validate checks a formula for syntax errors without evaluating it.
// Variable names are not checked; they are only resolvable at posting time.
func Validate(formulaStr string) error {
	trimmed := strings.TrimSpace(formulaStr)
	if trimmed == "" {
		return nil
	}
	if _, err := parse(trimmed); err != nil {
		return fmt.Errorf("formula %q: %w", trimmed, err)
	}
	return nil
}

// --- AST ---

type node interface {
	eval(env Env) (decimal.Decimal, error)
}

type numberNode struct {
	value decimal.Decimal
}

func (n numberNode) eval(Env) (decimal.Decimal, error) {
	return n.value, nil
}

type variableNode struct {
	name string
}

func (n variableNode) eval(env Env) (decimal.Decimal, error) {
	value, ok := env[n.name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownVariable, n.name)
	}
	return value, nil
}

type unaryNode struct {
	operand node
}

func (n unaryNode) eval(env Env) (decimal.Decimal, error) {
	value, err := n.operand.eval(env)
	if err != nil {
		return decimal.Zero, err
	}
	return value.Neg(), nil
}

type binaryNode struct {
	op          rune
	left, right node
}

func (n binaryNode) eval(env Env) (decimal.Decimal, error) {
	left, err := n.left.eval(env)
	if err != nil {
		return decimal.Zero, err
	}
	right, err := n.right.eval(env)
	if err != nil {
		return decimal.Zero, err
	}
	switch n.op {
	case '+':
		return left.Add(right), nil
	case '-':
		return left.Sub(right), nil
	case '*':
		return left.Mul(right), nil
	case '/':
		if right.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return left.Div(right), nil
	}
	return decimal.Zero, fmt.Errorf("%w: unknown operator %q", ErrSyntax, n.op)
}

// --- Parser ---

// parse builds the AST for a formula using recursive descent with standard
// operator precedence: unary minus, then * /, then + -.
func parse(input string) (node, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, tok.text)
	}
	return root, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *parser) parseExpression() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOperator || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: rune(tok.text[0]), left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOperator || (tok.text != "*" && tok.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: rune(tok.text[0]), left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	if tok := p.peek(); tok.kind == tokenOperator && tok.text == "-" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		value, err := decimal.NewFromString(tok.text)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, tok.text)
		}
		return numberNode{value: value}, nil
	case tokenIdentifier:
		return variableNode{name: tok.text}, nil
	case tokenLeftParen:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRightParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}
		return inner, nil
	case tokenEOF:
		return nil, fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, tok.text)
	}
}

// --- Lexer ---

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdentifier
	tokenOperator
	tokenLeftParen
	tokenRightParen
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			tokens = append(tokens, token{tokenLeftParen, "("})
			i++
		case c == ')':
			tokens = append(tokens, token{tokenRightParen, ")"})
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, token{tokenOperator, string(c)})
			i++
		case c >= '0' && c <= '9':
			start := i
			seenDot := false
			for i < len(runes) && (runes[i] >= '0' && runes[i] <= '9' || runes[i] == '.' && !seenDot) {
				if runes[i] == '.' {
					seenDot = true
				}
				i++
			}
			tokens = append(tokens, token{tokenNumber, string(runes[start:i])})
		case isIdentStart(c):
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			tokens = append(tokens, token{tokenIdentifier, string(runes[start:i])})
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrSyntax, c)
		}
	}
	return append(tokens, token{tokenEOF, ""}), nil
}

func isIdentStart(c rune) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
