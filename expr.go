package main

import (
	"fmt"
	"strconv"
)

//
// Expression variants.  The set is closed: the unexported marker
// method keeps anything outside this file from posing as one, and
// evaluate() switches over exactly these three
//

type expression interface {
	String() string
	isExpression()
}

type constantExp struct {
	value int32
}

type identifierExp struct {
	name string
}

type compoundExp struct {
	op  byte
	lhs expression
	rhs expression
}

func (*constantExp) isExpression()   {}
func (*identifierExp) isExpression() {}
func (*compoundExp) isExpression()   {}

func (e *constantExp) String() string {
	return strconv.FormatInt(int64(e.value), 10)
}

func (e *identifierExp) String() string {
	return e.name
}

func (e *compoundExp) String() string {
	return fmt.Sprintf("(%s %c %s)", e.lhs, e.op, e.rhs)
}

//
// Recursive descent over a token slice.  Precedence climbs from
// sum (+ -) to product (* /) to primary, all left associative
//

type exprParser struct {
	tokens []token
	pos    int
}

func parseExpression(tokens []token) (expression, error) {

	p := &exprParser{tokens: tokens}

	exp, err := p.readSum()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t != nil {
		return nil, syntaxError("unexpected %q after expression", t.text)
	}

	return exp, nil
}

func (p *exprParser) peek() *token {

	if p.pos >= len(p.tokens) {
		return nil
	}

	return &p.tokens[p.pos]
}

func (p *exprParser) next() *token {

	t := p.peek()
	if t != nil {
		p.pos++
	}

	return t
}

func (p *exprParser) peekOperator(ops string) byte {

	t := p.peek()
	if t == nil || t.kind != tokOperator {
		return 0
	}

	for i := 0; i < len(ops); i++ {
		if t.text[0] == ops[i] {
			return ops[i]
		}
	}

	return 0
}

func (p *exprParser) readSum() (expression, error) {

	lhs, err := p.readProduct()
	if err != nil {
		return nil, err
	}

	for op := p.peekOperator("+-"); op != 0; op = p.peekOperator("+-") {
		p.next()

		rhs, err := p.readProduct()
		if err != nil {
			return nil, err
		}

		lhs = &compoundExp{op: op, lhs: lhs, rhs: rhs}
	}

	return lhs, nil
}

func (p *exprParser) readProduct() (expression, error) {

	lhs, err := p.readPrimary()
	if err != nil {
		return nil, err
	}

	for op := p.peekOperator("*/"); op != 0; op = p.peekOperator("*/") {
		p.next()

		rhs, err := p.readPrimary()
		if err != nil {
			return nil, err
		}

		lhs = &compoundExp{op: op, lhs: lhs, rhs: rhs}
	}

	return lhs, nil
}

func (p *exprParser) readPrimary() (expression, error) {

	t := p.next()
	if t == nil {
		return nil, syntaxError("missing operand")
	}

	switch t.kind {
	case tokNumber:
		value, err := parseLiteral(t.text)
		if err != nil {
			return nil, err
		}

		return &constantExp{value: value}, nil

	case tokWord:
		if isReserved(t.text) {
			return nil, syntaxError("reserved word %q used as a variable", t.text)
		}

		return &identifierExp{name: t.text}, nil
	}

	switch t.text {
	case "(":
		exp, err := p.readSum()
		if err != nil {
			return nil, err
		}

		if p.peekOperator(")") == 0 {
			return nil, syntaxError("missing right parenthesis")
		}

		p.next()

		return exp, nil

	case "+":
		return p.readPrimary()

	case "-":

		//
		// Fold a minus glued onto a literal into the constant itself,
		// so that -2147483648 is representable
		//

		if n := p.peek(); n != nil && n.kind == tokNumber {
			p.next()

			value, err := parseLiteral("-" + n.text)
			if err != nil {
				return nil, err
			}

			return &constantExp{value: value}, nil
		}

		operand, err := p.readPrimary()
		if err != nil {
			return nil, err
		}

		return &compoundExp{op: '-', lhs: &constantExp{value: 0}, rhs: operand}, nil
	}

	return nil, syntaxError("unexpected %q in expression", t.text)
}

func parseLiteral(text string) (int32, error) {

	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, syntaxError("integer constant %s out of range", text)
	}

	return int32(value), nil
}

//
// Evaluate an expression against the variable store.  Arithmetic is
// 32-bit with wrap-around, operands are evaluated left to right
//

func evaluate(exp expression, state *evalState) (int32, error) {

	switch e := exp.(type) {
	case *constantExp:
		return e.value, nil

	case *identifierExp:
		return state.getValue(e.name)

	case *compoundExp:
		lhs, err := evaluate(e.lhs, state)
		if err != nil {
			return 0, err
		}

		rhs, err := evaluate(e.rhs, state)
		if err != nil {
			return 0, err
		}

		return applyOperator(e.op, lhs, rhs)

	default:
		unexpectedTypeError(exp)
	}

	return 0, nil
}

func applyOperator(op byte, lhs, rhs int32) (int32, error) {

	switch op {
	case '+':
		return lhs + rhs, nil

	case '-':
		return lhs - rhs, nil

	case '*':
		return lhs * rhs, nil

	case '/':
		if rhs == 0 {
			return 0, basicErrorf(errDivideByZero, "%d / 0", lhs)
		}

		return lhs / rhs, nil

	default:
		fatalError(fmt.Sprintf("Unknown operator %q", op))
	}

	return 0, nil
}
