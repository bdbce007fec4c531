package main

import (
	"fmt"
	"strconv"
	"strings"
)

//
// Statement variants.  Like expressions, the set is closed, and
// executeStmt() dispatches on the concrete type
//

type statement interface {
	String() string
	isStatement()
}

type remStmt struct {
	comment string
}

type letStmt struct {
	name string
	exp  expression
}

type printStmt struct {
	exp expression
}

type inputStmt struct {
	name string
}

type endStmt struct{}

type gotoStmt struct {
	target int
}

type ifStmt struct {
	lhs    expression
	op     string
	rhs    expression
	target int
}

func (*remStmt) isStatement()   {}
func (*letStmt) isStatement()   {}
func (*printStmt) isStatement() {}
func (*inputStmt) isStatement() {}
func (*endStmt) isStatement()   {}
func (*gotoStmt) isStatement()  {}
func (*ifStmt) isStatement()    {}

func (s *remStmt) String() string   { return "REM " + s.comment }
func (s *letStmt) String() string   { return fmt.Sprintf("LET %s = %s", s.name, s.exp) }
func (s *printStmt) String() string { return "PRINT " + s.exp.String() }
func (s *inputStmt) String() string { return "INPUT " + s.name }
func (s *endStmt) String() string   { return "END" }
func (s *gotoStmt) String() string  { return fmt.Sprintf("GOTO %d", s.target) }

func (s *ifStmt) String() string {
	return fmt.Sprintf("IF %s %s %s THEN %d", s.lhs, s.op, s.rhs, s.target)
}

//
// Reserved words may never be used as variable names.  Checked
// without regard to case
//

var reservedKeywords = map[string]bool{
	"REM":   true,
	"LET":   true,
	"PRINT": true,
	"INPUT": true,
	"END":   true,
	"GOTO":  true,
	"IF":    true,
	"THEN":  true,
	"RUN":   true,
	"LIST":  true,
	"CLEAR": true,
	"QUIT":  true,
	"HELP":  true,
}

func isReserved(word string) bool {

	return reservedKeywords[strings.ToUpper(word)]
}

//
// Keywords that introduce a statement, as opposed to a command.
// Only these may appear after a line number
//

var statementKeywords = map[string]bool{
	"REM":   true,
	"LET":   true,
	"PRINT": true,
	"INPUT": true,
	"END":   true,
	"GOTO":  true,
	"IF":    true,
}

//
// Parse the text following a statement keyword.  The keyword has
// already been upper-cased by the caller.  strictEnd makes END
// refuse trailing junk
//

func parseStatement(keyword, remainder string, strictEnd bool) (statement, error) {

	if keyword == "REM" {
		return &remStmt{comment: remainder}, nil
	}

	tokens, err := scanLine(remainder)
	if err != nil {
		return nil, err
	}

	switch keyword {
	case "LET":
		return parseLet(tokens)

	case "PRINT":
		exp, err := parseExpression(tokens)
		if err != nil {
			return nil, err
		}

		return &printStmt{exp: exp}, nil

	case "INPUT":
		if len(tokens) != 1 {
			return nil, syntaxError("INPUT takes exactly one variable")
		}

		name, err := variableName(tokens[0])
		if err != nil {
			return nil, err
		}

		return &inputStmt{name: name}, nil

	case "END":
		if strictEnd && len(tokens) > 0 {
			return nil, syntaxError("unexpected %q after END", tokens[0].text)
		}

		return &endStmt{}, nil

	case "GOTO":
		target, err := parseTarget(tokens)
		if err != nil {
			return nil, err
		}

		return &gotoStmt{target: target}, nil

	case "IF":
		return parseIf(tokens)
	}

	return nil, syntaxError("unknown statement %q", keyword)
}

func parseLet(tokens []token) (statement, error) {

	if len(tokens) == 0 {
		return nil, syntaxError("missing variable in LET")
	}

	name, err := variableName(tokens[0])
	if err != nil {
		return nil, err
	}

	if len(tokens) < 2 || tokens[1].kind != tokOperator || tokens[1].text != "=" {
		return nil, syntaxError("missing '=' in LET")
	}

	exp, err := parseExpression(tokens[2:])
	if err != nil {
		return nil, err
	}

	return &letStmt{name: name, exp: exp}, nil
}

//
// IF <expr> <comparator> <expr> THEN <line>.  The comparator is the
// first '<', '>' or '=' in the condition; '<' and '>' pick up a
// following '=' (or '<' a '>') only when the two are adjacent
//

func parseIf(tokens []token) (statement, error) {

	then := -1

	for i, t := range tokens {
		if t.kind == tokWord && strings.EqualFold(t.text, "THEN") {
			then = i
			break
		}
	}

	if then < 0 {
		return nil, syntaxError("missing THEN")
	}

	target, err := parseTarget(tokens[then+1:])
	if err != nil {
		return nil, err
	}

	cond := tokens[:then]

	opIndex := -1

	for i, t := range cond {
		if t.kind == tokOperator && strings.Contains("<>=", t.text) {
			opIndex = i
			break
		}
	}

	if opIndex < 0 {
		return nil, syntaxError("missing comparison operator")
	}

	op := cond[opIndex].text
	width := 1

	if op != "=" && opIndex+1 < len(cond) {
		n := cond[opIndex+1]

		if n.kind == tokOperator && adjacent(cond[opIndex], n) {
			if n.text == "=" || (op == "<" && n.text == ">") {
				op += n.text
				width = 2
			}
		}
	}

	if opIndex == 0 || opIndex+width >= len(cond) {
		return nil, syntaxError("comparison is missing an operand")
	}

	lhs, err := parseExpression(cond[:opIndex])
	if err != nil {
		return nil, err
	}

	rhs, err := parseExpression(cond[opIndex+width:])
	if err != nil {
		return nil, err
	}

	return &ifStmt{lhs: lhs, op: op, rhs: rhs, target: target}, nil
}

func parseTarget(tokens []token) (int, error) {

	if len(tokens) == 0 {
		return 0, syntaxError("missing line number")
	}

	if len(tokens) > 1 {
		return 0, syntaxError("unexpected %q after line number", tokens[1].text)
	}

	if tokens[0].kind != tokNumber {
		return 0, syntaxError("line number expected, found %q", tokens[0].text)
	}

	return parseLineNumber(tokens[0].text)
}

func parseLineNumber(text string) (int, error) {

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, syntaxError("line number %s out of range", text)
	}

	return int(n), nil
}

func variableName(t token) (string, error) {

	if t.kind != tokWord {
		return "", syntaxError("variable name expected, found %q", t.text)
	}

	if isReserved(t.text) {
		return "", syntaxError("reserved word %q used as a variable", t.text)
	}

	return t.text, nil
}
