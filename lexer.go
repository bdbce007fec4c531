package main

import (
	"strings"
	"text/scanner"
	"unicode"
)

//
// The lexer hands back one token at a time, so that callers can stop
// early.  REM is the reason: anything at all may follow it, and we
// must not choke on characters that are not legal BASIC tokens
//

type lexer struct {
	s    scanner.Scanner
	line string
	err  error
}

func newLexer(line string) *lexer {

	lx := &lexer{line: line}

	lx.s.Init(strings.NewReader(line))
	lx.s.Mode = scanner.ScanIdents
	lx.s.IsIdentRune = basicIdent
	lx.s.Whitespace = 1<<'\t' | 1<<'\n' | 1<<'\v' | 1<<'\f' | 1<<'\r' | 1<<' '

	//
	// The low-level scanner reports bad input (invalid UTF-8 and the
	// like) through this hook.  Remember the first complaint, and let next() turn it
	// into a syntax error
	//

	lx.s.Error = func(s *scanner.Scanner, msg string) {
		if lx.err == nil {
			lx.err = syntaxError("%s at column %d", msg, s.Position.Column)
		}
	}

	return lx
}

//
// Return the next token.  ok is false at end of line
//

func (lx *lexer) next() (t token, ok bool, err error) {

	tok := lx.s.Scan()

	if lx.err != nil {
		return token{}, false, lx.err
	}

	if tok == scanner.EOF {
		return token{}, false, nil
	}

	t = token{text: lx.s.TokenText(), pos: lx.s.Position.Offset}

	switch tok {
	case scanner.Ident:
		t.kind = tokWord

	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':

		//
		// Numbers are plain decimal digit runs.  A leading zero is
		// not octal, and there are no prefixes or separators
		//

		n := 1
		for ch := lx.s.Peek(); ch >= '0' && ch <= '9'; ch = lx.s.Peek() {
			lx.s.Next()
			n++
		}

		t.text = lx.line[t.pos : t.pos+n]
		t.kind = tokNumber

	default:
		if !strings.ContainsRune(operatorChars, tok) {
			return token{}, false, syntaxError("illegal character %q at column %d",
				tok, lx.s.Position.Column)
		}

		t.kind = tokOperator
	}

	return t, true, nil
}

//
// Tokenize a whole line (or the remainder of one)
//

func scanLine(line string) ([]token, error) {

	var tokens []token

	lx := newLexer(line)

	for {
		t, ok, err := lx.next()
		if err != nil {
			return nil, err
		}

		if !ok {
			return tokens, nil
		}

		tokens = append(tokens, t)
	}
}

//
// Return the text following a token, minus leading blanks.  This is
// how statement remainders are carved out of the verbatim line
//

func remainderAfter(line string, t token) string {

	end := t.pos + len(t.text)
	if end >= len(line) {
		return ""
	}

	return strings.TrimLeft(line[end:], " \t\v\f")
}

//
// Two tokens are adjacent if nothing (not even a blank) separates
// them.  Used to glue '<' '=' into '<=' and friends
//

func adjacent(t1, t2 token) bool {

	return t1.pos+len(t1.text) == t2.pos
}

func basicIdent(ch rune, pos int) bool {

	return ch == '_' || unicode.IsLetter(ch) || (unicode.IsDigit(ch) && pos > 0)
}
