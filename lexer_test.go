package main

import (
	"errors"
	"reflect"
	"testing"
)

func TestScanLine(t *testing.T) {

	tests := []struct {
		line string
		want []token
	}{
		{"", nil},
		{"   ", nil},
		{"10 PRINT X", []token{
			{tokNumber, "10", 0},
			{tokWord, "PRINT", 3},
			{tokWord, "X", 9},
		}},
		{"LET count_2=A1*(3-b)", []token{
			{tokWord, "LET", 0},
			{tokWord, "count_2", 4},
			{tokOperator, "=", 11},
			{tokWord, "A1", 12},
			{tokOperator, "*", 14},
			{tokOperator, "(", 15},
			{tokNumber, "3", 16},
			{tokOperator, "-", 17},
			{tokWord, "b", 18},
			{tokOperator, ")", 19},
		}},
		{"IF A<=B THEN 20", []token{
			{tokWord, "IF", 0},
			{tokWord, "A", 3},
			{tokOperator, "<", 4},
			{tokOperator, "=", 5},
			{tokWord, "B", 6},
			{tokWord, "THEN", 8},
			{tokNumber, "20", 13},
		}},
		{"10PRINT", []token{
			{tokNumber, "10", 0},
			{tokWord, "PRINT", 2},
		}},
		{"\tX\t", []token{
			{tokWord, "X", 1},
		}},
		{"\v\fX\f", []token{
			{tokWord, "X", 2},
		}},
		{"PRINT 09", []token{
			{tokWord, "PRINT", 0},
			{tokNumber, "09", 6},
		}},
		{"08 PRINT 1", []token{
			{tokNumber, "08", 0},
			{tokWord, "PRINT", 3},
			{tokNumber, "1", 9},
		}},
		{"1_000", []token{
			{tokNumber, "1", 0},
			{tokWord, "_000", 1},
		}},
		{"0x1F", []token{
			{tokNumber, "0", 0},
			{tokWord, "x1F", 1},
		}},
		{"0b1+2", []token{
			{tokNumber, "0", 0},
			{tokWord, "b1", 1},
			{tokOperator, "+", 3},
			{tokNumber, "2", 4},
		}},
	}

	for _, tt := range tests {
		got, err := scanLine(tt.line)
		if err != nil {
			t.Errorf("scanLine(%q) failed: %v", tt.line, err)
			continue
		}

		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("scanLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestScanLineErrors(t *testing.T) {

	for _, line := range []string{
		`PRINT "HI"`,
		"PRINT 1.5",
		"LET X = 3 % 2",
		"X = Y!",
		"PRINT 'A'",
	} {
		_, err := scanLine(line)
		if !errors.Is(err, errSyntax) {
			t.Errorf("scanLine(%q) = %v, want %v", line, err, errSyntax)
		}
	}
}

//
// The lexer must be usable one token at a time, so a REM comment
// full of junk never gets scanned
//

func TestLexerStopsEarly(t *testing.T) {

	line := `REM it's "fine" 100% ok!`

	first, ok, err := newLexer(line).next()
	if err != nil || !ok {
		t.Fatalf("next() = %v, %v, %v", first, ok, err)
	}

	if first.kind != tokWord || first.text != "REM" {
		t.Errorf("first token = %v, want REM", first)
	}

	if got := remainderAfter(line, first); got != `it's "fine" 100% ok!` {
		t.Errorf("remainderAfter = %q", got)
	}
}

func TestRemainderAfter(t *testing.T) {

	tests := []struct {
		line string
		tok  token
		want string
	}{
		{"10 PRINT X", token{tokNumber, "10", 0}, "PRINT X"},
		{"10", token{tokNumber, "10", 0}, ""},
		{"10   ", token{tokNumber, "10", 0}, ""},
		{"  20\tEND", token{tokNumber, "20", 2}, "END"},
		{"30\f\vPRINT", token{tokNumber, "30", 0}, "PRINT"},
	}

	for _, tt := range tests {
		if got := remainderAfter(tt.line, tt.tok); got != tt.want {
			t.Errorf("remainderAfter(%q, %v) = %q, want %q", tt.line, tt.tok, got, tt.want)
		}
	}
}

func TestAdjacent(t *testing.T) {

	tokens, err := scanLine("< = <=")
	if err != nil {
		t.Fatal(err)
	}

	if adjacent(tokens[0], tokens[1]) {
		t.Errorf("'<' and '=' separated by a blank reported adjacent")
	}

	if !adjacent(tokens[2], tokens[3]) {
		t.Errorf("'<=' not reported adjacent")
	}
}
