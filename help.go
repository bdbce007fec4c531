package main

import (
	"fmt"
	"strings"
)

var helpText = map[string][]string{
	"CLEAR": {"Erase the current program and all variables"},
	"END":   {"Stop the running program"},
	"GOTO":  {"Continue execution at the given line", "\tGOTO <line>"},
	"HELP":  {"Print this summary, or details for one keyword", "\tHELP [keyword]"},
	"IF": {"Jump to a line when a comparison holds",
		"\tIF <expr> <op> <expr> THEN <line>",
		"\t<op> is one of = <> < <= > >="},
	"INPUT": {"Read an integer into a variable", "\tINPUT <variable>"},
	"LET":   {"Assign an integer expression to a variable", "\tLET <variable> = <expr>"},
	"LIST":  {"List the current program"},
	"PRINT": {"Print the value of an integer expression", "\tPRINT <expr>"},
	"QUIT":  {"Exit from BASIC"},
	"REM":   {"Comment, ignored"},
	"RUN":   {"Execute the current program from its lowest line"},
}

var helpOrder = []string{
	"CLEAR", "END", "GOTO", "HELP", "IF", "INPUT",
	"LET", "LIST", "PRINT", "QUIT", "REM", "RUN",
}

//
// With no argument, list every keyword.  With one, describe it
//

func (s *session) executeHelp(remainder string) error {

	tokens, err := scanLine(remainder)
	if err != nil {
		return err
	}

	if len(tokens) == 0 {
		for _, kw := range helpOrder {
			fmt.Fprintln(s.out, strings.ToLower(kw))
		}

		return nil
	}

	if len(tokens) > 1 || tokens[0].kind != tokWord {
		return syntaxError("HELP takes at most one keyword")
	}

	lines, ok := helpText[strings.ToUpper(tokens[0].text)]
	if !ok {
		return syntaxError("no help for %q", tokens[0].text)
	}

	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}

	return nil
}
