package main

import (
	"errors"
	"testing"
)

func TestExecuteStmtControl(t *testing.T) {

	s, out := newTestSession(t, nil, "")
	s.state.setValue("X", 5)

	tests := []struct {
		keyword   string
		remainder string
		want      control
	}{
		{"REM", "nothing", continueControl()},
		{"LET", "Y = X + 1", continueControl()},
		{"PRINT", "Y", continueControl()},
		{"END", "", terminate()},
		{"GOTO", "70", jumpTo(70)},
		{"IF", "X > 3 THEN 40", jumpTo(40)},
		{"IF", "X < 3 THEN 40", continueControl()},
	}

	for _, tt := range tests {
		stmt, err := parseStatement(tt.keyword, tt.remainder, false)
		if err != nil {
			t.Fatalf("parse %s %s: %v", tt.keyword, tt.remainder, err)
		}

		got, err := s.executeStmt(stmt)
		if err != nil {
			t.Errorf("%s: %v", stmt, err)
			continue
		}

		if got != tt.want {
			t.Errorf("%s returned %+v, want %+v", stmt, got, tt.want)
		}
	}

	if out.String() != "6\n" {
		t.Errorf("output = %q, want %q", out.String(), "6\n")
	}
}

func TestExecuteIfErrors(t *testing.T) {

	s, _ := newTestSession(t, nil, "")

	stmt, err := parseStatement("IF", "A = 1 / 0 THEN 10", false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.executeStmt(stmt); !errors.Is(err, errUndefined) {
		t.Errorf("got %v, want %v", err, errUndefined)
	}

	s.state.setValue("A", 1)

	if _, err := s.executeStmt(stmt); !errors.Is(err, errDivideByZero) {
		t.Errorf("got %v, want %v", err, errDivideByZero)
	}
}

func TestCompare(t *testing.T) {

	tests := []struct {
		op       string
		lhs, rhs int32
		want     bool
	}{
		{"=", 1, 1, true},
		{"=", 1, 2, false},
		{"<>", 1, 2, true},
		{"<>", 2, 2, false},
		{"<", 1, 2, true},
		{"<", 2, 2, false},
		{"<=", 2, 2, true},
		{"<=", 3, 2, false},
		{">", 3, 2, true},
		{">", 2, 2, false},
		{">=", 2, 2, true},
		{">=", -1, 2, false},
	}

	for _, tt := range tests {
		if got := compare(tt.op, tt.lhs, tt.rhs); got != tt.want {
			t.Errorf("%d %s %d = %v, want %v", tt.lhs, tt.op, tt.rhs, got, tt.want)
		}
	}
}

func TestRunErrorCarriesLine(t *testing.T) {

	s, _ := newTestSession(t, nil, "")

	for _, line := range []string{"10 LET A = 1", "20 PRINT A / 0"} {
		if err := s.processLine(line); err != nil {
			t.Fatal(err)
		}
	}

	err := s.executeRun()
	if !errors.Is(err, errDivideByZero) {
		t.Fatalf("executeRun = %v, want %v", err, errDivideByZero)
	}

	if got, want := getErrorDetail(err), "line 20: 1 / 0"; got != want {
		t.Errorf("detail = %q, want %q", got, want)
	}

	if got := getErrorNo(err); got != 61 {
		t.Errorf("error number = %d, want 61", got)
	}
}

func TestRunCountsStatements(t *testing.T) {

	s, _ := newTestSession(t, nil, "")

	for _, line := range []string{"10 LET I = 0", "20 LET I = I + 1", "30 IF I < 5 THEN 20", "40 REM"} {
		if err := s.processLine(line); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.executeRun(); err != nil {
		t.Fatal(err)
	}

	//
	// One LET, five passes over lines 20 and 30, then the REM
	//

	if got := s.stats.numStatements; got != 12 {
		t.Errorf("numStatements = %d, want 12", got)
	}

	if v, _ := s.state.getValue("I"); v != 5 {
		t.Errorf("I = %d, want 5", v)
	}
}
