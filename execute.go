package main

import (
	"errors"
	"fmt"
	"io"
)

func continueControl() control {
	return control{kind: ctlContinue}
}

func jumpTo(lineNo int) control {
	return control{kind: ctlJump, target: lineNo}
}

func terminate() control {
	return control{kind: ctlEnd}
}

//
// Execute one statement.  What happens next is up to the caller,
// which gets told through the returned control value: carry on,
// jump somewhere, or stop
//

func (s *session) executeStmt(stmt statement) (control, error) {

	switch stmt := stmt.(type) {
	default:
		unexpectedTypeError(stmt)

	case *remStmt:
		// NOP

	case *letStmt:
		return continueControl(), s.executeLet(stmt)

	case *printStmt:
		return continueControl(), s.executePrint(stmt)

	case *inputStmt:
		return continueControl(), s.executeInput(stmt)

	case *endStmt:
		return terminate(), nil

	case *gotoStmt:
		return jumpTo(stmt.target), nil

	case *ifStmt:
		return s.executeIf(stmt)
	}

	return continueControl(), nil
}

func (s *session) executeLet(stmt *letStmt) error {

	value, err := evaluate(stmt.exp, s.state)
	if err != nil {
		return err
	}

	s.state.setValue(stmt.name, value)

	return nil
}

func (s *session) executePrint(stmt *printStmt) error {

	value, err := evaluate(stmt.exp, s.state)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, value)

	return nil
}

//
// Keep prompting until we get a valid integer.  Running out of input
// here is fatal to the session, since nothing could ever satisfy
// the INPUT
//

func (s *session) executeInput(stmt *inputStmt) error {

	for {
		line, err := s.input.readLine(s.cfg.InputPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return basicErrorf(errEndOfInput, "INPUT %s", stmt.name)
			}

			return err
		}

		if value, ok := convertInt32(line); ok {
			s.state.setValue(stmt.name, value)
			return nil
		}

		s.tracer.Infof("INPUT %s: rejected %q", stmt.name, line)

		fmt.Fprintln(s.out, EINVALIDNUMBER)
	}
}

func (s *session) executeIf(stmt *ifStmt) (control, error) {

	lhs, err := evaluate(stmt.lhs, s.state)
	if err != nil {
		return continueControl(), err
	}

	rhs, err := evaluate(stmt.rhs, s.state)
	if err != nil {
		return continueControl(), err
	}

	if compare(stmt.op, lhs, rhs) {
		return jumpTo(stmt.target), nil
	}

	return continueControl(), nil
}

func compare(op string, lhs, rhs int32) bool {

	switch op {
	case "=":
		return lhs == rhs

	case "<>":
		return lhs != rhs

	case "<":
		return lhs < rhs

	case "<=":
		return lhs <= rhs

	case ">":
		return lhs > rhs

	case ">=":
		return lhs >= rhs
	}

	fatalError(fmt.Sprintf("Unknown comparison %q", op))

	return false
}

//
// The run driver.  Starting at the lowest line, execute a statement,
// then act on the control value it returned.  A jump target is not
// validated up front: if nothing is stored there, the line behaves
// as a no-op and we fall through to the next higher line (unless
// missing_line is "fail")
//

func (s *session) executeRun() (err error) {

	lineNo, ok := s.prog.firstLine()
	if !ok {
		return nil
	}

	s.interrupted.Store(false)
	s.running.Store(true)

	s.initClock()

	s.tracer.Infof("RUN starting at line %d", lineNo)

	halt := "end of program"

	defer func() {
		s.running.Store(false)

		if err != nil {
			halt = fmt.Sprintf("%s (%s)", err, getErrorDetail(err))
		}

		s.tracer.Infof("RUN halted: %s, %d %s executed", halt,
			s.stats.numStatements, pluralize("statement", s.stats.numStatements))

		s.state.traceAllVars()

		if s.cfg.Stats {
			s.printStatistics()
		}
	}()

	for ok {
		if s.interrupted.Swap(false) {
			return basicErrorf(errInterrupted, "at line %d", lineNo)
		}

		ctl := continueControl()

		if stmt := s.prog.getParsed(lineNo); stmt != nil {
			if s.cfg.Trace.Exec {
				s.tracer.Debugf("[%d] %s", lineNo, stmt)
			}

			ctl, err = s.executeStmt(stmt)

			s.stats.numStatements++

			if err != nil {
				return atLine(err, lineNo)
			}
		}

		switch ctl.kind {
		case ctlEnd:
			halt = fmt.Sprintf("END at line %d", lineNo)
			return nil

		case ctlJump:
			if s.cfg.MissingLine == missingLineFail && s.prog.getParsed(ctl.target) == nil {
				return atLine(basicErrorf(errLineNumber, "no line %d", ctl.target), lineNo)
			}

			lineNo = ctl.target

		default:
			lineNo, ok = s.prog.nextLineAfter(lineNo)
		}
	}

	return nil
}

//
// Tack the current line number onto an error's detail.  The bare
// message (and so errors.Is) is unaffected
//

func atLine(err error, lineNo int) error {

	detail := getErrorDetail(err)
	if detail != "" {
		detail = fmt.Sprintf("line %d: %s", lineNo, detail)
	} else {
		detail = fmt.Sprintf("line %d", lineNo)
	}

	return &basicError{err: err, detail: detail}
}

func (s *session) executeList() {

	for node := s.prog.firstInOrder(); node != nil; node = s.prog.nextInOrder(node) {
		fmt.Fprintln(s.out, node.line)
	}
}

func (s *session) executeClear() {

	s.prog.clear()
	s.state.clear()
}
