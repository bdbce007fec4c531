package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/goforj/godump"
	"github.com/npillmayer/schuko/tracing"
)

func main() {

	var configFile string

	flag.StringVar(&configFile, "config", "", "YAML configuration `file` (default $HOME/"+
		defaultConfigFile+")")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: intbasic [-config file] [program]\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		crash(err.Error())
	}

	var s *session

	if isInteractive() {
		s = newTerminalSession(cfg)
	} else {
		s = newSession(cfg, os.Stdin, os.Stdout)
	}

	//
	// We need to close the liner instances in reverse order, to make
	// sure we end up back in normal (cooked) terminal mode
	//

	defer s.cleanup()

	if flag.NArg() == 1 {
		if fname, ok := validateProgramFilename(flag.Arg(0)); !ok {
			s.crash("Invalid filename!")
		} else if err := s.loadProgram(fname); err != nil {
			s.crash(err.Error())
		}
	}

	if len(s.liners) > 0 {
		printVersionInfo(s.out)
	}

	//
	// Run the signal handling code in a goroutine
	//

	go s.sigHdlr()

	if err := s.commandLoop(); err != nil {
		if errors.Is(err, errEndOfInput) {
			s.crash("")
		}

		s.crash(err.Error())
	}
}

func printVersionInfo(w io.Writer) {

	fmt.Fprintf(w, "Integer BASIC %s, type HELP for a list of commands\n", VERSION)
}

//
// A session reading commands (and INPUT responses) from an arbitrary
// reader.  Used for piped input, and by the tests
//

func newSession(cfg *config, in io.Reader, out io.Writer) *session {

	reader := newScannerReader(in, out)

	return newSessionWith(cfg, reader, reader, out)
}

//
// A session on a terminal.  Commands and INPUT responses get their
// own liner, so only commands end up in the scrollback history
//

func newTerminalSession(cfg *config) *session {

	cmdLiner := newLinerReader(true, false)
	inputLiner := newLinerReader(false, true)

	if cfg.HistoryFile != "" {
		cmdLiner.loadHistory(cfg.HistoryFile)
	}

	s := newSessionWith(cfg, cmdLiner, inputLiner, os.Stdout)

	s.liners = []*linerReader{cmdLiner, inputLiner}

	return s
}

func newSessionWith(cfg *config, cmdIn, input lineReader, out io.Writer) *session {

	tracer := newTracer(cfg)

	s := &session{
		cfg:    cfg,
		prog:   newProgram(),
		cmdIn:  cmdIn,
		input:  input,
		out:    out,
		tracer: tracer,
	}

	s.state = newEvalState(tracer, cfg.Trace.Vars)

	tracer.Debugf("trace exec %s, trace vars %s, missing line policy %q",
		switchSetting(cfg.Trace.Exec), switchSetting(cfg.Trace.Vars), cfg.MissingLine)

	return s
}

func (s *session) setTracer(tracer tracing.Trace) {

	tracer.SetTraceLevel(s.cfg.traceLevel())

	s.tracer = tracer
	s.state.tracer = tracer
}

//
// Restore terminal state.  The liners are closed in reverse order of
// creation, and the command history is saved first
//

func (s *session) cleanup() {

	if len(s.liners) == 0 {
		return
	}

	if s.cfg.HistoryFile != "" {
		if err := s.liners[0].saveHistory(s.cfg.HistoryFile); err != nil {
			s.tracer.Errorf("unable to save history to %s: %v", s.cfg.HistoryFile, err)
		}
	}

	for i := len(s.liners) - 1; i >= 0; i-- {
		s.liners[i].close()
	}

	s.liners = nil
}

func (s *session) crash(msg string) {

	s.cleanup()

	crash(msg)
}

//
// SIGINT while a program is running posts an interrupt for the run
// driver to pick up.  Otherwise it kills the session, as it would
// without a handler.  On a terminal liner sees ^C as a keystroke, so
// this only matters for piped sessions and running programs
//

func (s *session) sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Notify(ch, syscall.SIGINT)

	for range ch {
		if s.running.Load() {
			s.interrupted.Store(true)
		} else {
			s.crash(EINTERRUPTED)
		}
	}
}

//
// Loop until QUIT or end of input.  Each line is processed under
// call(), so an internal fault aborts that line only
//

func (s *session) commandLoop() error {

	for !s.exiting {
		line, err := s.cmdIn.readLine(s.cfg.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			if errors.Is(err, errInterrupted) {
				continue
			}

			return err
		}

		if err := s.call(func() error { return s.processLine(line) }); err != nil {
			s.reportError(err)

			if errors.Is(err, errEndOfInput) {
				return err
			}
		}
	}

	return nil
}

//
// One line from the user: either a numbered program line, which is
// parsed and stored, or an immediate command
//

func (s *session) processLine(line string) error {

	lx := newLexer(line)

	first, ok, err := lx.next()
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	if first.kind == tokNumber {
		return s.storeProgramLine(line, first)
	}

	if first.kind != tokWord {
		return syntaxError("unexpected %q at start of line", first.text)
	}

	keyword := strings.ToUpper(first.text)
	remainder := remainderAfter(line, first)

	switch keyword {
	case "REM":
		return nil

	case "RUN":
		return s.executeRun()

	case "LIST":
		s.executeList()

	case "CLEAR":
		s.executeClear()

	case "QUIT":
		s.exiting = true

	case "HELP":
		return s.executeHelp(remainder)

	default:
		if !statementKeywords[keyword] {
			return syntaxError("unknown command %q", first.text)
		}

		stmt, err := s.parseStatement(keyword, remainder)
		if err != nil {
			return err
		}

		//
		// Immediate mode: any jump or END has nowhere to go
		//

		_, err = s.executeStmt(stmt)

		return err
	}

	return nil
}

//
// The text goes into the program image first, replacing any previous
// version and its statement.  If the parse then fails the line stays
// listed but has no statement, so RUN steps over it.  An empty
// remainder deletes the line
//

func (s *session) storeProgramLine(line string, first token) error {

	lineNo, err := parseLineNumber(first.text)
	if err != nil {
		return err
	}

	remainder := remainderAfter(line, first)

	if strings.TrimSpace(remainder) == "" {
		s.prog.removeLine(lineNo)
		return nil
	}

	s.prog.addLine(lineNo, line)

	lx := newLexer(remainder)

	kw, ok, err := lx.next()
	if err != nil {
		return err
	}

	basicAssert(ok, "Empty remainder not caught")

	keyword := strings.ToUpper(kw.text)

	if kw.kind != tokWord || !statementKeywords[keyword] {
		return syntaxError("line %d: %q is not a statement", lineNo, kw.text)
	}

	stmt, err := s.parseStatement(keyword, remainderAfter(remainder, kw))
	if err != nil {
		return err
	}

	return s.prog.setParsed(lineNo, stmt)
}

func (s *session) parseStatement(keyword, remainder string) (statement, error) {

	stmt, err := parseStatement(keyword, remainder, s.cfg.StrictEnd)
	if err != nil {
		return nil, err
	}

	if s.cfg.Trace.Dump {
		godump.Dump(stmt)
	}

	return stmt, nil
}

//
// Load a program file.  Every non-blank line must carry a line
// number.  A bad line is reported with its position in the file and
// loading carries on
//

func (s *session) loadProgram(filename string) error {

	file, err := os.Open(filename)
	if err != nil {
		return err
	}

	defer file.Close()

	sc := bufio.NewScanner(file)
	fileLine := 0

	for sc.Scan() {
		fileLine++

		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		err := s.call(func() error { return s.loadLine(line) })
		if err != nil {
			s.tracer.Errorf("%s:%d: %s", filepath.Base(filename), fileLine, getErrorDetail(err))
			fmt.Fprintf(s.out, "%s at line %d of %s\n", err, fileLine, filepath.Base(filename))
		}
	}

	return sc.Err()
}

func (s *session) loadLine(line string) error {

	first, ok, err := newLexer(line).next()
	if err != nil {
		return err
	}

	if !ok || first.kind != tokNumber {
		return syntaxError("missing line number")
	}

	return s.storeProgramLine(line, first)
}

//
// Print the bare message for the user, and the whole story for the
// tracer
//

func (s *session) reportError(err error) {

	fmt.Fprintln(s.out, err.Error())

	s.tracer.Errorf("%s (error %d) %s", err, getErrorNo(err), getErrorDetail(err))
}

//
// Internal invariant violations panic with one of these
//

type basicErrorInfo struct {
	msg  string
	file string
	line int
}

//
// Run f, recovering from any panic.  After an internal fault the
// current command is abandoned, but the session lives on
//

func (s *session) call(f func() error) (err error) {

	defer func() {
		if e := recover(); e != nil {
			s.running.Store(false)
			s.decodePanic(e)
			err = nil
		}
	}()

	return f()
}

//
// This procedure is called by the panic deferred recovery function.
// For explicit calls to fatalError, the caller's location was saved
// in the basicErrorInfo.  For panics raised by the Go runtime, we
// have to grovel for the code that panicked, not the caller of
// panic, since that is somewhere inside Go.  Ugly: the best we can
// do is scan the call stack for 'runtime.gopanic' and pick the next
// non-runtime frame
//

func (s *session) decodePanic(e any) {

	switch e := e.(type) {
	default:
		pcs := make([]uintptr, 64)

		frames := runtime.CallersFrames(pcs[:runtime.Callers(1, pcs)])

		var panicFrame runtime.Frame
		var panicSeen bool

		for {
			frame, more := frames.Next()

			if frame.Function == "runtime.gopanic" {
				panicSeen = true
			} else if panicSeen && !strings.HasPrefix(frame.Function, "runtime.") {
				panicFrame = frame
				panicSeen = false
			}

			if !more {
				break
			}
		}

		fmt.Fprintf(s.out, "%v at %s line %d\n", e, filepath.Base(panicFrame.File),
			panicFrame.Line)

		s.tracer.Errorf("internal error: %v\n%s", e, debug.Stack())

	case *basicErrorInfo:
		fmt.Fprintf(s.out, "%q at %s line %d\n", e.msg, filepath.Base(e.file), e.line)

		s.tracer.Errorf("internal error: %s\n%s", e.msg, debug.Stack())
	}
}

func basicAssert(chk bool, msg string) {

	if !chk {
		fatalError(msg)
	}
}

func unexpectedTypeError(item any) {

	fatalError(fmt.Sprintf("Unexpected type %T", item))
}

//
// Panic with the location of whoever called our caller, which is
// the code that actually tripped over the problem
//

func fatalError(msg string) {

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file, line = "???", 0
	}

	msg = strings.TrimRight(msg, "\n")

	panic(&basicErrorInfo{msg, file, line})
}
