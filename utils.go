package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// Are we connected to a tty?  Line editing only makes sense if
// both ends are a terminal
//

func isInteractive() bool {

	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

//
// Terminal input goes through liner.  We create two instances: one
// for commands, and one for INPUT responses.  We want a scrollback
// history for commands, but not for user input.  They must be
// closed in LIFO order, as Close restores the terminal to the state
// it found at creation time (normal => raw => raw, then back)
//

type linerReader struct {
	l       *liner.State
	history bool
}

func newLinerReader(history, allowCtrlC bool) *linerReader {

	l := liner.NewLiner()

	l.SetMultiLineMode(allowCtrlC)

	return &linerReader{l: l, history: history}
}

func (r *linerReader) readLine(prompt string) (string, error) {

	//
	// A non-nil error here can be totally okay.  ^D at the start of
	// a line shows up as io.EOF, and ^C as ErrPromptAborted, which
	// we hand back as an interrupt
	//

	s, err := r.l.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", basicErrorf(errInterrupted, "^C at prompt")
		}

		return "", err
	}

	if r.history && strings.TrimSpace(s) != "" {
		r.l.AppendHistory(s)
	}

	return s, nil
}

func (r *linerReader) close() {

	if r.l != nil {
		r.l.Close()
		r.l = nil
	}
}

func (r *linerReader) loadHistory(filename string) {

	f, err := os.Open(filename)
	if err != nil {
		return
	}

	defer f.Close()

	r.l.ReadHistory(f)
}

func (r *linerReader) saveHistory(filename string) error {

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = r.l.WriteHistory(f)

	return err
}

//
// Non-terminal input.  Prompts are written to the output stream, so
// a transcript of a piped session reads the same as a typed one
//

type scannerReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newScannerReader(in io.Reader, out io.Writer) *scannerReader {

	return &scannerReader{sc: bufio.NewScanner(in), out: out}
}

func (r *scannerReader) readLine(prompt string) (string, error) {

	if prompt != "" {
		fmt.Fprint(r.out, prompt)
	}

	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return strings.TrimRight(r.sc.Text(), "\r"), nil
}

//
// Convert an INPUT response to an integer.  An optional sign and
// decimal digits only, surrounding blanks and tabs ignored
//

func convertInt32(s string) (int32, bool) {

	s = strings.Trim(s, " \t")

	if s == "" {
		return 0, false
	}

	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}

	return int32(i), true
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		return str + "s"
	}

	return str
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

//
// Run statistics
//

func (s *session) initClock() {

	s.stats.elapsed = time.Now()
	s.stats.utime, s.stats.stime = getCPUInfo()
	s.stats.numStatements = 0
}

func (s *session) printStatistics() {

	elapsed := time.Since(s.stats.elapsed)
	utime, stime := getCPUInfo()

	fmt.Fprintf(s.out, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-s.stats.utime), formatCPUTime(stime-s.stats.stime))

	fmt.Fprintf(s.out, "%d %s executed\n", s.stats.numStatements,
		pluralize("statement", s.stats.numStatements))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// Return user and system CPU seconds for this process.  Platforms
// without /proc get zeroes rather than an error
//

func getCPUInfo() (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck <= 0 {
		return 0, 0
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	//
	// The command name (field 2) may contain blanks, so count the
	// fields from the closing parenthesis
	//

	stat := string(contents)
	if i := strings.LastIndexByte(stat, ')'); i >= 0 {
		stat = stat[i+1:]
	}

	fields := strings.Fields(stat)
	if len(fields) < 13 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}

//
// Print a fatal message and abort the process.  We write to standard
// error, since the user may have redirected standard output, and we
// would not see it then.  Dup stderr, then close os.Stdout and
// os.Stderr in case another goroutine is writing to the terminal.
// Callers with a live session use session.crash, so the terminal
// state is restored first
//

func crash(msg string) {

	var w *os.File

	if msg != "" {
		fd, err := syscall.Dup(int(os.Stderr.Fd()))
		if err == nil {
			os.Stdout.Close()
			os.Stderr.Close()
			w = os.NewFile(uintptr(fd), "stderr on new fd")
		} else {
			w = os.Stderr
		}

		fmt.Fprintln(w, msg)
	}

	os.Exit(1)
}

//
// Return valid suffix if present
//

func getFilenameSuffix(filename string) (string, bool) {

	strs := strings.Split(filepath.Base(filename), ".")

	switch len(strs) {
	default:
		return "", false

	case 1:
		return "", true

	case 2:
		return "." + strs[1], true
	}
}

//
// Take a filename for a source program and sanity check any
// possible suffix.  If no suffix, append ".bas" and return
// the new filename
//

func validateProgramFilename(filename string) (string, bool) {

	suffix, ok := getFilenameSuffix(filename)
	if !ok || (suffix != "" && suffix != basFileSuffix) {
		return "", false
	} else if suffix == "" {
		return filename + basFileSuffix, true
	} else {
		return filename, true
	}
}
