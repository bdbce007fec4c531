package main

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/danswartzendruber/avl"
	"github.com/google/btree"
	"github.com/npillmayer/schuko/tracing"
)

//
// Constants
//

const VERSION = "1.0.0"

const basFileSuffix = ".bas"

const defaultConfigFile = ".intbasic.yaml"

const defaultInputPrompt = " ? "

const symtabDegree = 4

//
// Token classes handed back by the lexer
//

const (
	tokNumber = iota + 1
	tokWord
	tokOperator
)

const operatorChars = "+-*/()=<>"

//
// Control signals returned by statement execution.  The run driver
// looks at exactly one of these after every statement
//

const (
	ctlContinue = iota
	ctlJump
	ctlEnd
)

//
// What the run driver does when a GOTO or IF lands on a line that
// holds no statement
//

const (
	missingLineContinue = "continue"
	missingLineFail     = "fail"
)

//
// Type definitions
//

type token struct {
	kind int
	text string
	pos  int
}

type control struct {
	kind   int
	target int
}

//
// One stored program line.  The AVL node is embedded, so the node
// and the line live and die together
//

type lineNode struct {
	avl    avl.AvlNode
	lineNo int
	line   string
	stmt   statement
}

type program struct {
	root *avl.AvlNode
}

type symtabNode struct {
	name  string
	value int32
}

type evalState struct {
	vars      *btree.BTree
	tracer    tracing.Trace
	traceVars bool
}

//
// Anything we can read a line of text from.  The terminal flavor is
// backed by liner, everything else by a bufio.Scanner
//

type lineReader interface {
	readLine(prompt string) (string, error)
}

type runStats struct {
	elapsed       time.Time
	utime         int64
	stime         int64
	numStatements int64
}

//
// Everything one interpreter session owns.  There are no package
// level globals holding interpreter state; every operation hangs
// off of a session
//

type session struct {
	cfg         *config
	prog        *program
	state       *evalState
	cmdIn       lineReader
	input       lineReader
	out         io.Writer
	tracer      tracing.Trace
	stats       runStats
	liners      []*linerReader
	interrupted atomic.Bool
	running     atomic.Bool
	exiting     bool
}
