package main

import (
	"fmt"

	"github.com/danswartzendruber/avl"
)

//
// A set of wrapper routines to the AVL package.  We do this to
// hide the AVL interface from the rest of the interpreter, and to
// keep every program image operation in one place
//

//
// NB: a stored line is replaced by removing the old node and
// inserting a fresh one.  A node is never mutated in place except to
// attach its parsed statement, so a half-updated line can't be seen
//

func newProgram() *program {

	return &program{}
}

func (p *program) firstInOrder() *lineNode {

	n := avl.AvlTreeFirstInOrder(p.root)
	if n != nil {
		return n.(*lineNode)
	} else {
		return nil
	}
}

func (p *program) lastInOrder() *lineNode {

	n := avl.AvlTreeLastInOrder(p.root)
	if n != nil {
		return n.(*lineNode)
	} else {
		return nil
	}
}

func (p *program) nextInOrder(node *lineNode) *lineNode {

	n := avl.AvlTreeNextInOrder(&node.avl)
	if n != nil {
		return n.(*lineNode)
	} else {
		return nil
	}
}

func (p *program) lookup(lineNo int) *lineNode {

	n := avl.AvlTreeLookup(p.root, lineNo, cmpIntKey)
	if n != nil {
		return n.(*lineNode)
	} else {
		return nil
	}
}

func (p *program) insert(node *lineNode) {

	n := avl.AvlTreeInsert(&p.root, &node.avl, node, cmpLineNodes)
	if n != nil {
		fatalError(fmt.Sprintf("Line %d already in tree???", node.lineNo))
	}
}

func (p *program) remove(node *lineNode) {

	avl.AvlTreeRemove(&p.root, &node.avl)
}

//
// Store the verbatim text for a line, replacing any previous
// version.  The parsed statement (if any) goes away with it
//

func (p *program) addLine(lineNo int, line string) {

	if old := p.lookup(lineNo); old != nil {
		p.remove(old)
	}

	p.insert(&lineNode{lineNo: lineNo, line: line})
}

func (p *program) removeLine(lineNo int) {

	if old := p.lookup(lineNo); old != nil {
		p.remove(old)
	}
}

func (p *program) setParsed(lineNo int, stmt statement) error {

	node := p.lookup(lineNo)
	if node == nil {
		return basicErrorf(errLineNumber, "line %d not in program", lineNo)
	}

	node.stmt = stmt

	return nil
}

func (p *program) getParsed(lineNo int) statement {

	if node := p.lookup(lineNo); node != nil {
		return node.stmt
	}

	return nil
}

func (p *program) getLine(lineNo int) (string, bool) {

	if node := p.lookup(lineNo); node != nil {
		return node.line, true
	}

	return "", false
}

func (p *program) firstLine() (int, bool) {

	if node := p.firstInOrder(); node != nil {
		return node.lineNo, true
	}

	return 0, false
}

//
// Return the smallest stored line number greater than lineNo.  The
// line itself need not exist, since a jump may land in a gap
//

func (p *program) nextLineAfter(lineNo int) (int, bool) {

	if node := p.lookup(lineNo); node != nil {
		if next := p.nextInOrder(node); next != nil {
			return next.lineNo, true
		}

		return 0, false
	}

	if last := p.lastInOrder(); last == nil || last.lineNo <= lineNo {
		return 0, false
	}

	for node := p.firstInOrder(); node != nil; node = p.nextInOrder(node) {
		if node.lineNo > lineNo {
			return node.lineNo, true
		}
	}

	return 0, false
}

func (p *program) clear() {

	p.root = nil
}

func (p *program) isEmpty() bool {

	return p.firstInOrder() == nil
}

//
// Comparison functions for the AVL code
//

func cmpInts(i1, i2 int) int {

	if i1 < i2 {
		return -1
	} else if i1 > i2 {
		return 1
	} else {
		return 0
	}
}

func cmpIntKey(key any, node any) int {

	return cmpInts(key.(int), node.(*lineNode).lineNo)
}

func cmpLineNodes(node1, node2 any) int {

	return cmpInts(node1.(*lineNode).lineNo, node2.(*lineNode).lineNo)
}
