package main

import (
	"github.com/google/btree"
	"github.com/npillmayer/schuko/tracing"
)

//
// The variable store.  Names are case sensitive and kept in a
// B-tree, so they come back sorted for the post-RUN dump
//

func (sym *symtabNode) Less(item btree.Item) bool {

	return sym.name < item.(*symtabNode).name
}

func newEvalState(tracer tracing.Trace, traceVars bool) *evalState {

	return &evalState{
		vars:      btree.New(symtabDegree),
		tracer:    tracer,
		traceVars: traceVars,
	}
}

func (st *evalState) lookup(name string) *symtabNode {

	item := st.vars.Get(&symtabNode{name: name})
	if item != nil {
		return item.(*symtabNode)
	} else {
		return nil
	}
}

func (st *evalState) setValue(name string, value int32) {

	old := st.vars.ReplaceOrInsert(&symtabNode{name: name, value: value})

	if old != nil {
		st.traceVar(name, old.(*symtabNode).value, value, true)
	} else {
		st.traceVar(name, 0, value, false)
	}
}

func (st *evalState) getValue(name string) (int32, error) {

	sym := st.lookup(name)
	if sym == nil {
		return 0, basicErrorf(errUndefined, "%s", name)
	}

	return sym.value, nil
}

func (st *evalState) isDefined(name string) bool {

	return st.lookup(name) != nil
}

func (st *evalState) clear() {

	st.vars.Clear(false)
}

func (st *evalState) len() int {

	return st.vars.Len()
}

func (st *evalState) names() []string {

	names := make([]string, 0, st.vars.Len())

	st.vars.Ascend(func(item btree.Item) bool {
		names = append(names, item.(*symtabNode).name)
		return true
	})

	return names
}

//
// Log every variable write when asked to.  A first assignment has
// no old value worth printing
//

func (st *evalState) traceVar(name string, oval, nval int32, defined bool) {

	if !st.traceVars || st.tracer == nil {
		return
	}

	if defined {
		st.tracer.Infof("Variable %s changed from %d to %d", name, oval, nval)
	} else {
		st.tracer.Infof("Variable %s set to %d", name, nval)
	}
}

//
// Dump every bound variable, in name order
//

func (st *evalState) traceAllVars() {

	if !st.traceVars || st.tracer == nil {
		return
	}

	for _, name := range st.names() {
		value, _ := st.getValue(name)
		st.tracer.Infof("Variable %s = %d", name, value)
	}
}
