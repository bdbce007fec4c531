package main

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEvalState(t *testing.T) {

	tracer := gotestingadapter.New(t)
	tracer.SetTraceLevel(tracing.LevelInfo)

	st := newEvalState(tracer, true)

	if _, err := st.getValue("X"); !errors.Is(err, errUndefined) {
		t.Errorf("getValue on unbound = %v, want %v", err, errUndefined)
	}

	st.setValue("X", 1)
	st.setValue("x", 2)
	st.setValue("X", 3)

	if v, err := st.getValue("X"); err != nil || v != 3 {
		t.Errorf("X = %d, %v, want 3", v, err)
	}

	if v, err := st.getValue("x"); err != nil || v != 2 {
		t.Errorf("x = %d, %v, want 2", v, err)
	}

	if !st.isDefined("X") || st.isDefined("Y") {
		t.Errorf("isDefined wrong")
	}

	if st.len() != 2 {
		t.Errorf("len = %d, want 2", st.len())
	}

	st.setValue("B", 0)
	st.setValue("A", 0)

	if got, want := st.names(), []string{"A", "B", "X", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}

	st.traceAllVars()

	st.clear()

	if st.len() != 0 || st.isDefined("X") {
		t.Errorf("store not empty after clear")
	}

	if _, err := st.getValue("A"); !errors.Is(err, errUndefined) {
		t.Errorf("getValue after clear = %v, want %v", err, errUndefined)
	}
}
