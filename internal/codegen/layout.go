package codegen

import "fmt"

// emitState is the threaded, mostly-mutable state the recursive
// instruction selector carries through a single function body (spec.md
// §4.6's "state machine of the emitter"): a fresh-label counter shared
// by the whole program, the current high-water stack slot, each bound
// variable's slot index, and each locally-declared (unlifted) function's
// declaration-site slot base for InternalTailCall frame reuse.
type emitState struct {
	counter   *int
	stack     int
	vars      map[string]int
	functions map[string]int
}

func newEmitState(counter *int, params []string) *emitState {
	st := &emitState{counter: counter, vars: map[string]int{}, functions: map[string]int{}}
	for i, p := range params {
		st.vars[p] = i
	}
	st.stack = len(params)
	return st
}

func (st *emitState) fresh(prefix string) string {
	*st.counter++
	return fmt.Sprintf("%s_%d", prefix, *st.counter)
}

// bind installs name at the next free slot and returns it.
func (st *emitState) bind(name string) int {
	i := st.stack
	st.vars[name] = i
	st.stack++
	return i
}

// localLabel returns the NASM label for a locally declared (unlifted)
// function, distinct from a lifted function's func_<name> label.
func localLabel(name string) string { return "local_" + name }

// globalLabel returns the NASM label for a lifted, top-level function.
func globalLabel(name string) string { return "func_" + name }
