package interp

import (
	"fmt"
	"strings"
)

// sprintValue renders v the way the compiled runtime's print_snake_val
// does (runtime/stub.rs): integers and booleans print directly, arrays
// print their elements recursively with a cycle guard that prints
// "<loop>" for an array reachable from itself, and closures print as
// "<closure>" without showing their captured environment.
func sprintValue(v Value) string {
	return sprintValueVisited(v, map[*ArrayValue]bool{})
}

// Sprint renders v the way a compiled program's final result would print,
// for callers outside this package (the REPL).
func Sprint(v Value) string {
	return sprintValue(v)
}

func sprintValueVisited(v Value, visited map[*ArrayValue]bool) string {
	switch val := v.(type) {
	case IntValue:
		return fmt.Sprintf("%d", int64(val))
	case BoolValue:
		if val {
			return "true"
		}
		return "false"
	case *ClosureValue:
		return "<closure>"
	case *ArrayValue:
		if visited[val] {
			return "<loop>"
		}
		visited[val] = true
		parts := make([]string, len(val.Elems))
		for i, e := range val.Elems {
			parts[i] = sprintValueVisited(e, visited)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "Invalid snake value"
	}
}
