package debug

import (
	"encoding/json"
	"fmt"
	"os"
)

// Logf writes to stderr. Generic JSON arguments are indented, anything
// with a String method (values, keys, errors) prints as usual.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
