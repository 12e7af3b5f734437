package lib

import (
	"fmt"
	"io"
)

// Report prints a non-nil error to w and returns the process exit code.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(w, "Error:", err)
	return 1
}
