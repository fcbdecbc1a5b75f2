// Command sketchsolve is an interactive console for building a sketch one
// entity or constraint at a time and solving it, the same incremental-build
// workflow the embedding API supports through its own allocator calls.
package main

import (
	"fmt"
	"os"
)

func main() {
	r := NewREPL()
	if err := r.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "sketchsolve:", err)
		os.Exit(1)
	}
}
