package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/shipload/internal/cli"
	"github.com/vvka-141/shipload/pkg/shipload"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(shipload.ExitPanic)
		}
	}()

	if os.Getenv("SHIPLOAD_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(shipload.ExitCodeForError(err))
	}
}
