package main

import (
	"os"
	"runtime/debug"

	"github.com/canopy-network/swap/cmd"
	"github.com/canopy-network/swap/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("SWAP CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
