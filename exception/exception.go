package exception

import (
	"fmt"
	"runtime/debug"

	"github.com/canopy-network/swap/logx"
	"github.com/canopy-network/swap/monitoring"
)

// SafeGo runs fn on its own goroutine. A panic is logged, counted and passed to
// onPanic as an error instead of taking the process down.
func SafeGo(name string, fn func(), onPanic func(error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount(name)
				logx.Error("PANIC", "Panic in: ", name, " ", r, " ", string(debug.Stack()))
				if onPanic != nil {
					onPanic(fmt.Errorf("%s: %v", name, r))
				}
			}
		}()
		fn()
	}()
}
