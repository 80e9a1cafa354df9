// Package goroutine provides panic-safe wrappers for background work.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/monitor/internal/shared/logger"
)

// Recover wraps fn so that a panic is logged with its stack and returned as an
// error instead of crashing the process. Intended for errgroup.Go.
func Recover(log logger.Interface, name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				err = fmt.Errorf("%s panicked: %v", name, r)
			}
		}()
		return fn()
	}
}
