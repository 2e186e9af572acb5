// Package internal holds helpers shared by the drmprime packages.
package internal

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/drmprime/logger"
)

// Assert panics if mustBeTrue is false. It is used for precondition
// violations, which are caller bugs and never runtime conditions.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	msg := "assertion failed"
	if len(extraArgs) > 0 {
		msg += ": " + fmt.Sprint(extraArgs...)
	}
	logger.Panic(ctx, msg)
	panic(msg) // the logger in ctx is not required to panic
}
