package cinit

import (
	"fmt"

	"github.com/golang/glog"
)

// Diagnostics is the fatal-error sink every initializer error class
// funnels through Fatalf, which never returns. Built on glog for
// unrecoverable states: classify, then report and terminate the
// compilation unit.
type Diagnostics struct{}

var diag = Diagnostics{}

// Diag returns the process-wide diagnostics sink. It is a function
// rather than a bare var so call sites read like a free error(...)
// call rather than a field access.
func Diag() *Diagnostics { return &diag }

// Fatalf reports a fatal initializer error and terminates the
// process; every listed error class is unconditionally fatal for the
// compilation unit.
func (*Diagnostics) Fatalf(format string, args ...any) {
	glog.FatalDepth(1, fmt.Sprintf(format, args...))
}

// Tracef emits a non-fatal trace line through glog.Infof, only when
// glog's verbosity is 1 or more. The initializer engine itself makes
// no Tracef calls; the CLI's -trace flag is its only caller.
func (*Diagnostics) Tracef(format string, args ...any) {
	if glog.V(1) {
		glog.Infof(format, args...)
	}
}
