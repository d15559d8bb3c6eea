package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled diagnostics to stderr. Stdout carries command
// output only, which for `evidence show` is decrypted evidence that may be
// piped into another program.
type Logger struct {
	Verbose bool
	Debug   bool
}

var (
	infoPrefix  = color.GreenString("[info] ")
	debugPrefix = color.CyanString("[debug] ")
	warnPrefix  = color.YellowString("[warn] ")
	errorPrefix = color.RedString("[error] ")
)

func emit(prefix, msg string, args ...any) {
	fmt.Fprintf(os.Stderr, prefix+msg+"\n", args...)
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		emit(infoPrefix, msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		emit(debugPrefix, msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	emit(warnPrefix, msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	emit(errorPrefix, msg, args...)
}

// ErrorfAndReturn builds an error from msg, echoing it in debug mode, so
// RunE handlers can bail out in one line.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	if l.Debug {
		emit(errorPrefix, "%v", err)
	}
	return err
}
