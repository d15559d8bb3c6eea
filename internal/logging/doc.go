// Package logger provides leveled logging for openseason CLI commands.
//
// Output is formatted with colored prefixes from fatih/color. Verbosity is
// controlled by two flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages
//
// Warnings and errors are always shown. Everything goes to stderr.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Exporting %d entries", count)
//
// Commands create a logger in their PersistentPreRun and use it to report
// observable events, such as skipped archive entries.
package logger
