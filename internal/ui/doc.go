// Package ui provides semantic text formatting for openseason CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set, or fatih/color detects a dumb terminal, text decorations are used
// instead so the meaning survives in logs and pipes:
//
//	ui.Code.Sprint("openseason hunt list")  // `openseason hunt list`
//	ui.Path.Sprint("~/.open-season/salt")   // unchanged
//	ui.CaseID.Sprint("operation-x")         // [operation-x]
//	ui.Muted.Sprint("no evidence")          // (no evidence)
package ui
