// Package utils provides shared utility functions for the openseason CLI.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # Filesystem Utilities
//
// Functions for validating and probing paths:
//   - ValidateSegment: checks that a name is a single safe path segment
//   - DirExists / FileExists: stat helpers that distinguish "missing" from errors
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - SanitizeName: turns a case name into a portable file stem
//
// # System Utilities
//
//   - Actor: identifies who performed an audited operation
//
// # I/O Utilities
//
//   - ReadStdin: reads piped evidence from standard input
//
// # Terminal Utilities
//
// Password prompting without echo, honoring the OPENSEASON_PASSWORD
// environment variable for non-interactive use.
package utils
