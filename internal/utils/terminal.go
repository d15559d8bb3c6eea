package utils

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// PasswordEnv is read before prompting, for scripted use.
const PasswordEnv = "OPENSEASON_PASSWORD"

// ReadPassword returns the vault password from PasswordEnv if set, otherwise
// prompts without echo. When stdin carries piped evidence the prompt is
// read from the controlling terminal instead.
func ReadPassword(prompt string) ([]byte, error) {
	if v, ok := os.LookupEnv(PasswordEnv); ok {
		return []byte(v), nil
	}

	if IsTerminal() {
		return readHidden(os.Stdin, prompt)
	}

	tty, err := os.Open(ttyPath())
	if err != nil {
		return nil, fmt.Errorf("no terminal available: set %s to supply the vault password", PasswordEnv)
	}
	defer tty.Close()

	return readHidden(tty, prompt)
}

// readHidden writes prompt to stderr and reads one line from f with echo
// disabled.
func readHidden(f *os.File, prompt string) ([]byte, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal: set %s to supply the vault password", f.Name(), PasswordEnv)
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// IsTerminal reports whether stdin is interactive.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}
