package utils

import (
	"fmt"
	"io"
	"os"
)

// MaxStdinEvidence caps a single piece of evidence piped on stdin. The whole
// payload is held in memory while it is encrypted.
const MaxStdinEvidence = 512 << 20

// ReadStdin reads piped evidence from stdin. It refuses to read from an
// interactive terminal, so a forgotten pipe fails fast instead of waiting
// for EOF.
func ReadStdin() ([]byte, error) {
	if IsTerminal() {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe the evidence into this command)")
	}

	data, err := io.ReadAll(io.LimitReader(os.Stdin, MaxStdinEvidence+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) > MaxStdinEvidence {
		clear(data)
		return nil, fmt.Errorf("stdin carries more than %d MiB; add the evidence as a file instead", MaxStdinEvidence>>20)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}

	return data, nil
}
