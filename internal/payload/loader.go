// Package payload resolves the text of an extraction answer handed to the CLI.
package payload

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the File value that reads the payload from Source.Stdin.
const Stdin = "-"

// Source describes where a payload comes from.
type Source struct {
	// Name is used in error messages to give more context about the payload.
	Name string
	// Value is inline text provided via flags.
	Value string
	// File points to a file holding the payload. When set it takes precedence
	// over Value. "-" reads from Stdin.
	File string
	// Stdin defaults to os.Stdin.
	Stdin io.Reader
}

// Load returns the resolved payload text, trimmed. An error is returned when
// neither File nor Value hold anything usable.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "payload"
	}

	file := strings.TrimSpace(src.File)
	switch file {
	case "":
	case Stdin:
		in := src.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading %s from stdin: %w", name, err)
		}
		src.Value = string(data)
		src.File = "stdin"
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	value := strings.TrimSpace(src.Value)
	if value == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not provided", name)
	}

	return value, nil
}
