package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readSource returns the contents of path, or of standard input when path
// is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

func sourceName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
