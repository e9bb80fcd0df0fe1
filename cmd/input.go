package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// readInput reads the SQL named by args: a file path, or standard input when
// args is empty or "-".
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read standard input")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.Wrapf(err, "failed to read SQL file: %s", args[0])
	}
	return string(data), nil
}
