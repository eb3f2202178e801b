package main

import (
	"encoding/json"
	"io"
	"os"
)

// readInput returns the content of path, or of stdin for the "-" sentinel.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or to stdout for the default sentinel.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, FilePermissions)
}

// loadData decodes the argument values for a render from an inline JSON
// object or a JSON file. A file wins over the inline form; with neither
// present the values are empty.
func loadData(jsonStr, filePath string) (map[string]any, error) {
	var raw []byte
	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		raw = data
	case jsonStr != "":
		raw = []byte(jsonStr)
	default:
		return make(map[string]any), nil
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}
