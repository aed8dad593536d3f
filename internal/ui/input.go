package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/javiermolinar/habitcal/internal/calendar"
)

// readRequest reads a calendar request document from path, or from stdin
// when path is "-". YAML is used for .yaml/.yml files and for stdin input
// that does not start with '{'.
func readRequest(path string, stdin io.Reader) (calendar.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return calendar.Request{}, fmt.Errorf("reading input: %w", err)
	}

	if isYAML(path, data) {
		return calendar.DecodeRequestYAML(data)
	}
	return calendar.DecodeRequest(data)
}

func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	return !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}
