package shared

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/renameio/v2"
)

// maxLineSize bounds a single line in a backing file.
const maxLineSize = 1 << 20

// ReadLines reads every line of the file at path with trailing "\r" removed.
//
// The file handle is closed on every return path.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return lines, nil
}

// ReadLinesOrEmpty behaves like [ReadLines] but treats a missing file as empty prior state.
// A path under a regular file cannot exist either, so ENOTDIR counts as missing.
func ReadLinesOrEmpty(path string) ([]string, error) {
	lines, err := ReadLines(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return []string{}, nil
	}
	return lines, err
}

// WriteLines replaces the file at path with lines, one per line.
//
// Every line ends with "\n", including the last, so a file read with CRLF endings is rewritten with LF.
//
// The content is assembled in memory and written through a temporary file that is renamed over the target,
// so readers see either the old file or the new one, never a partial write.
func WriteLines(path string, lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return WriteFile(path, buf.Bytes())
}

// WriteFile replaces the file at path with data through a temporary file, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
