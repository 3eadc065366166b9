package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFiles(t *testing.T) {
	t.Run("WriteLines then ReadLines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "lines.txt")
		want := []string{"first", "", "third: with colon"}

		if err := WriteLines(path, want); err != nil {
			t.Fatalf("WriteLines() error = %v", err)
		}

		got, err := ReadLines(path)
		if err != nil {
			t.Fatalf("ReadLines() error = %v", err)
		}

		if len(got) != len(want) {
			t.Fatalf("ReadLines() returned %d lines, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("line %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("ReadLines strips carriage returns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "crlf.txt")
		if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		got, err := ReadLines(path)
		if err != nil {
			t.Fatalf("ReadLines() error = %v", err)
		}
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("ReadLines() = %q, want [a b]", got)
		}
	})

	t.Run("ReadLines missing file", func(t *testing.T) {
		if _, err := ReadLines(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("ReadLinesOrEmpty missing file", func(t *testing.T) {
		got, err := ReadLinesOrEmpty(filepath.Join(t.TempDir(), "missing.txt"))
		if err != nil {
			t.Fatalf("ReadLinesOrEmpty() error = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("ReadLinesOrEmpty() = %v, want empty slice", got)
		}
	})

	t.Run("ReadLinesOrEmpty directory is an error", func(t *testing.T) {
		if _, err := ReadLinesOrEmpty(t.TempDir()); err == nil {
			t.Error("expected error when reading a directory")
		}
	})

	t.Run("ReadLinesOrEmpty path under a regular file", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		got, err := ReadLinesOrEmpty(filepath.Join(blocker, "lines.txt"))
		if err != nil {
			t.Fatalf("ReadLinesOrEmpty() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("ReadLinesOrEmpty() = %v, want empty slice", got)
		}
	})

	t.Run("WriteLines under a regular file fails", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if err := WriteLines(filepath.Join(blocker, "lines.txt"), []string{"new"}); err == nil {
			t.Fatal("expected error when parent is a regular file")
		}
		if content, _ := os.ReadFile(blocker); string(content) != "x\n" {
			t.Errorf("blocking file changed: %q", content)
		}
	})

	t.Run("WriteLines normalizes CRLF input to LF", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "crlf.txt")
		if err := os.WriteFile(path, []byte("a\r\nb"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		lines, err := ReadLines(path)
		if err != nil {
			t.Fatalf("ReadLines() error = %v", err)
		}
		if err := WriteLines(path, lines); err != nil {
			t.Fatalf("WriteLines() error = %v", err)
		}
		if content, _ := os.ReadFile(path); string(content) != "a\nb\n" {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("WriteLines empty content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.txt")
		if err := WriteLines(path, nil); err != nil {
			t.Fatalf("WriteLines() error = %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("file should exist: %v", err)
		}
		if info.Size() != 0 {
			t.Errorf("expected empty file, got %d bytes", info.Size())
		}
	})

	t.Run("WriteLines onto a directory fails", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "target")
		if err := os.Mkdir(target, 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}

		if err := WriteLines(target, []string{"new"}); err == nil {
			t.Fatal("expected error when target is a directory")
		}

		info, err := os.Stat(target)
		if err != nil || !info.IsDir() {
			t.Errorf("target directory should be untouched: %v", err)
		}
	})
}
