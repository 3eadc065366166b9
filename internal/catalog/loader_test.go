package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	tu "github.com/desertthunder/mvx/internal/testing"
)

const sampleCatalog = `index,title,year,runtime,genre,rating,director
1,Inception,2010,148 min,Sci-Fi,8.8,Christopher Nolan
2,"Crouching Tiger, Hidden Dragon",2000,120,Action,7.9,Ang Lee
3,Paprika,2006,unknown,Animation,7.7,Satoshi Kon
`

func TestLoader(t *testing.T) {
	t.Run("LoadFromFile", func(t *testing.T) {
		t.Run("skips header and parses rows", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)

			c, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile failed: %v", err)
			}
			if c.Len() != 3 {
				t.Fatalf("expected 3 movies, got %d", c.Len())
			}

			inception, ok := c.Get("Inception")
			if !ok {
				t.Fatal("Inception not loaded")
			}
			if inception.ReleaseYear() != 2010 || inception.RunningTime() != 148 {
				t.Errorf("unexpected Inception fields: %v", inception)
			}
			if inception.Director() != "Christopher Nolan" {
				t.Errorf("unexpected director %q", inception.Director())
			}
		})

		t.Run("quoted commas stay in the title", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)

			c, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile failed: %v", err)
			}

			m, ok := c.Get("Crouching Tiger, Hidden Dragon")
			if !ok {
				t.Fatalf("quoted title not loaded: %v", c.ListAll())
			}
			if m.Director() != "Ang Lee" {
				t.Errorf("expected director Ang Lee, got %q", m.Director())
			}
		})

		t.Run("non-numeric runtime becomes zero", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)

			c, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile failed: %v", err)
			}

			m, _ := c.Get("Paprika")
			if m.RunningTime() != 0 {
				t.Errorf("expected running time 0, got %d", m.RunningTime())
			}
		})

		t.Run("bad year names the line", func(t *testing.T) {
			content := "index,title,year,runtime,genre,rating,director\n" +
				"1,Heat,1995,170,Crime,8.3,Michael Mann\n" +
				"2,Ran,nineteen,162,Drama,8.2,Akira Kurosawa\n"
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", content)

			_, err := LoadFromFile(path)
			if err == nil {
				t.Fatal("expected error for bad year")
			}
			if !errors.Is(err, shared.ErrMalformedRecord) {
				t.Errorf("expected ErrMalformedRecord, got %v", err)
			}
			if !strings.Contains(err.Error(), "line 3") {
				t.Errorf("error should name line 3: %v", err)
			}
		})

		t.Run("short row is an error", func(t *testing.T) {
			content := "index,title,year,runtime,genre,rating,director\n1,Heat,1995\n"
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", content)

			if _, err := LoadFromFile(path); !errors.Is(err, shared.ErrMalformedRecord) {
				t.Errorf("expected ErrMalformedRecord, got %v", err)
			}
		})

		t.Run("missing file is an error", func(t *testing.T) {
			_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.csv"))
			if err == nil {
				t.Fatal("expected error for missing file")
			}
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("expected not-exist error, got %v", err)
			}
		})

		t.Run("header only yields empty catalog", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", "index,title,year,runtime,genre,rating,director\n")

			c, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile failed: %v", err)
			}
			if c.Len() != 0 {
				t.Errorf("expected empty catalog, got %d", c.Len())
			}
		})

		t.Run("duplicate rows keep the first", func(t *testing.T) {
			content := "h\n1,Heat,1995,170,Crime,8.3,Michael Mann\n2,Heat,2000,90,Crime,5.0,Other\n"
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", content)

			c, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile failed: %v", err)
			}
			m, _ := c.Get("Heat")
			if c.Len() != 1 || m.ReleaseYear() != 1995 {
				t.Errorf("expected first Heat row to win, got %v", c.ListAll())
			}
		})

		t.Run("custom schema", func(t *testing.T) {
			content := "title,director,year,runtime\nHeat,Michael Mann,1995,170\n"
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", content)

			schema := Schema{ColumnTitle, ColumnDirector, ColumnYear, ColumnRuntime}
			c, err := NewLoader(path, WithSchema(schema)).LoadFromFile()
			if err != nil {
				t.Fatalf("LoadFromFile failed: %v", err)
			}
			m, ok := c.Get("Heat")
			if !ok || m.Director() != "Michael Mann" || m.RunningTime() != 170 {
				t.Errorf("unexpected load result: %v", c.ListAll())
			}
		})

		t.Run("invalid schema", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)

			_, err := NewLoader(path, WithSchema(Schema{ColumnTitle, ColumnTitle})).LoadFromFile()
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("DeleteByTitle", func(t *testing.T) {
		t.Run("matches ignoring case", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)

			deleted, err := DeleteByTitle(path, "  inception ")
			if err != nil {
				t.Fatalf("DeleteByTitle failed: %v", err)
			}
			if !deleted {
				t.Fatal("expected a row to be deleted")
			}

			c, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			if _, ok := c.Get("Inception"); ok {
				t.Error("Inception still present after delete")
			}
			if c.Len() != 2 {
				t.Errorf("expected 2 movies after delete, got %d", c.Len())
			}
		})

		t.Run("second delete leaves file untouched", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)

			if _, err := DeleteByTitle(path, "Paprika"); err != nil {
				t.Fatalf("first delete failed: %v", err)
			}
			before := tu.MustReadFile(t, path)

			deleted, err := DeleteByTitle(path, "Paprika")
			if err != nil {
				t.Fatalf("second delete failed: %v", err)
			}
			if deleted {
				t.Error("expected second delete to return false")
			}
			if after := tu.MustReadFile(t, path); after != before {
				t.Errorf("file changed on no-op delete:\nbefore: %q\nafter:  %q", before, after)
			}
		})

		t.Run("header is never removed", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)

			deleted, err := DeleteByTitle(path, "title")
			if err != nil {
				t.Fatalf("DeleteByTitle failed: %v", err)
			}
			if deleted {
				t.Error("header row should not match")
			}
		})

		t.Run("quoted title", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)

			deleted, err := DeleteByTitle(path, "crouching tiger, hidden dragon")
			if err != nil || !deleted {
				t.Fatalf("expected quoted title to be deleted, got %v, %v", deleted, err)
			}
		})

		t.Run("CRLF file is rewritten with LF", func(t *testing.T) {
			crlf := strings.ReplaceAll(sampleCatalog, "\n", "\r\n")
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", crlf)

			if deleted, err := DeleteByTitle(path, "Paprika"); err != nil || !deleted {
				t.Fatalf("expected Paprika to be deleted, got %v, %v", deleted, err)
			}

			want := strings.Join(strings.Split(sampleCatalog, "\n")[:3], "\n") + "\n"
			if got := tu.MustReadFile(t, path); got != want {
				t.Errorf("unexpected content:\nwant %q\ngot  %q", want, got)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			if _, err := DeleteByTitle(filepath.Join(t.TempDir(), "missing.csv"), "Heat"); err == nil {
				t.Error("expected error for missing file")
			}
		})
	})

	t.Run("AppendMovie", func(t *testing.T) {
		t.Run("creates file with header", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data", "movies.csv")
			loader := NewLoader(path)

			if err := loader.AppendMovie(mustMovie(t, "Heat", "Michael Mann", 1995, 170)); err != nil {
				t.Fatalf("AppendMovie failed: %v", err)
			}

			content := tu.MustReadFile(t, path)
			lines := strings.Split(strings.TrimSpace(content), "\n")
			if len(lines) != 2 {
				t.Fatalf("expected header and one row, got %q", content)
			}
			if lines[0] != DefaultSchema.Header() {
				t.Errorf("unexpected header %q", lines[0])
			}
			if lines[1] != ",Heat,1995,170, genre, 0,Michael Mann" {
				t.Errorf("unexpected row %q", lines[1])
			}
		})

		t.Run("round trips through load", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)
			loader := NewLoader(path)

			movie := mustMovie(t, "Lock, Stock and Two Smoking Barrels", "Guy Ritchie", 1998, 107)
			if err := loader.AppendMovie(movie); err != nil {
				t.Fatalf("AppendMovie failed: %v", err)
			}

			c, err := loader.LoadFromFile()
			if err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			got, ok := c.Get(movie.Title())
			if !ok {
				t.Fatalf("appended movie not found: %v", c.ListAll())
			}
			if got.Director() != "Guy Ritchie" || got.ReleaseYear() != 1998 || got.RunningTime() != 107 {
				t.Errorf("unexpected round trip: %v", got)
			}
			if c.Len() != 4 {
				t.Errorf("expected 4 movies, got %d", c.Len())
			}
		})

		t.Run("added titles survive reload unchanged", func(t *testing.T) {
			path := tu.MustWriteFile(t, t.TempDir(), "movies.csv", sampleCatalog)
			loader := NewLoader(path)

			c, err := loader.LoadFromFile()
			if err != nil {
				t.Fatalf("LoadFromFile failed: %v", err)
			}

			if padded, err := models.NewMovie(" Heat", "Michael Mann", 1995, 170); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected padded title to be rejected, got %v, %v", padded, err)
			}

			ran := mustMovie(t, "Ran", " Akira Kurosawa ", 1985, 162)
			if !c.Add(ran) {
				t.Fatal("Add(Ran) returned false")
			}
			if err := loader.AppendMovie(ran); err != nil {
				t.Fatalf("AppendMovie failed: %v", err)
			}

			reloaded, err := loader.LoadFromFile()
			if err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			if reloaded.Len() != c.Len() {
				t.Fatalf("expected %d movies after reload, got %d", c.Len(), reloaded.Len())
			}
			for _, m := range c.ListAll() {
				got, ok := reloaded.Get(m.Title())
				if !ok {
					t.Errorf("title %q missing after reload", m.Title())
					continue
				}
				if got.Director() != m.Director() {
					t.Errorf("director for %q = %q after reload, want %q", m.Title(), got.Director(), m.Director())
				}
			}
		})

		t.Run("nil movie", func(t *testing.T) {
			err := NewLoader(filepath.Join(t.TempDir(), "m.csv")).AppendMovie(nil)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})
}

func TestSchema(t *testing.T) {
	t.Run("ParseRunningTime", func(t *testing.T) {
		tests := []struct {
			raw  string
			want int
		}{
			{"148", 148},
			{"148 min", 148},
			{" 90 ", 90},
			{"unknown", 0},
			{"", 0},
		}

		for _, tt := range tests {
			if got := ParseRunningTime(tt.raw); got != tt.want {
				t.Errorf("ParseRunningTime(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		}
	})

	t.Run("SplitLine", func(t *testing.T) {
		fields, err := SplitLine(`1,"A, B",2000`)
		if err != nil {
			t.Fatalf("SplitLine failed: %v", err)
		}
		if len(fields) != 3 || fields[1] != "A, B" {
			t.Errorf("unexpected fields %q", fields)
		}

		empty, err := SplitLine("")
		if err != nil || len(empty) != 0 {
			t.Errorf("expected no fields for empty line, got %q, %v", empty, err)
		}
	})

	t.Run("Format quotes special characters", func(t *testing.T) {
		m := mustMovie(t, `Say "Hi", Bob`, "X", 2001, 1)
		row := DefaultSchema.Format(m)
		if !strings.Contains(row, `"Say ""Hi"", Bob"`) {
			t.Errorf("title not quoted: %q", row)
		}

		fields, err := SplitLine(row)
		if err != nil {
			t.Fatalf("SplitLine failed: %v", err)
		}
		parsed, err := DefaultSchema.Parse(fields)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if parsed.Title() != m.Title() {
			t.Errorf("round trip title %q, want %q", parsed.Title(), m.Title())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := DefaultSchema.Validate(); err != nil {
			t.Errorf("default schema invalid: %v", err)
		}
		if err := (Schema{ColumnTitle, ColumnYear}).Validate(); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
