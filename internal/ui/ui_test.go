package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvx/internal/catalog"
	"github.com/desertthunder/mvx/internal/credentials"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	tu "github.com/desertthunder/mvx/internal/testing"
	"github.com/desertthunder/mvx/internal/watchlist"
)

type fixture struct {
	model     *Model
	watchlist *watchlist.Store
}

func newFixture(t *testing.T, auth credentials.Authenticator) fixture {
	t.Helper()
	dir := t.TempDir()

	users := credentials.NewStore(tu.MustWriteFile(t, dir, "users.txt", "\"admin\":\"admin\"\n"))
	if auth == nil {
		auth = users
	}

	c := catalog.New()
	for _, m := range []struct {
		title, director string
		year, runtime   int
	}{
		{"Heat", "Michael Mann", 1995, 170},
		{"Alien", "Ridley Scott", 1979, 117},
	} {
		movie, err := models.NewMovie(m.title, m.director, m.year, m.runtime)
		if err != nil {
			t.Fatalf("NewMovie failed: %v", err)
		}
		c.Add(movie)
	}

	w, err := watchlist.NewStore(filepath.Join(dir, "watchlist.txt"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	m := NewModel(Deps{Auth: auth, Registrar: users, Catalog: c, Watchlist: w})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return fixture{model: m, watchlist: w}
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func pressRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

// submit presses enter and feeds the resulting message back into the model.
func submit(t *testing.T, m *Model) {
	t.Helper()
	cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		return
	}
	m.Update(cmd())
}

func login(t *testing.T, m *Model, username, password string) {
	t.Helper()
	typeText(m, username)
	press(m, tea.KeyTab)
	typeText(m, password)
	submit(t, m)
}

func TestLoginView(t *testing.T) {
	t.Run("valid credentials open the catalog", func(t *testing.T) {
		f := newFixture(t, nil)
		login(t, f.model, "admin", "admin")

		if f.model.ViewState() != CatalogView {
			t.Fatalf("expected CatalogView, got %v", f.model.ViewState())
		}
		if f.model.User() != "admin" {
			t.Errorf("expected user admin, got %q", f.model.User())
		}
		if len(f.model.catalogList.Items()) != 2 {
			t.Errorf("expected 2 catalog items, got %d", len(f.model.catalogList.Items()))
		}
	})

	t.Run("wrong password stays on login", func(t *testing.T) {
		f := newFixture(t, nil)
		login(t, f.model, "admin", "nope")

		if f.model.ViewState() != LoginView {
			t.Errorf("expected LoginView, got %v", f.model.ViewState())
		}
		if !errors.Is(f.model.err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", f.model.err)
		}
		if f.model.form.password() != "" {
			t.Error("password field should be cleared after submit")
		}
	})

	t.Run("empty form is rejected without a command", func(t *testing.T) {
		f := newFixture(t, nil)

		if cmd := press(f.model, tea.KeyEnter); cmd != nil {
			t.Error("expected no command for empty form")
		}
		if !errors.Is(f.model.err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", f.model.err)
		}
	})

	t.Run("throttled attempts", func(t *testing.T) {
		dir := t.TempDir()
		store := credentials.NewStore(tu.MustWriteFile(t, dir, "users.txt", "\"admin\":\"admin\"\n"))
		f := newFixture(t, credentials.NewThrottle(store, 0.0001, 1))

		login(t, f.model, "admin", "nope")
		typeText(f.model, "admin")
		submit(t, f.model)

		if f.model.ViewState() != LoginView {
			t.Errorf("throttled login should not succeed")
		}
		if !errors.Is(f.model.err, shared.ErrTooManyAttempts) {
			t.Errorf("expected ErrTooManyAttempts, got %v", f.model.err)
		}
		if !strings.Contains(f.model.View(), "Too many attempts") {
			t.Error("expected throttle message in view")
		}
	})

	t.Run("register", func(t *testing.T) {
		t.Run("creates account and logs in", func(t *testing.T) {
			f := newFixture(t, nil)

			press(f.model, tea.KeyCtrlR)
			typeText(f.model, "kim")
			press(f.model, tea.KeyTab)
			typeText(f.model, "pw")
			press(f.model, tea.KeyTab)
			typeText(f.model, "pw")
			submit(t, f.model)

			if f.model.ViewState() != CatalogView || f.model.User() != "kim" {
				t.Errorf("expected kim in catalog view, got %q in %v (err %v)", f.model.User(), f.model.ViewState(), f.model.err)
			}
		})

		t.Run("mismatched confirmation", func(t *testing.T) {
			f := newFixture(t, nil)

			press(f.model, tea.KeyCtrlR)
			typeText(f.model, "kim")
			press(f.model, tea.KeyTab)
			typeText(f.model, "pw")
			press(f.model, tea.KeyTab)
			typeText(f.model, "px")

			if cmd := press(f.model, tea.KeyEnter); cmd != nil {
				t.Error("expected no command for invalid registration")
			}
			if !errors.Is(f.model.err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", f.model.err)
			}
		})

		t.Run("taken username", func(t *testing.T) {
			f := newFixture(t, nil)

			press(f.model, tea.KeyCtrlR)
			typeText(f.model, "admin")
			press(f.model, tea.KeyTab)
			typeText(f.model, "pw")
			press(f.model, tea.KeyTab)
			typeText(f.model, "pw")
			submit(t, f.model)

			if !errors.Is(f.model.err, shared.ErrUserExists) {
				t.Errorf("expected ErrUserExists, got %v", f.model.err)
			}
		})
	})

	t.Run("escape quits", func(t *testing.T) {
		f := newFixture(t, nil)
		cmd := press(f.model, tea.KeyEsc)
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestCatalogAndWatchlistViews(t *testing.T) {
	t.Run("add selected movie", func(t *testing.T) {
		f := newFixture(t, nil)
		login(t, f.model, "admin", "admin")

		pressRune(f.model, 'a')

		got := f.watchlist.ListForUser("admin")
		if len(got) != 1 || got[0] != "Heat" {
			t.Errorf("expected Heat in watchlist, got %v", got)
		}
		if !strings.Contains(f.model.status, "Heat") {
			t.Errorf("unexpected status %q", f.model.status)
		}
	})

	t.Run("remove from watchlist view", func(t *testing.T) {
		f := newFixture(t, nil)
		login(t, f.model, "admin", "admin")

		pressRune(f.model, 'a')
		pressRune(f.model, 'w')
		if f.model.ViewState() != WatchlistView {
			t.Fatalf("expected WatchlistView, got %v", f.model.ViewState())
		}
		if len(f.model.watchlistList.Items()) != 1 {
			t.Fatalf("expected 1 watchlist item, got %d", len(f.model.watchlistList.Items()))
		}

		pressRune(f.model, 'd')

		if got := f.watchlist.ListForUser("admin"); len(got) != 0 {
			t.Errorf("expected empty watchlist, got %v", got)
		}
		if len(f.model.watchlistList.Items()) != 0 {
			t.Errorf("expected list to refresh after removal")
		}
	})

	t.Run("escape returns to catalog", func(t *testing.T) {
		f := newFixture(t, nil)
		login(t, f.model, "admin", "admin")

		pressRune(f.model, 'w')
		press(f.model, tea.KeyEsc)

		if f.model.ViewState() != CatalogView {
			t.Errorf("expected CatalogView, got %v", f.model.ViewState())
		}
	})

	t.Run("logout", func(t *testing.T) {
		f := newFixture(t, nil)
		login(t, f.model, "admin", "admin")

		pressRune(f.model, 'L')

		if f.model.ViewState() != LoginView || f.model.User() != "" {
			t.Errorf("expected logged out state, got %q in %v", f.model.User(), f.model.ViewState())
		}
	})
}
