package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/credentials"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	CatalogView
	WatchlistView
)

// Catalog is the read side of the movie catalog the TUI browses.
type Catalog interface {
	ListAll() []models.Movie
	Get(title string) (*models.Movie, bool)
}

// Watchlist is the per-user list the TUI edits.
type Watchlist interface {
	AddMovie(username, title string) error
	RemoveMovie(username, title string) (bool, error)
	ListForUser(username string) []string
}

// Registrar creates accounts from the login view.
type Registrar interface {
	Register(username, password string) (bool, error)
}

// Deps are the stores the TUI works against.
type Deps struct {
	Auth      credentials.Authenticator
	Registrar Registrar
	Catalog   Catalog
	Watchlist Watchlist
	Logger    *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	deps          Deps
	logger        *log.Logger
	view          ViewState
	width         int
	height        int
	form          loginForm
	user          string
	catalogList   list.Model
	watchlistList list.Model
	status        string
	err           error
	help          help.Model
	keys          keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(deps Deps) *Model {
	logger := deps.Logger
	if logger == nil {
		logger = shared.DiscardLogger()
	}

	return &Model{
		deps:          deps,
		logger:        logger,
		view:          LoginView,
		form:          newLoginForm(),
		catalogList:   newList("Catalog"),
		watchlistList: newList("Watchlist"),
		help:          help.New(),
		keys:          newKeyMap(),
	}
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

// Init starts the cursor blinking in the login form.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("mvx"), m.form.inputs[fieldUsername].Focus())
}

// ViewState reports which view is showing.
func (m *Model) ViewState() ViewState { return m.view }

// User returns the logged-in username, or "" before login.
func (m *Model) User() string { return m.user }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.catalogList.SetSize(msg.Width-4, msg.Height-8)
		m.watchlistList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case CatalogView:
			return m.handleCatalogKeys(msg)
		case WatchlistView:
			return m.handleWatchlistKeys(msg)
		}

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case statusMsg:
		m.status = msg.text
		m.err = msg.err
		return m, nil
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LoginView:
		body = m.renderLogin()
	case CatalogView:
		body = m.renderList(m.catalogList, m.keys.add, m.keys.watchlist, m.keys.logout, m.keys.quit)
	case WatchlistView:
		body = m.renderList(m.watchlistList, m.keys.remove, m.keys.back, m.keys.logout, m.keys.quit)
	}

	return fmt.Sprintf("%s\n%s", body, m.renderStatus())
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc:
		return m, tea.Quit
	case key.Matches(msg, m.keys.register):
		m.form.toggleMode()
		m.status, m.err = "", nil
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m, m.submitLogin()
	case key.Matches(msg, m.keys.nextField):
		m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.prevField):
		m.form.prev()
		return m, nil
	}

	return m, m.form.update(msg)
}

// submitLogin validates the form and returns a command that runs the login or registration.
func (m *Model) submitLogin() tea.Cmd {
	username, password := m.form.username(), m.form.password()
	registering := m.form.registering

	if registering {
		if err := credentials.ValidateRegistration(username, password, m.form.confirm()); err != nil {
			m.status, m.err = "", err
			return nil
		}
	} else if username == "" || password == "" {
		m.status, m.err = "", fmt.Errorf("%w: enter a username and password", shared.ErrMissingArgument)
		return nil
	}

	m.form.clearPasswords()
	m.status, m.err = "Checking credentials...", nil

	auth, registrar := m.deps.Auth, m.deps.Registrar
	return func() tea.Msg {
		if registering {
			if registrar == nil {
				return loginResultMsg{username: username, err: shared.ErrNotImplemented}
			}
			ok, err := registrar.Register(username, password)
			return loginResultMsg{username: username, ok: ok, registered: true, err: err}
		}

		ok, err := auth.Authenticate(username, password)
		return loginResultMsg{username: username, ok: ok, err: err}
	}
}

func (m *Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err != nil:
		m.logger.Warn("login failed", "username", msg.username, "err", msg.err)
		m.status, m.err = "", msg.err
		return m, nil
	case !msg.ok && msg.registered:
		m.status, m.err = "", fmt.Errorf("%w: %s", shared.ErrUserExists, msg.username)
		return m, nil
	case !msg.ok:
		m.logger.Info("invalid credentials", "username", msg.username)
		m.status, m.err = "", shared.ErrAuthFailed
		return m, nil
	}

	m.logger.Info("user logged in", "username", msg.username, "registered", msg.registered)
	m.user = msg.username
	m.form = newLoginForm()
	m.view = CatalogView
	m.status, m.err = fmt.Sprintf("Logged in as %s", m.user), nil
	return m, m.refreshCatalog()
}

func (m *Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.catalogList.FilterState() == list.Filtering {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		if item, ok := m.catalogList.SelectedItem().(movieItem); ok {
			m.addToWatchlist(item.movie.Title())
		}
		return m, nil
	case key.Matches(msg, m.keys.watchlist):
		m.view = WatchlistView
		m.refreshWatchlist()
		return m, nil
	case key.Matches(msg, m.keys.logout):
		return m.logout()
	}

	return m.updateActive(msg)
}

func (m *Model) handleWatchlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.watchlistList.FilterState() == list.Filtering {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.watchlistList.SelectedItem().(watchlistItem); ok {
			m.removeFromWatchlist(item.title)
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.view = CatalogView
		return m, nil
	case key.Matches(msg, m.keys.logout):
		return m.logout()
	}

	return m.updateActive(msg)
}

// addToWatchlist runs in Update so watchlist writes never overlap.
func (m *Model) addToWatchlist(title string) {
	if err := m.deps.Watchlist.AddMovie(m.user, title); err != nil {
		m.logger.Error("failed to add to watchlist", "username", m.user, "title", title, "err", err)
		m.status, m.err = "", err
		return
	}
	m.status, m.err = fmt.Sprintf("Added %q to your watchlist", title), nil
}

func (m *Model) removeFromWatchlist(title string) {
	removed, err := m.deps.Watchlist.RemoveMovie(m.user, title)
	switch {
	case err != nil:
		m.logger.Error("failed to remove from watchlist", "username", m.user, "title", title, "err", err)
		m.status, m.err = "", err
	case !removed:
		m.status, m.err = "", fmt.Errorf("%w: %s", shared.ErrNotInWatchlist, title)
	default:
		m.status, m.err = fmt.Sprintf("Removed %q from your watchlist", title), nil
	}
	m.refreshWatchlist()
}

func (m *Model) refreshCatalog() tea.Cmd {
	movies := m.deps.Catalog.ListAll()
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{movie: movie}
	}
	return m.catalogList.SetItems(items)
}

func (m *Model) refreshWatchlist() {
	titles := m.deps.Watchlist.ListForUser(m.user)
	items := make([]list.Item, len(titles))
	for i, title := range titles {
		item := watchlistItem{title: title}
		if movie, ok := m.deps.Catalog.Get(title); ok {
			item.movie = movie
		}
		items[i] = item
	}
	m.watchlistList.SetItems(items)
	m.watchlistList.Title = fmt.Sprintf("%s's watchlist", m.user)
}

func (m *Model) logout() (tea.Model, tea.Cmd) {
	m.logger.Info("user logged out", "username", m.user)
	m.user = ""
	m.view = LoginView
	m.form = newLoginForm()
	m.watchlistList.SetItems(nil)
	m.status, m.err = "", nil
	return m, nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LoginView:
		cmd = m.form.update(msg)
	case CatalogView:
		m.catalogList, cmd = m.catalogList.Update(msg)
	case WatchlistView:
		m.watchlistList, cmd = m.watchlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) renderLogin() string {
	title := "Log in"
	helpKeys := []key.Binding{m.keys.submit, m.keys.nextField, m.keys.register}
	if m.form.registering {
		title = "Register"
	}

	return fmt.Sprintf("%s\n%s\n%s", styles.title.Render(title), m.form.view(), styles.help.Render(m.help.ShortHelpView(helpKeys)))
}

func (m *Model) renderList(l list.Model, keys ...key.Binding) string {
	return fmt.Sprintf("%s\n\n%s", l.View(), m.help.ShortHelpView(keys))
}

func (m *Model) renderStatus() string {
	switch {
	case m.err == nil && m.status == "":
		return ""
	case m.err == nil:
		return styles.ok.Render(m.status)
	case errors.Is(m.err, shared.ErrTooManyAttempts):
		return styles.warn.Render("Too many attempts, wait a moment and try again")
	default:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
}
