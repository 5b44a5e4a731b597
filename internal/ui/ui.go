package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/media"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/session"
	"github.com/desertthunder/marquee/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	DetailView
	SavedView
	LoginView
	SignupView
)

// noticeTTL is how long transient messages stay on screen.
const noticeTTL = 3 * time.Second

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	catalog   services.CatalogService
	account   services.AccountService
	session   *session.Store
	prober    *media.Prober
	mediaHost string
	logger    *log.Logger

	width  int
	height int

	// home view
	filter    filterPanel
	query     models.FilterQuery
	movieList list.Model
	listReady bool
	movies    []models.Movie
	savedIDs  map[int]bool
	moviesGen int
	savedGen  int

	// detail view
	detail    detailState
	detailGen int

	// saved view
	savedList    list.Model
	savedReady   bool
	savedMovies  []models.Movie
	savedViewGen int

	// auth forms
	login  authForm
	signup authForm

	notice    string
	noticeErr bool
	noticeSeq int

	help help.Model
	keys keyMap
}

// ModelOpts contains the dependencies injected into the root model.
type ModelOpts struct {
	Catalog   services.CatalogService
	Account   services.AccountService
	Session   *session.Store
	Prober    *media.Prober
	MediaHost string
	Logger    *log.Logger
}

type moviesFetchedMsg struct {
	gen    int
	movies []models.Movie
	err    error
}

type savedIDsMsg struct {
	gen int
	ids map[int]bool
	err error
}

type detailFetchedMsg struct {
	gen    int
	detail *models.MovieDetail
	err    error
}

type savedMoviesMsg struct {
	gen    int
	movies []models.Movie
	err    error
}

type imageCheckedMsg struct {
	gen int
	key imageKey
	err error
}

type toggleDoneMsg struct {
	movieID int
	saving  bool
	err     error
}

type loginDoneMsg struct {
	user *models.User
	err  error
}

type signupDoneMsg struct {
	err error
}

type noticeExpiredMsg struct {
	seq int
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Model{
		ctx:       ctx,
		view:      HomeView,
		catalog:   opts.Catalog,
		account:   opts.Account,
		session:   opts.Session,
		prober:    opts.Prober,
		mediaHost: opts.MediaHost,
		logger:    opts.Logger,
		filter:    newFilterPanel(),
		query:     models.DefaultFilter(),
		savedIDs:  map[int]bool{},
		login:     newAuthForm(loginMode),
		signup:    newAuthForm(signupMode),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init kicks off the two independent home fetches: the movie collection and,
// when a session exists, the user's saved ids.
func (m *Model) Init() tea.Cmd {
	return m.refreshHome(true)
}

// refreshHome starts a movie collection fetch for the current query and,
// when includeSaved is set and a session exists, a saved-ids fetch. Both
// carry generation numbers so superseded responses get discarded instead of
// winning a write race.
func (m *Model) refreshHome(includeSaved bool) tea.Cmd {
	m.moviesGen++
	cmds := []tea.Cmd{m.fetchMovies(m.moviesGen, m.query)}

	if includeSaved {
		if user := m.session.Current(); user != nil {
			m.savedGen++
			cmds = append(cmds, m.fetchSavedIDs(m.savedGen, user.ID))
		} else {
			m.savedIDs = map[int]bool{}
		}
	}

	return tea.Batch(cmds...)
}

func (m *Model) fetchMovies(gen int, query models.FilterQuery) tea.Cmd {
	return func() tea.Msg {
		movies, err := m.catalog.Movies(m.ctx, query)
		return moviesFetchedMsg{gen: gen, movies: movies, err: err}
	}
}

func (m *Model) fetchSavedIDs(gen, userID int) tea.Cmd {
	return func() tea.Msg {
		ids, err := m.catalog.SavedIDs(m.ctx, userID)
		return savedIDsMsg{gen: gen, ids: ids, err: err}
	}
}

func (m *Model) fetchDetail(gen, id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.catalog.Movie(m.ctx, id)
		return detailFetchedMsg{gen: gen, detail: detail, err: err}
	}
}

func (m *Model) fetchSavedMovies(gen, userID int) tea.Cmd {
	return func() tea.Msg {
		movies, err := m.catalog.SavedMovies(m.ctx, userID)
		return savedMoviesMsg{gen: gen, movies: movies, err: err}
	}
}

func (m *Model) probeImage(gen int, k imageKey, url string) tea.Cmd {
	return func() tea.Msg {
		return imageCheckedMsg{gen: gen, key: k, err: m.prober.Check(m.ctx, url)}
	}
}

// showNotice displays a transient message that auto-clears after noticeTTL.
func (m *Model) showNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filter.setWidth(msg.Width)
		if m.listReady {
			m.movieList.SetSize(msg.Width-4, msg.Height-10)
		}
		if m.savedReady {
			m.savedList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case moviesFetchedMsg:
		return m.handleMoviesFetched(msg)

	case savedIDsMsg:
		return m.handleSavedIDs(msg)

	case detailFetchedMsg:
		return m.handleDetailFetched(msg)

	case savedMoviesMsg:
		return m.handleSavedMovies(msg)

	case imageCheckedMsg:
		if msg.gen != m.detailGen {
			return m, nil
		}
		slot := m.detail.slot(msg.key)
		if msg.err != nil {
			*slot = slot.Failed(m.detail.placeholderFor(msg.key))
		} else {
			*slot = slot.OK()
		}
		return m, nil

	case toggleDoneMsg:
		if msg.err != nil {
			// roll the optimistic flip back so the card never lies
			// about server state for longer than one round trip
			m.logger.Error("save toggle failed", "movie_id", msg.movieID, "error", msg.err)
			m.setSaved(msg.movieID, !msg.saving)
			return m, m.showNotice("Action failed", true)
		}
		return m, nil

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case signupDoneMsg:
		m.signup.busy = false
		if msg.err != nil {
			m.signup.notice = "Signup failed. Please try again."
			m.signup.failed = true
			return m, nil
		}
		m.signup.notice = "Signup successful! You can now login."
		m.signup.failed = false
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleMoviesFetched(msg moviesFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.moviesGen {
		return m, nil
	}
	if msg.err != nil {
		// degrade to an empty list, never a blocking error screen
		m.logger.Error("failed to fetch movies", "error", msg.err)
		msg.movies = nil
	}
	m.movies = msg.movies
	m.movieList = list.New(movieItems(m.movies, m.savedIDs, false), list.NewDefaultDelegate(), 0, 0)
	m.movieList.Title = "Discover Movies"
	m.movieList.SetSize(m.width-4, m.height-10)
	m.listReady = true
	return m, nil
}

func (m *Model) handleSavedIDs(msg savedIDsMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.savedGen {
		return m, nil
	}
	if msg.err != nil {
		m.logger.Error("failed to fetch saved ids", "error", msg.err)
		msg.ids = map[int]bool{}
	}
	m.savedIDs = msg.ids
	if m.listReady {
		m.movieList.SetItems(movieItems(m.movies, m.savedIDs, false))
	}
	m.detail.saved = m.savedIDs[m.detail.id]
	return m, nil
}

func (m *Model) handleDetailFetched(msg detailFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.detailGen {
		return m, nil
	}
	if msg.err != nil {
		m.logger.Error("failed to fetch movie detail", "id", m.detail.id, "error", msg.err)
		m.view = HomeView
		return m, m.showNotice("Could not load movie", true)
	}

	m.detail.movie = msg.detail
	m.detail.seedSlots(m.mediaHost)

	var cmds []tea.Cmd
	for _, k := range []imageKey{imgBanner, imgHero, imgHeroine} {
		slot := m.detail.slot(k)
		if slot.State == media.SlotPending && slot.URL != "" {
			cmds = append(cmds, m.probeImage(m.detailGen, k, slot.URL))
		}
	}

	if user := m.session.Current(); user != nil {
		m.savedGen++
		cmds = append(cmds, m.fetchSavedIDs(m.savedGen, user.ID))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleSavedMovies(msg savedMoviesMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.savedViewGen {
		return m, nil
	}
	if msg.err != nil {
		m.logger.Error("failed to fetch saved movies", "error", msg.err)
		msg.movies = nil
	}
	m.savedMovies = msg.movies
	// cards here are forced saved; the list itself is the saved set
	m.savedList = list.New(movieItems(m.savedMovies, nil, true), list.NewDefaultDelegate(), 0, 0)
	m.savedList.Title = "Your Saved Movies"
	m.savedList.SetSize(m.width-4, m.height-8)
	m.savedReady = true
	return m, nil
}

func (m *Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.notice = "Login failed. Please try again."
		m.login.failed = true
		return m, nil
	}

	if err := m.session.Login(msg.user); err != nil {
		m.logger.Error("failed to persist session", "error", err)
		m.login.notice = "Login failed. Please try again."
		m.login.failed = true
		return m, nil
	}

	m.view = HomeView
	return m, m.refreshHome(true)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case HomeView:
		return m.handleHomeKeys(msg)
	case DetailView:
		return m.handleDetailKeys(msg)
	case SavedView:
		return m.handleSavedKeys(msg)
	case LoginView, SignupView:
		return m.handleAuthKeys(msg)
	}
	return m, nil
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filter.active {
		if msg.String() == "esc" {
			m.filter.blur()
			return m, nil
		}
		var emitted *models.FilterQuery
		var cmd tea.Cmd
		m.filter, emitted, cmd = m.filter.Update(msg)
		if emitted != nil {
			m.query = *emitted
			return m, tea.Batch(cmd, m.refreshHome(false))
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.filter):
		return m, m.filter.focusSearchInput()

	case key.Matches(msg, m.keys.panel):
		m.filter.toggle()
		return m, nil

	case key.Matches(msg, m.keys.enter):
		if item, ok := m.selectedHomeItem(); ok {
			return m, m.openDetail(item.movie.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.save):
		if item, ok := m.selectedHomeItem(); ok {
			return m, m.toggleSave(item.movie.ID, item.saved)
		}
		return m, nil

	case key.Matches(msg, m.keys.saved):
		return m, m.openSaved()

	case key.Matches(msg, m.keys.login):
		m.login = newAuthForm(loginMode)
		m.view = LoginView
		return m, nil

	case key.Matches(msg, m.keys.signup):
		m.signup = newAuthForm(signupMode)
		m.view = SignupView
		return m, nil

	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	}

	return m.updateLists(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		return m, nil
	case key.Matches(msg, m.keys.save):
		if m.detail.movie != nil {
			return m, m.toggleSave(m.detail.id, m.detail.saved)
		}
	}
	return m, nil
}

func (m *Model) handleSavedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if m.savedReady {
			if item, ok := m.savedList.SelectedItem().(movieItem); ok {
				return m, m.openDetail(item.movie.ID)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.save):
		if m.savedReady {
			if item, ok := m.savedList.SelectedItem().(movieItem); ok {
				return m, m.toggleSave(item.movie.ID, item.saved)
			}
		}
		return m, nil
	}
	return m.updateLists(msg)
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.view = HomeView
		return m, nil
	}

	if m.view == LoginView {
		form, submit, cmd := m.login.Update(msg)
		m.login = form
		if submit {
			vals := form.values()
			return m, tea.Batch(cmd, m.submitLogin(vals[0], vals[1]))
		}
		return m, cmd
	}

	form, submit, cmd := m.signup.Update(msg)
	m.signup = form
	if submit {
		vals := form.values()
		return m, tea.Batch(cmd, m.submitSignup(vals[0], vals[1], vals[2]))
	}
	return m, cmd
}

func (m *Model) submitLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.account.Login(m.ctx, email, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m *Model) submitSignup(username, email, password string) tea.Cmd {
	return func() tea.Msg {
		return signupDoneMsg{err: m.account.Signup(m.ctx, username, email, password)}
	}
}

func (m *Model) selectedHomeItem() (movieItem, bool) {
	if !m.listReady {
		return movieItem{}, false
	}
	item, ok := m.movieList.SelectedItem().(movieItem)
	return item, ok
}

// openDetail navigates to the detail view for id, bumping the generation so
// a response for a superseded id is discarded rather than applied.
func (m *Model) openDetail(id int) tea.Cmd {
	m.detailGen++
	m.detail = detailState{id: id, saved: m.savedIDs[id]}
	m.view = DetailView
	return m.fetchDetail(m.detailGen, id)
}

// openSaved navigates to the saved-movies view, fetching only when a
// session exists.
func (m *Model) openSaved() tea.Cmd {
	m.view = SavedView
	user := m.session.Current()
	if user == nil {
		return nil
	}
	m.savedViewGen++
	return m.fetchSavedMovies(m.savedViewGen, user.ID)
}

func (m *Model) logout() tea.Cmd {
	if m.session.Current() == nil {
		return nil
	}
	if err := m.session.Logout(); err != nil {
		m.logger.Error("failed to clear session", "error", err)
	}
	m.view = HomeView
	return tea.Batch(m.showNotice("Logged out", false), m.refreshHome(true))
}

// toggleSave flips the saved relation for movieID. Without a session it
// shows the login prompt and issues no network call. With one, the flip is
// optimistic and toggleDoneMsg reverts it if the call fails.
func (m *Model) toggleSave(movieID int, currentlySaved bool) tea.Cmd {
	user := m.session.Current()
	if user == nil {
		return m.showNotice("Login to save movies", true)
	}

	saving := !currentlySaved
	m.setSaved(movieID, saving)

	confirmation := "Added to saved"
	if !saving {
		confirmation = "Removed from saved"
	}

	call := func() tea.Msg {
		var err error
		if saving {
			err = m.catalog.Save(m.ctx, user.ID, movieID)
		} else {
			err = m.catalog.Unsave(m.ctx, user.ID, movieID)
		}
		return toggleDoneMsg{movieID: movieID, saving: saving, err: err}
	}

	return tea.Batch(m.showNotice(confirmation, false), call)
}

// setSaved applies a saved flag across every place the movie is rendered.
func (m *Model) setSaved(movieID int, saved bool) {
	if saved {
		m.savedIDs[movieID] = true
	} else {
		delete(m.savedIDs, movieID)
	}

	if m.listReady {
		for i, item := range m.movieList.Items() {
			if mi, ok := item.(movieItem); ok && mi.movie.ID == movieID {
				mi.saved = saved
				m.movieList.SetItem(i, mi)
			}
		}
	}

	if m.savedReady {
		for i, item := range m.savedList.Items() {
			if mi, ok := item.(movieItem); ok && mi.movie.ID == movieID {
				mi.saved = saved
				m.savedList.SetItem(i, mi)
			}
		}
	}

	if m.detail.id == movieID {
		m.detail.saved = saved
	}
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case HomeView:
		if m.listReady {
			m.movieList, cmd = m.movieList.Update(msg)
		}
	case SavedView:
		if m.savedReady {
			m.savedList, cmd = m.savedList.Update(msg)
		}
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case HomeView:
		return m.renderHome()
	case DetailView:
		return m.renderDetailView()
	case SavedView:
		return m.renderSaved()
	case LoginView:
		return m.login.View()
	case SignupView:
		return m.signup.View()
	default:
		return ""
	}
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return "\n" + styles.err.Render(m.notice)
	}
	return "\n" + styles.ok.Render(m.notice)
}

func (m *Model) renderHome() string {
	listView := styles.help.Render("Loading movies...")
	if m.listReady {
		listView = m.movieList.View()
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.save, m.keys.filter, m.keys.saved, m.keys.quit}
	if m.session.Current() == nil {
		helpKeys = append(helpKeys, m.keys.login)
	} else {
		helpKeys = append(helpKeys, m.keys.logout)
	}

	return fmt.Sprintf("%s\n\n%s%s\n\n%s", m.filter.View(), listView, m.renderNotice(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetailView() string {
	helpKeys := []key.Binding{m.keys.save, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s%s\n\n%s", m.renderDetail(), m.renderNotice(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderSaved() string {
	if m.session.Current() == nil {
		return fmt.Sprintf("%s\n\n%s",
			"Login to view saved movies",
			m.help.ShortHelpView([]key.Binding{m.keys.login, m.keys.back, m.keys.quit}))
	}

	body := styles.help.Render("Loading saved movies...")
	if m.savedReady {
		if len(m.savedMovies) == 0 {
			body = "No saved movies found."
		} else {
			body = m.savedList.View()
		}
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.save, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s%s\n\n%s", body, m.renderNotice(), m.help.ShortHelpView(helpKeys))
}
