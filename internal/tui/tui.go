// Package tui is the interactive client: a credential form when no session
// token is stored, the todo list once one is. The session store decides
// which view is shown, at startup and after every login/logout transition.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gqtodo/gqtodo/internal/api"
	"github.com/gqtodo/gqtodo/internal/cache"
	"github.com/gqtodo/gqtodo/internal/session"
)

type view int

const (
	viewAuth view = iota
	viewTodos
)

// Model is the root Bubble Tea model. It owns the session store, the API
// client and the read-cache, and delegates to the active view.
type Model struct {
	sess   *session.Store
	client *api.Client
	cache  *cache.Cache
	log    *zap.Logger

	view  view
	auth  authModel
	todos todosModel

	width  int
	height int
}

// New builds the root model. The initial view follows the persisted
// session state.
func New(sess *session.Store, client *api.Client, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		sess:   sess,
		client: client,
		cache:  cache.New(),
		log:    log,
		auth:   newAuthModel(),
		todos:  newTodosModel(),
	}
	if sess.LoggedIn() {
		m.view = viewTodos
	}
	return m
}

// Run starts the program in the alternate screen.
func Run(sess *session.Store, client *api.Client, log *zap.Logger) error {
	p := tea.NewProgram(New(sess, client, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.view == viewTodos {
		return m.todos.enter(m.client)
	}
	return m.auth.enter()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case authDoneMsg:
		if msg.err == nil {
			// the only way in: a token from a successful signup/login
			if err := m.sess.Set(msg.token); err != nil {
				m.log.Warn("persist token", zap.Error(err))
			}
			m.view = viewTodos
			m.todos = newTodosModel()
			return m, m.todos.enter(m.client)
		}

	case logoutMsg:
		if m.sess.EnvSourced() {
			// Set cannot clear an env-provided token; without this check
			// the auth view would show while requests stay authenticated
			m.todos.opErr = "token is provided by " + session.EnvToken + " (unset it to log out)"
			return m, nil
		}
		// user-initiated, unconditional, no server call
		if err := m.sess.Set(""); err != nil {
			m.log.Warn("clear token", zap.Error(err))
		}
		m.view = viewAuth
		m.auth = newAuthModel()
		return m, m.auth.enter()
	}

	var cmd tea.Cmd
	switch m.view {
	case viewAuth:
		m.auth, cmd = m.auth.update(msg, m.client)
	case viewTodos:
		m.todos, cmd = m.todos.update(msg, m.client, m.cache, m.log)
	}
	return m, cmd
}

func (m Model) View() string {
	switch m.view {
	case viewTodos:
		return m.todos.view(m.width, m.height)
	default:
		return m.auth.view(m.width, m.height)
	}
}
