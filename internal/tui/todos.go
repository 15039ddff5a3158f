package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gqtodo/gqtodo/internal/api"
	"github.com/gqtodo/gqtodo/internal/cache"
	"github.com/gqtodo/gqtodo/internal/model"
)

// listItem adapts model.Todo to bubbles/list.Item
type listItem struct {
	todo model.Todo
}

func (i listItem) titleText() string {
	box := boxUnchecked
	if i.todo.Done {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.todo.Title)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.titleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)

	boxStyled := mutedStyle.Render(boxUnchecked)
	textStyled := it.todo.Title
	if it.todo.Done {
		boxStyled = successStyle.Render(boxChecked)
		textStyled = doneStyle.Render(it.todo.Title)
	}

	line := fmt.Sprintf("%s %s", boxStyled, textStyled)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// Messages carrying remote operation results. Each is reconciled into the
// cache inside update, before the next render.
type todosLoadedMsg struct {
	todos []model.Todo
	err   error
}

type createDoneMsg struct {
	todo model.Todo
	err  error
}

type updateDoneMsg struct {
	todo model.Todo
	err  error
}

type deleteDoneMsg struct {
	id  int
	err error
}

type todosModel struct {
	list    list.Model
	loading bool
	spin    spinner.Model
	loadErr string
	opErr   string

	// inline add
	adding bool
	ti     textinput.Model
	addErr string
}

func newTodosModel() todosModel {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	refreshBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	logoutBind := key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout"))
	extra := func() []key.Binding {
		return []key.Binding{addBind, toggleBind, delBind, refreshBind, logoutBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200

	return todosModel{
		list:    l,
		loading: true,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		ti:      ti,
	}
}

func (m todosModel) enter(client *api.Client) tea.Cmd {
	return tea.Batch(m.spin.Tick, loadTodos(client))
}

func loadTodos(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		todos, err := client.Todos(context.Background())
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func createTodo(client *api.Client, title string) tea.Cmd {
	return func() tea.Msg {
		td, err := client.CreateTodo(context.Background(), title)
		return createDoneMsg{todo: td, err: err}
	}
}

func toggleTodo(client *api.Client, td model.Todo) tea.Cmd {
	return func() tea.Msg {
		out, err := client.UpdateTodo(context.Background(), td.ID, td.Title, !td.Done)
		return updateDoneMsg{todo: out, err: err}
	}
}

func deleteTodo(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		gone, err := client.DeleteTodo(context.Background(), id)
		return deleteDoneMsg{id: gone, err: err}
	}
}

func (m todosModel) update(msg tea.Msg, client *api.Client, c *cache.Cache, log *zap.Logger) (todosModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 4
		if m.adding {
			h = msg.Height - 6
		}
		m.list.SetSize(msg.Width-2, h)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case todosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		c.Prime(msg.todos)
		m.syncList(c)
		return m, nil

	case createDoneMsg:
		if msg.err != nil {
			m.opErr = msg.err.Error()
			return m, nil
		}
		m.opErr = ""
		if err := c.ApplyCreate(msg.todo); err != nil {
			log.Error("reconcile create", zap.Int("id", msg.todo.ID), zap.Error(err))
			m.opErr = err.Error()
			return m, nil
		}
		m.syncList(c)
		return m, nil

	case updateDoneMsg:
		if msg.err != nil {
			m.opErr = msg.err.Error()
			return m, nil
		}
		m.opErr = ""
		c.ApplyUpdate(msg.todo)
		m.syncList(c)
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.opErr = msg.err.Error()
			return m, nil
		}
		m.opErr = ""
		if err := c.ApplyDelete(msg.id); err != nil {
			log.Error("reconcile delete", zap.Int("id", msg.id), zap.Error(err))
			m.opErr = err.Error()
			return m, nil
		}
		m.syncList(c)
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg, client)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "a":
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.ti.Focus()
			return m, textinput.Blink
		case " ":
			if td, ok := m.selected(); ok {
				return m, toggleTodo(client, td)
			}
			return m, nil
		case "d":
			if td, ok := m.selected(); ok {
				return m, deleteTodo(client, td.ID)
			}
			return m, nil
		case "r":
			m.loading = true
			return m, tea.Batch(m.spin.Tick, loadTodos(client))
		case "L":
			return m, func() tea.Msg { return logoutMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m todosModel) updateAdding(msg tea.Msg, client *api.Client) (todosModel, tea.Cmd) {
	switch x := msg.(type) {
	case tea.KeyMsg:
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			// no id is assumed until the server responds; the entry
			// appears once createDoneMsg is reconciled
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, createTodo(client, title)
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m todosModel) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

// syncList rebuilds the rendered list from the cache, so every render after
// a reconciliation shows the reconciled collection.
func (m *todosModel) syncList(c *cache.Cache) {
	todos := c.Todos()
	items := make([]list.Item, 0, len(todos))
	done := 0
	for _, td := range todos {
		if td.Done {
			done++
		}
		items = append(items, listItem{todo: td})
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
		accentStyle.Render("Total"), len(todos),
	)
}

func (m todosModel) view(width, height int) string {
	if m.loading {
		return panelString(m.spin.View() + mutedStyle.Render("Loading..."))
	}
	if m.loadErr != "" {
		// the initial query failed: the error replaces the whole view
		return panelString(errorStyle.Render(m.loadErr) + "\n\n" +
			helpStyle.Render("r retry • L logout • q quit"))
	}

	content := m.list.View()
	if m.opErr != "" {
		content += "\n" + errorStyle.Render(m.opErr)
	}
	if m.adding {
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
		title := "Add new todo"
		if m.addErr != "" {
			title += " — " + errorStyle.Render(m.addErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return panelString(content)
}
