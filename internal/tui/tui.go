package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/search"
	"github.com/Zuo-Peng/chatstat/internal/stats"
)

const debounceDelay = 200 * time.Millisecond

// message types

type dashboardMsg struct {
	user string
	dash *stats.Dashboard
	err  error
}

type searchResultMsg struct {
	query   string
	user    string
	results []search.Result
	err     error
}

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	table *stats.Table
	db    *index.DB // nil disables the search tab
	opts  stats.Options

	users      []string
	userCursor int
	userOffset int
	pending    string // user whose dashboard is being computed
	dash       *stats.Dashboard
	err        error

	tab  tab
	pane viewport.Model

	input        textinput.Model
	query        string
	results      []search.Result
	resultCursor int
	resultOffset int
	previewIdx   int // idx shown in the pane on the search tab, -1 if none

	status   string
	width    int
	height   int
	ready    bool
	quitting bool
}

func initialModel(t *stats.Table, db *index.DB, opts stats.Options, user string) model {
	ti := textinput.New()
	ti.Placeholder = "Search messages..."
	ti.Prompt = "/ "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	users := t.UserOptions()
	cursor := 0
	for i, u := range users {
		if u == user {
			cursor = i
		}
	}

	return model{
		table:      t,
		db:         db,
		opts:       opts,
		users:      users,
		userCursor: cursor,
		pending:    users[cursor],
		input:      ti,
		pane:       viewport.New(0, 0),
		previewIdx: -1,
	}
}

// Run starts the dashboard TUI for user and blocks until it exits.
func Run(t *stats.Table, db *index.DB, opts stats.Options, user string) error {
	m := initialModel(t, db, opts, user)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Init starts computing the dashboard for the initial user.
func (m model) Init() tea.Cmd {
	return computeCmd(m.table, m.pending, m.opts)
}

func computeCmd(t *stats.Table, user string, opts stats.Options) tea.Cmd {
	return func() tea.Msg {
		d, err := stats.Compute(context.Background(), t, user, opts)
		return dashboardMsg{user: user, dash: d, err: err}
	}
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.pane = newViewport(m.paneWidth(), m.panelHeight())
		m.previewIdx = -1
		m.refreshPane()
		if m.tab == tabSearch {
			cmds = append(cmds, m.loadCurrentPreview())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.NextTab):
			return m.switchTab((m.tab + 1) % tabCount)

		case key.Matches(msg, keys.PrevTab):
			return m.switchTab((m.tab + tabCount - 1) % tabCount)

		case key.Matches(msg, keys.Up):
			if m.tab == tabSearch {
				if m.resultCursor > 0 {
					m.resultCursor--
					m.adjustResultScroll(m.panelHeight())
					cmds = append(cmds, m.loadCurrentPreview())
				}
			} else if m.userCursor > 0 {
				m.userCursor--
				m.adjustUserScroll(m.panelHeight())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.tab == tabSearch {
				if m.resultCursor < len(m.results)-1 {
					m.resultCursor++
					m.adjustResultScroll(m.panelHeight())
					cmds = append(cmds, m.loadCurrentPreview())
				}
			} else if m.userCursor < len(m.users)-1 {
				m.userCursor++
				m.adjustUserScroll(m.panelHeight())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Enter):
			if m.tab == tabSearch {
				m.copySelectedMessage()
				return m, nil
			}
			user := m.users[m.userCursor]
			if m.dash != nil && m.dash.User == user {
				return m, nil
			}
			m.pending = user
			m.status = "Analyzing " + user + "..."
			return m, computeCmd(m.table, user, m.opts)

		case key.Matches(msg, keys.PreviewUp):
			m.pane.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.pane.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.pane.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.pane.LineDown(m.panelHeight())
			return m, nil
		}

		if m.tab != tabSearch {
			switch {
			case key.Matches(msg, keys.Search):
				return m.switchTab(tabSearch)
			case key.Matches(msg, keys.Copy):
				if err := clipboard.WriteAll(summary(m.dash)); err != nil {
					m.status = "Copy failed: " + err.Error()
				} else {
					m.status = "Copied summary to clipboard"
				}
			}
			return m, nil
		}

		// Remaining keys go to the search input
		var tiCmd tea.Cmd
		m.input, tiCmd = m.input.Update(msg)
		cmds = append(cmds, tiCmd)

		if q := m.input.Value(); q != m.query {
			m.query = q
			cmds = append(cmds, scheduleDebouncedSearch(q))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var vpCmd tea.Cmd
			m.pane, vpCmd = m.pane.Update(msg)
			return m, vpCmd
		}
		return m, nil

	case dashboardMsg:
		if msg.user != m.pending {
			return m, nil // superseded
		}
		m.err = msg.err
		if msg.err == nil {
			m.dash = msg.dash
			m.status = ""
		} else {
			m.status = "Error: " + msg.err.Error()
		}
		m.refreshPane()
		if m.query != "" {
			// the search scope follows the analyzed user
			cmds = append(cmds, m.doSearch(m.query))
		}
		return m, tea.Batch(cmds...)

	case debounceTickMsg:
		if msg.query == m.query {
			cmds = append(cmds, m.doSearch(msg.query))
		}
		return m, tea.Batch(cmds...)

	case searchResultMsg:
		if msg.query != m.query || msg.user != m.searchUser() {
			return m, nil
		}
		m.resultCursor = 0
		m.resultOffset = 0
		m.previewIdx = -1
		if msg.err != nil {
			m.results = nil
			m.status = "Search error: " + msg.err.Error()
			m.refreshPane()
			return m, nil
		}
		m.results = msg.results
		m.refreshPane()
		return m, m.loadCurrentPreview()

	case previewRenderedMsg:
		if m.tab != tabSearch || msg.idx == m.previewIdx {
			return m, nil
		}
		if len(m.results) == 0 || m.results[m.resultCursor].Idx != msg.idx {
			return m, nil // stale preview
		}
		if msg.err != nil {
			m.pane.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.pane.SetContent(msg.content)
			if msg.hitLine > 0 {
				m.pane.SetYOffset(msg.hitLine)
			} else {
				m.pane.GotoTop()
			}
		}
		m.previewIdx = msg.idx
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

func (m model) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.previewIdx = -1
	if t == tabSearch {
		m.input.Focus()
		m.refreshPane()
		return m, tea.Batch(textinput.Blink, m.loadCurrentPreview())
	}
	m.input.Blur()
	m.refreshPane()
	return m, nil
}

// refreshPane resets the right pane to the current tab's chart.
func (m *model) refreshPane() {
	switch {
	case m.tab == tabSearch && m.db == nil:
		m.pane.SetContent(styleWarn.Render("Search index unavailable."))
	case m.tab == tabSearch:
		if len(m.results) == 0 {
			m.pane.SetContent("")
		}
		return
	case m.err != nil && m.dash == nil:
		m.pane.SetContent(styleWarn.Render(m.err.Error()))
	default:
		m.pane.SetContent(renderContent(m.tab, m.dash, m.paneWidth()))
	}
	m.pane.GotoTop()
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	paneW := m.paneWidth()
	panelH := m.panelHeight()

	var header string
	if m.tab == tabSearch {
		header = m.input.View()
	} else {
		user := m.pending
		if m.dash != nil {
			user = m.dash.User
		}
		header = styleTitle.Render("Showing analysis for ") + styleUser.Render(user)
	}

	var left string
	if m.tab == tabSearch {
		left = m.renderResults(listW, panelH)
	} else {
		left = m.renderUsers(listW, panelH)
	}
	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(left)

	m.pane.Width = paneW
	m.pane.Height = panelH
	panePanel := styleActiveBorder.
		Width(paneW).
		Height(panelH).
		Render(m.pane.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, panePanel)
	return lipgloss.JoinVertical(lipgloss.Left, renderTabBar(m.tab), header, panels, m.statusBar())
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 24
	}
	pct := 25
	if m.tab == tabSearch {
		pct = 40
	}
	w := m.width*pct/100 - 2
	if w < 16 {
		w = 16
	}
	return w
}

func (m model) paneWidth() int {
	if m.width <= 0 {
		return 60
	}
	// remaining width minus both panels' borders
	w := m.width - m.listWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract tab bar (1) + header (1) + status bar (1) + borders (2)
	h := m.height - 5
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.tab == tabSearch {
		parts = append(parts, fmt.Sprintf("%d results", len(m.results)))
		parts = append(parts, "up/dn navigate", "Enter copy message")
	} else {
		parts = append(parts, fmt.Sprintf("%d records", m.table.Len()))
		parts = append(parts, "up/dn select user", "Enter analyze", "y copy", "/ search")
	}
	parts = append(parts, "Tab chart", "C-u/C-d scroll", "Esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// searchUser is the user the search tab is scoped to.
func (m model) searchUser() string {
	if m.dash != nil {
		return m.dash.User
	}
	return m.pending
}

func (m model) doSearch(query string) tea.Cmd {
	db := m.db
	user := m.searchUser()
	return func() tea.Msg {
		if db == nil || strings.TrimSpace(query) == "" {
			return searchResultMsg{query: query, user: user}
		}
		results, err := search.Search(db, search.Options{Query: query, User: user})
		return searchResultMsg{query: query, user: user, results: results, err: err}
	}
}

func scheduleDebouncedSearch(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if m.db == nil || len(m.results) == 0 || m.resultCursor >= len(m.results) {
		return nil
	}
	r := m.results[m.resultCursor]
	if r.Idx == m.previewIdx {
		return nil
	}
	return loadPreviewCmd(m.db, r.Idx, m.query, m.paneWidth())
}

// copySelectedMessage copies the body of the selected search result.
func (m *model) copySelectedMessage() {
	if m.db == nil || len(m.results) == 0 {
		return
	}
	row, err := m.db.GetMessage(m.results[m.resultCursor].Idx)
	if err != nil || row == nil {
		m.status = "Message not found"
		return
	}
	if err := clipboard.WriteAll(row.Body); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Copied message #%d", row.Idx)
}
