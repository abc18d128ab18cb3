package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/algodeck/internal/catalog"
	"github.com/gerunddev/algodeck/internal/content"
	"github.com/gerunddev/algodeck/internal/logger"
	"github.com/gerunddev/algodeck/internal/render"
	"github.com/gerunddev/algodeck/internal/state"
	"github.com/gerunddev/algodeck/internal/styles"
)

// LoadFunc loads the catalog shown by the browser
type LoadFunc func(ctx context.Context) (*catalog.Catalog, error)

// Options configures the browser
type Options struct {
	Load            LoadFunc
	Theme           styles.Theme
	DefaultLanguage string
	// Width caps the rendered text width. Zero follows the window.
	Width int
	// Session, when set, restores and records the last viewed entry
	Session *state.State
	Logger  *logger.Logger
}

// CatalogMsg is sent when the catalog has been (re)loaded
type CatalogMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// ReloadMsg asks the browser to load the catalog again
type ReloadMsg struct{}

type mode int

const (
	modeList mode = iota
	modeEntry
	modeDives
	modeDive
)

type browseModel struct {
	opts     Options
	theme    styles.Theme
	spinner  spinner.Model
	table    table.Model
	viewport viewport.Model
	diveport viewport.Model

	catalog *catalog.Catalog
	rows    []*catalog.Algorithm
	current *catalog.Algorithm
	section content.Section

	dives      []content.DeepDive
	diveCursor int
	dive       content.DeepDive

	mode    mode
	loading bool
	err     error
	width   int
	height  int
}

// InitBrowseModel creates the algorithm browser
func InitBrowseModel(opts Options) browseModel {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = opts.Theme.Fg(opts.Theme.Palette.Magenta)

	columns := []table.Column{
		{Title: "Category", Width: 18},
		{Title: "Algorithm", Width: 40},
		{Title: "ID", Width: 32},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	m := browseModel{
		opts:     opts,
		theme:    opts.Theme,
		spinner:  s,
		table:    t,
		viewport: viewport.New(100, 20),
		diveport: viewport.New(80, 16),
		section:  content.SectionProblem,
		loading:  true,
	}
	m.applyTheme()
	return m
}

// applyTheme restyles the widgets after a theme change
func (m *browseModel) applyTheme() {
	p := m.theme.Palette

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(p.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(p.Background)).
		Background(lipgloss.Color(p.Yellow)).
		Bold(false)
	m.table.SetStyles(ts)

	m.viewport.Style = m.theme.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Border)).
		Padding(0, 1)
	m.diveport.Style = m.theme.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Blue)).
		Padding(0, 1)
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m browseModel) load() tea.Cmd {
	load := m.opts.Load
	return func() tea.Msg {
		if load == nil {
			return CatalogMsg{Err: fmt.Errorf("no catalog configured")}
		}
		cat, err := load(context.Background())
		return CatalogMsg{Catalog: cat, Err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-8, 3))
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-7, 3)
		m.diveport.Width = max(msg.Width-8, 20)
		m.diveport.Height = max(msg.Height-8, 3)
		m.refresh()
		return m, nil

	case CatalogMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Catalog != nil {
			m.setCatalog(msg.Catalog)
		}
		return m, nil

	case ReloadMsg:
		return m, m.load()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch key {
	case "ctrl+c":
		return m, m.quit()
	case "t":
		m.theme = m.theme.Toggle()
		m.applyTheme()
		m.refresh()
		return m, nil
	}

	switch m.mode {
	case modeDive:
		switch key {
		case "q", "esc":
			if len(m.dives) > 1 {
				m.mode = modeDives
			} else {
				m.mode = modeEntry
			}
		case "up", "k", "down", "j", "pgup", "pgdown":
			m.diveport, cmd = m.diveport.Update(msg)
		}
		return m, cmd

	case modeDives:
		switch key {
		case "q", "esc":
			m.mode = modeEntry
		case "up", "k":
			m.diveCursor = max(m.diveCursor-1, 0)
		case "down", "j":
			m.diveCursor = min(m.diveCursor+1, len(m.dives)-1)
		case "enter":
			if m.diveCursor < len(m.dives) {
				m.openDive(m.dives[m.diveCursor])
			}
		}
		return m, nil

	case modeEntry:
		switch key {
		case "q":
			return m, m.quit()
		case "esc":
			m.mode = modeList
		case "tab":
			m.setSection(nextSection(m.section, 1))
		case "shift+tab":
			m.setSection(nextSection(m.section, -1))
		case "1", "2", "3", "4":
			m.setSection(content.Sections()[int(key[0]-'1')])
		case "d":
			switch len(m.dives) {
			case 0:
			case 1:
				m.openDive(m.dives[0])
			default:
				m.diveCursor = 0
				m.mode = modeDives
			}
		case "up", "k", "down", "j", "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd
	}

	switch key {
	case "q":
		return m, m.quit()
	case "up", "k", "down", "j":
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	case "enter":
		if i := m.table.Cursor(); i >= 0 && i < len(m.rows) {
			m.current = m.rows[i]
			m.mode = modeEntry
			m.refresh()
			m.viewport.GotoTop()
		}
	}
	return m, nil
}

// quit records the session before exiting
func (m browseModel) quit() tea.Cmd {
	if s := m.opts.Session; s != nil {
		if m.current != nil {
			s.Remember(m.current.ID, string(m.section))
		}
		s.Theme = m.theme.Name
	}
	return tea.Quit
}

func (m *browseModel) setCatalog(cat *catalog.Catalog) {
	m.catalog = cat
	m.rows = cat.All()

	rows := make([]table.Row, 0, len(m.rows))
	for _, a := range m.rows {
		rows = append(rows, table.Row{categoryName(cat, a.Category), a.Title, a.ID})
	}
	m.table.SetRows(rows)

	// Keep the open entry across reloads, else restore the saved session
	wanted := ""
	if m.current != nil {
		wanted = m.current.ID
	} else if s := m.opts.Session; s != nil {
		wanted = s.LastAlgorithm
		if sec, ok := content.ParseSection(s.LastSection); ok {
			m.section = sec
		}
	}

	m.current = nil
	for i, a := range m.rows {
		if a.ID == wanted {
			m.table.SetCursor(i)
			if m.mode != modeList {
				m.current = a
			}
		}
	}
	if m.current == nil {
		m.mode = modeList
	}
	m.refresh()
}

func (m *browseModel) setSection(s content.Section) {
	m.section = s
	m.refresh()
	m.viewport.GotoTop()
}

func (m *browseModel) openDive(d content.DeepDive) {
	m.dive = d
	m.mode = modeDive
	m.diveport.SetContent(m.renderer(m.diveport.Width - 4).DeepDiveBody(d))
	m.diveport.GotoTop()
}

// refresh re-renders the current section into the viewport. After a reload
// the open deep dive is looked up again by its explanation and closed when
// the entry no longer has it.
func (m *browseModel) refresh() {
	if m.current == nil {
		return
	}
	width := m.viewport.Width - 4
	nodes := render.SectionNodes(m.current, m.section, m.opts.DefaultLanguage)
	m.dives = render.DeepDives(nodes)
	m.viewport.SetContent(m.renderer(width).Render(nodes))
	m.opts.Logger.SectionRendered(m.current.ID, string(m.section), width)

	m.diveCursor = max(min(m.diveCursor, len(m.dives)-1), 0)

	switch m.mode {
	case modeDives:
		if len(m.dives) == 0 {
			m.mode = modeEntry
		}
	case modeDive:
		i := slices.IndexFunc(m.dives, func(d content.DeepDive) bool {
			return d.Key() == m.dive.Key()
		})
		if i < 0 {
			m.mode = modeEntry
			return
		}
		m.dive = m.dives[i]
		m.diveCursor = i
		m.diveport.SetContent(m.renderer(m.diveport.Width - 4).DeepDiveBody(m.dive))
	}
}

func (m browseModel) renderer(width int) *render.Renderer {
	if m.opts.Width > 0 && (width <= 0 || m.opts.Width < width) {
		width = m.opts.Width
	}
	return render.New(m.theme, render.WithWidth(max(width, 0)))
}

func (m browseModel) View() string {
	var b strings.Builder
	title := m.theme.Title()
	dim := m.theme.Dim()

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if m.loading {
		b.WriteString(fmt.Sprintf("%s Loading catalog...\n", m.spinner.View()))
		return b.String()
	}

	switch m.mode {
	case modeList:
		b.WriteString(title.Render("algodeck"))
		b.WriteString("\n\n")
		b.WriteString(dim.Render(fmt.Sprintf("Algorithms: %d", len(m.rows))))
		b.WriteString("\n\n")
		b.WriteString(m.theme.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(m.theme.Palette.Border)).
			Render(m.table.View()))
		b.WriteString("\n\n")
		b.WriteString(dim.Render("↑/k up • ↓/j down • enter open • t theme • q quit"))

	case modeEntry:
		b.WriteString(m.header())
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		help := "tab/1-4 section • ↑/k ↓/j scroll • t theme • esc back • q quit"
		if len(m.dives) > 0 {
			help = "d deep dives • " + help
		}
		b.WriteString(dim.Render(help))

	case modeDives:
		b.WriteString(m.header())
		b.WriteString(title.Render("Deep dives"))
		b.WriteString("\n\n")
		for i, d := range m.dives {
			cursor := "  "
			style := m.theme.Text()
			if i == m.diveCursor {
				cursor = "> "
				style = m.theme.Fg(m.theme.Palette.Yellow).Bold(true)
			}
			b.WriteString(cursor + style.Render("ⓘ "+d.Title) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(dim.Render("↑/k ↓/j move • enter open • esc back"))

	case modeDive:
		b.WriteString(m.header())
		b.WriteString(m.theme.Fg(m.theme.Palette.Blue).Bold(true).Render("ⓘ " + m.dive.Title))
		b.WriteString("\n")
		b.WriteString(m.diveport.View())
		b.WriteString("\n")
		b.WriteString(dim.Render("↑/k ↓/j scroll • esc close"))
	}

	b.WriteString("\n")
	return b.String()
}

// header shows the entry title and the section tabs
func (m browseModel) header() string {
	var b strings.Builder
	b.WriteString(m.theme.Title().Render(m.current.Title))
	b.WriteString("  ")
	b.WriteString(m.theme.Dim().Render(categoryName(m.catalog, m.current.Category)))
	b.WriteString("\n\n")

	tabs := make([]string, 0, 4)
	for i, s := range content.Sections() {
		label := fmt.Sprintf(" %d %s ", i+1, s.Title())
		if s == m.section {
			tabs = append(tabs, m.theme.NewStyle().
				Foreground(lipgloss.Color(m.theme.Palette.Background)).
				Background(lipgloss.Color(m.theme.Palette.Yellow)).
				Render(label))
			continue
		}
		tabs = append(tabs, m.theme.Dim().Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	return b.String()
}

func nextSection(current content.Section, step int) content.Section {
	all := content.Sections()
	for i, s := range all {
		if s == current {
			return all[(i+step+len(all))%len(all)]
		}
	}
	return all[0]
}

func categoryName(cat *catalog.Catalog, id string) string {
	if cat != nil {
		for _, c := range cat.Categories {
			if c.ID == id {
				return c.Name
			}
		}
	}
	return id
}
