package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mikecinchan/tcg-deck-editor/pkg/catalog"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// BrowserModel - Interactive catalog browser
// =============================================================================

// BrowserModel is the bubbletea model for browsing catalog items. Typing
// after "/" filters by id, name or type; enter toggles the detail pane.
type BrowserModel struct {
	Items     []catalog.Item
	Visible   []int // Indices into Items matching Filter
	Cursor    int   // Position in Visible
	Offset    int
	Height    int
	Filter    string
	Filtering bool
	Detail    bool
}

// NewBrowserModel creates a browser over items.
func NewBrowserModel(items []catalog.Item) BrowserModel {
	m := BrowserModel{Items: items, Height: 15}
	m.applyFilter()
	return m
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering && msg.Type != tea.KeyCtrlC {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "/":
			m.Filtering = true
			m.Detail = false
		case "enter":
			m.Detail = !m.Detail && len(m.Visible) > 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.clampOffset()
	}
	return m, nil
}

func (m BrowserModel) updateFilter(msg tea.KeyMsg) BrowserModel {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.Filtering = false
	case tea.KeyBackspace:
		if r := []rune(m.Filter); len(r) > 0 {
			m.Filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.Filter += string(msg.Runes)
	}
	m.applyFilter()
	return m
}

// Selected returns the item under the cursor, or nil.
func (m BrowserModel) Selected() *catalog.Item {
	if len(m.Visible) == 0 {
		return nil
	}
	return &m.Items[m.Visible[m.Cursor]]
}

func (m *BrowserModel) move(delta int) {
	if len(m.Visible) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Visible)-1)
	m.clampOffset()
}

func (m *BrowserModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *BrowserModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.Filter))
	m.Visible = make([]int, 0, len(m.Items))
	for i, it := range m.Items {
		if q == "" || matches(it, q) {
			m.Visible = append(m.Visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func matches(it catalog.Item, q string) bool {
	if strings.Contains(strings.ToLower(it.ID), q) || strings.Contains(strings.ToLower(it.Name), q) {
		return true
	}
	for _, t := range it.Attributes.Types {
		if strings.ToLower(t) == q {
			return true
		}
	}
	return false
}

func (m BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Card Catalog"))
	b.WriteString("\n")
	switch {
	case m.Filtering:
		b.WriteString(listSelectedStyle.Render("/" + m.Filter + "▏"))
	case m.Filter != "":
		b.WriteString(listDimStyle.Render("filter: " + m.Filter + "  ↑/↓ navigate  ⏎ details  / filter  q quit"))
	default:
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  / filter  q quit"))
	}
	b.WriteString("\n\n")

	if m.Detail {
		if it := m.Selected(); it != nil {
			b.WriteString(detailBoxStyle.Render(cardDetail(it)))
			return b.String()
		}
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	rows := [][]string{}
	for pos := m.Offset; pos < end; pos++ {
		it := m.Items[m.Visible[pos]]
		cursor := "  "
		if pos == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, it.ID, it.Name, strings.Join(it.Attributes.Types, "/"), intOrDash(it.Attributes.HP)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Type", "HP").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matching cards"))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	}
	return b.String()
}

// cardDetail renders one item for the detail pane.
func cardDetail(it *catalog.Item) string {
	a := it.Attributes
	lines := []string{
		StyleTitle.Render(it.Name) + " " + StyleDim.Render(it.ID),
		fmt.Sprintf("Set       %s (%s)", it.Group.Name, it.Group.ID),
		fmt.Sprintf("Category  %s", dashIfEmpty(a.Category)),
	}
	if len(a.Types) > 0 {
		lines = append(lines, "Types     "+strings.Join(a.Types, ", "))
	}
	if a.HP != nil {
		lines = append(lines, "HP        "+intOrDash(a.HP))
	}
	if a.Stage != "" {
		lines = append(lines, "Stage     "+a.Stage)
	}
	if a.Rarity != "" {
		lines = append(lines, "Rarity    "+a.Rarity)
	}
	if a.Effect != "" {
		lines = append(lines, "", a.Effect)
	}
	if it.ImageURL != "" {
		lines = append(lines, "", StyleLink.Render(it.ImageURL))
	}
	return strings.Join(lines, "\n")
}
