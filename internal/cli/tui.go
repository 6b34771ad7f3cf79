package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tubemap/pkg/vgraph"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// Track summaries
// =============================================================================

// trackSummary is one row of the track table.
type trackSummary struct {
	ID       string
	Color    string
	Visits   int
	Reversed int
	Length   int
	First    string
	Last     string
}

// summarizeTracks describes every track of in, in input order.
func summarizeTracks(in vgraph.Input) []trackSummary {
	lengths := make(map[string]int, len(in.Nodes))
	for _, n := range in.Nodes {
		lengths[n.Name] = n.SequenceLength
	}

	out := make([]trackSummary, len(in.Tracks))
	for i, t := range in.Tracks {
		s := trackSummary{ID: t.ID, Color: t.Color, Visits: len(t.Sequence)}
		if s.Color == "" {
			s.Color = t.ID
		}
		for _, v := range t.Sequence {
			if v.Reverse {
				s.Reversed++
			}
			s.Length += lengths[v.Node]
		}
		if len(t.Sequence) > 0 {
			s.First = t.Sequence[0].String()
			s.Last = t.Sequence[len(t.Sequence)-1].String()
		}
		out[i] = s
	}
	return out
}

func (s trackSummary) row() []string {
	reversed := "·"
	if s.Reversed > 0 {
		reversed = strconv.Itoa(s.Reversed)
	}
	span := "·"
	if s.Visits > 0 {
		span = s.First + " " + iconArrow + " " + s.Last
	}
	return []string{s.ID, strconv.Itoa(s.Visits), strconv.Itoa(s.Length), reversed, span}
}

var trackHeaders = []string{"Track", "Visits", "Length", "Reversed", "Span"}

// trackTable renders summaries as a bordered table. The row at cursor is
// highlighted; pass -1 for none.
func trackTable(summaries []trackSummary, offset, end, cursor int) string {
	rows := make([][]string, 0, end-offset)
	for i := offset; i < end; i++ {
		rows = append(rows, summaries[i].row())
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(trackHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := offset + row
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case idx == cursor:
				return base.Foreground(colorGreen).Bold(true)
			case col == 0:
				return base.Foreground(colorWhite)
			case col == 3 && idx < len(summaries) && summaries[idx].Reversed > 0:
				return base.Foreground(colorRed)
			}
			return base.Foreground(colorGray)
		})
	return t.Render()
}

// =============================================================================
// TrackPickerModel - Interactive pivot track selection
// =============================================================================

// TrackPickerModel is the bubbletea model for choosing the pivot track.
type TrackPickerModel struct {
	Tracks   []trackSummary
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewTrackPickerModel creates a picker over the tracks of in.
func NewTrackPickerModel(in vgraph.Input) TrackPickerModel {
	return TrackPickerModel{
		Tracks: summarizeTracks(in),
		Height: 15,
	}
}

func (m TrackPickerModel) Init() tea.Cmd {
	return nil
}

func (m TrackPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tracks)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = len(m.Tracks) - 1
			m.Offset = max(0, m.Cursor-m.Height+1)
		case "enter":
			if len(m.Tracks) > 0 {
				m.Selected = m.Tracks[m.Cursor].ID
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-8)
	}
	return m, nil
}

func (m TrackPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Pivot Track"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Tracks))
	b.WriteString(trackTable(m.Tracks, m.Offset, end, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Tracks))))

	return b.String()
}
