package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/gameres/codec"
	"github.com/wippyai/gameres/resource"
)

const bytesPerRow = 16

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	refStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateBrowse browserState = iota
	stateGoto
)

type interactiveModel struct {
	err      error
	reader   *codec.Reader
	filename string
	data     []byte
	entries  []resource.Entry
	sites    map[int64]int // absolute slot byte -> entry index
	view     viewport.Model
	input    textinput.Model
	key      resource.Key
	selected int
	width    resource.Width
	state    browserState
	ready    bool
}

type loadedMsg struct {
	err    error
	reader *codec.Reader
}

func newInteractiveModel(filename string, data []byte, key resource.Key, width resource.Width) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "offset: "
	ti.Placeholder = "0x40"
	ti.Width = 20

	return &interactiveModel{
		filename: filename,
		data:     data,
		key:      key,
		width:    width,
		input:    ti,
		state:    stateBrowse,
	}
}

func runInteractive(filename string, data []byte, key resource.Key, width resource.Width) error {
	p := tea.NewProgram(newInteractiveModel(filename, data, key, width), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	r, err := codec.NewReader(m.data, m.key, m.width)
	return loadedMsg{reader: r, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 8
		if height < 4 {
			height = 4
		}
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}
		m.render()

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.reader = msg.reader
		m.entries = msg.reader.References().Entries()
		m.sites = make(map[int64]int)
		for i, e := range m.entries {
			for b := int64(0); b < int64(m.width.Bytes()); b++ {
				m.sites[e.Site+b] = i
			}
		}
		m.render()

	case tea.KeyMsg:
		if m.state == stateGoto {
			return m.updateGoto(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.scrollToSelected()
			}

		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
				m.scrollToSelected()
			}

		case "g":
			m.state = stateGoto
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink

		default:
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *interactiveModel) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.state = stateBrowse
		m.input.Blur()
		m.err = nil
		return m, nil

	case "enter":
		off, err := strconv.ParseInt(strings.TrimSpace(m.input.Value()), 0, 64)
		if err != nil || off < 0 || m.reader == nil || off >= m.reader.Len()-m.reader.BodyStart() {
			m.err = fmt.Errorf("bad offset %q", m.input.Value())
			return m, nil
		}
		m.err = nil
		m.state = stateBrowse
		m.input.Blur()
		m.view.SetYOffset(int(off / bytesPerRow))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) scrollToSelected() {
	if m.reader == nil || len(m.entries) == 0 {
		return
	}
	m.render()
	row := int((m.entries[m.selected].Site - m.reader.BodyStart()) / bytesPerRow)
	m.view.SetYOffset(max(row-2, 0))
}

func (m *interactiveModel) render() {
	if !m.ready || m.reader == nil {
		return
	}
	m.view.SetContent(m.hexDump())
}

// hexDump renders the body with body-relative offsets. Bytes belonging to
// pointer slots are highlighted; the selected slot stands out.
func (m *interactiveModel) hexDump() string {
	var b strings.Builder
	start := m.reader.BodyStart()
	body := m.data[start:]

	for row := 0; row < len(body); row += bytesPerRow {
		b.WriteString(offsetStyle.Render(fmt.Sprintf("%08x", row)))
		b.WriteString("  ")
		for i := row; i < row+bytesPerRow; i++ {
			if i >= len(body) {
				b.WriteString("   ")
				continue
			}
			cell := fmt.Sprintf("%02x", body[i])
			if idx, ok := m.sites[start+int64(i)]; ok {
				if idx == m.selected {
					cell = selectedStyle.Render(cell)
				} else {
					cell = refStyle.Render(cell)
				}
			}
			b.WriteString(cell)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateGoto {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.reader == nil || !m.ready {
		return "Loading resource..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Resource Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf(" %s %s, body %d bytes\n\n", keyStyle.Render(m.key.String()), m.width, m.reader.Len()-m.reader.BodyStart()))

	if len(m.entries) == 0 {
		b.WriteString("No references.\n")
	} else {
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Reference %d/%d at %s -> %s\n",
			m.selected+1, len(m.entries),
			refStyle.Render(fmt.Sprintf("%#x", e.Site-m.reader.BodyStart())),
			keyStyle.Render(e.Key.String())))
	}
	b.WriteString("\n")
	b.WriteString(m.view.View())
	b.WriteString("\n\n")

	if m.state == stateGoto {
		b.WriteString(m.input.View())
		if m.err != nil {
			b.WriteString("  ")
			b.WriteString(errorStyle.Render(m.err.Error()))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter jump • esc back"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select reference • pgup/pgdn scroll • g go to offset • q quit"))
	}
	return b.String()
}
