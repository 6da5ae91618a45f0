package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recall/internal/domain"
)

// CorePort is the TUI-facing subset of the retrieval service.
type CorePort interface {
	Add(content string, metadata map[string]any) (int, error)
	Search(query string, topK int) []domain.SearchResult
	Stats() domain.Stats
}

// Model is the Bubble Tea model for the interactive loop. Line commands
// map 1:1 onto the core: "search <query>", "add <content>", "stats",
// "quit". Bare text defaults to search.
type Model struct {
	service   CorePort
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.SearchResult
	status    string
	cursor    int
	ready     bool
	topK      int
	lastQuery string
}

// New creates a new interactive loop model.
func New(service CorePort, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "search <query> | add <content> | stats | quit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	if topK <= 0 {
		topK = 5
	}
	return Model{service: service, input: ti, viewport: vp, topK: topK, status: "Corpus loaded. Type a command."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and command boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := commandBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header, status, command frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line != "" {
				m.input.SetValue("")
				return m.runCommand(line)
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	verb, rest := splitCommand(line)
	switch verb {
	case "quit", "exit":
		return m, tea.Quit
	case "stats":
		m.results = nil
		m.status = "Corpus statistics"
		m.viewport.SetContent(renderStats(m.service.Stats()))
		return m, nil
	case "add":
		if rest == "" {
			m.status = "Usage: add <content>"
			return m, nil
		}
		id, err := m.service.Add(rest, nil)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Stored record %d", id)
		return m, nil
	case "search":
		if rest == "" {
			m.status = "Usage: search <query>"
			return m, nil
		}
		return m.runSearch(rest)
	default:
		// bare text defaults to search
		return m.runSearch(line)
	}
}

func (m Model) runSearch(query string) (tea.Model, tea.Cmd) {
	res := m.service.Search(query, m.topK)
	m.results = res
	m.cursor = 0
	m.lastQuery = query
	if len(res) == 0 {
		m.status = fmt.Sprintf("No matches for %q", query)
	} else {
		m.status = fmt.Sprintf("%d result(s) for %q", len(res), query)
	}
	m.viewport.SetContent(m.renderCurrentResult())
	return m, nil
}

// View renders the interactive loop layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Recall")
	input := commandBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  record=%d  score=%.3f", m.cursor+1, len(m.results), r.Record.ID, r.Score)
	body := highlightBestSentence(r.Record.Content, m.lastQuery)
	return title + "\n\n" + body
}

func renderStats(st domain.Stats) string {
	lines := []string{
		fmt.Sprintf("Records: %d", st.TotalRecords),
		fmt.Sprintf("Words:   %d", st.TotalWords),
		fmt.Sprintf("Average: %d words/record", st.AverageWords),
	}
	if st.LastAdded != nil {
		lines = append(lines, "Last:    "+st.LastAdded.Format("2006-01-02 15:04:05"))
	}
	return strings.Join(lines, "\n")
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	verb := strings.ToLower(parts[0])
	rest := ""
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return verb, rest
}

var (
	resultBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	commandBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	wordRe          = regexp.MustCompile(`[\p{L}\p{N}]+`)
	sentenceRe      = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := wordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
