package preview

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

type Class int

const (
	Text Class = iota
	Heading
	ListItem
	Task
	Quote
	Fence
	Code
	Rule
	Blank
)

func (c Class) String() string {
	switch c {
	case Heading:
		return "heading"
	case ListItem:
		return "list"
	case Task:
		return "task"
	case Quote:
		return "quote"
	case Fence:
		return "fence"
	case Code:
		return "code"
	case Rule:
		return "rule"
	case Blank:
		return "blank"
	default:
		return "text"
	}
}

type Line struct {
	Class Class
	Text  string
	// Level is the heading depth, or 1 for a checked task.
	Level int
}

// Load reads at most limit bytes of the file at path. The second return value
// reports whether the file was cut short.
func Load(path string, limit int64) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}

	truncated := int64(len(buf)) > limit
	if truncated {
		buf = buf[:limit]
		for i := 0; i < utf8.UTFMax && len(buf) > 0; i++ {
			r, size := utf8.DecodeLastRune(buf)
			if r != utf8.RuneError || size != 1 {
				break
			}
			buf = buf[:len(buf)-1]
		}
	}

	return string(buf), truncated, nil
}

// Classify splits content into lines and tags each one.
func Classify(content string) []Line {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	raw := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	lines := make([]Line, 0, len(raw))
	inFence := false
	for _, text := range raw {
		trimmed := strings.TrimSpace(text)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			lines = append(lines, Line{Class: Fence, Text: text})
			continue
		}
		if inFence {
			lines = append(lines, Line{Class: Code, Text: text})
			continue
		}

		lines = append(lines, classifyLine(text, trimmed))
	}

	return lines
}

func classifyLine(text, trimmed string) Line {
	switch {
	case trimmed == "":
		return Line{Class: Blank}
	case isHeading(trimmed):
		level := strings.IndexFunc(trimmed, func(r rune) bool { return r != '#' })
		return Line{Class: Heading, Text: strings.TrimSpace(trimmed[level:]), Level: level}
	case isRule(trimmed):
		return Line{Class: Rule, Text: trimmed}
	case strings.HasPrefix(trimmed, ">"):
		return Line{Class: Quote, Text: strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))}
	}

	if body, ok := listBody(trimmed); ok {
		if len(body) >= 3 && body[0] == '[' && body[2] == ']' {
			switch body[1] {
			case ' ':
				return Line{Class: Task, Text: strings.TrimSpace(body[3:])}
			case 'x', 'X':
				return Line{Class: Task, Text: strings.TrimSpace(body[3:]), Level: 1}
			}
		}
		indent := len(text) - len(strings.TrimLeft(text, " \t"))
		return Line{Class: ListItem, Text: body, Level: indent / 2}
	}

	return Line{Class: Text, Text: text}
}

func isHeading(s string) bool {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	return n >= 1 && n <= 6 && (n == len(s) || s[n] == ' ')
}

func isRule(s string) bool {
	if len(s) < 3 {
		return false
	}
	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	count := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case c:
			count++
		case ' ':
		default:
			return false
		}
	}
	return count >= 3
}

func listBody(s string) (string, bool) {
	if len(s) >= 2 && strings.ContainsRune("-*+", rune(s[0])) && s[1] == ' ' {
		return strings.TrimSpace(s[2:]), true
	}

	digits := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if digits > 0 && digits+1 < len(s) && (s[digits] == '.' || s[digits] == ')') && s[digits+1] == ' ' {
		return strings.TrimSpace(s[digits+2:]), true
	}

	return "", false
}

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true)

	subheadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD7FF")).
			Bold(true)

	listStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC"))

	taskOpenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF"))

	taskDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")).
			Strikethrough(true)

	quoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6ADC8")).
			Italic(true)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))

	fenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#334455"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#334455"))

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC"))
)

// Plain returns the display text of l without styling.
func Plain(l Line, width int) string {
	switch l.Class {
	case Heading:
		return strings.Repeat("#", l.Level) + " " + l.Text
	case ListItem:
		return strings.Repeat("  ", l.Level) + "• " + l.Text
	case Task:
		if l.Level == 1 {
			return "☑ " + l.Text
		}
		return "☐ " + l.Text
	case Quote:
		return "│ " + l.Text
	case Rule:
		if width <= 0 {
			width = 3
		}
		return strings.Repeat("─", width)
	case Blank:
		return ""
	default:
		return l.Text
	}
}

func styleFor(l Line) lipgloss.Style {
	switch l.Class {
	case Heading:
		if l.Level == 1 {
			return headingStyle
		}
		return subheadingStyle
	case ListItem:
		return listStyle
	case Task:
		if l.Level == 1 {
			return taskDoneStyle
		}
		return taskOpenStyle
	case Quote:
		return quoteStyle
	case Code:
		return codeStyle
	case Fence:
		return fenceStyle
	case Rule:
		return ruleStyle
	default:
		return textStyle
	}
}

// Render styles the first height lines, each cut to width cells. A height of
// zero or less renders every line.
func Render(lines []Line, width, height int) string {
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		text := strings.ReplaceAll(Plain(l, width), "\t", "    ")
		style := styleFor(l)
		if width > 0 {
			style = style.Copy().MaxWidth(width)
		}
		out = append(out, style.Render(text))
	}

	return strings.Join(out, "\n")
}
