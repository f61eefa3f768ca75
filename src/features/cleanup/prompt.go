package cleanup

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// Choice is one selectable answer of a multiple-choice prompt, picked by
// its single-letter key.
type Choice struct {
	Key   rune
	Label string
}

// Prompter asks the operator questions and shows them context. The advisor
// only ever sees decision outcomes; rendering belongs to the implementation.
type Prompter interface {
	// YesNo asks until the operator answers y or n.
	YesNo(question string) (bool, error)
	// Choose asks to pick one choice by key. A zero def requires an answer;
	// otherwise an empty reply picks def.
	Choose(question string, choices []Choice, def rune) (rune, error)
	// Show prints informational text between prompts.
	Show(text string)
}

var pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

// Warn colorizes a filesystem path for prompt text.
func Warn(path string) string {
	return pathStyle.Render(path)
}

// TerminalPrompter reads answers line by line from an attended terminal.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter over the given streams.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *TerminalPrompter) YesNo(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s [y/n] ", question)
		answer, err := p.readRune()
		if err != nil {
			return false, err
		}
		switch answer {
		case 'y':
			return true, nil
		case 'n':
			return false, nil
		}
	}
}

func (p *TerminalPrompter) Choose(question string, choices []Choice, def rune) (rune, error) {
	keys := make([]string, len(choices))
	valid := make(map[rune]bool, len(choices))
	for i, c := range choices {
		key := string(c.Key)
		if c.Key == def {
			key = strings.ToUpper(key)
		}
		keys[i] = fmt.Sprintf("%s(%s)", key, c.Label)
		valid[c.Key] = true
	}
	for {
		fmt.Fprintf(p.out, "%s\n%s: ", question, strings.Join(keys, ", "))
		answer, err := p.readRune()
		if err != nil {
			return 0, err
		}
		if answer == 0 && def != 0 {
			return def, nil
		}
		if valid[answer] {
			return answer, nil
		}
	}
}

func (p *TerminalPrompter) Show(text string) {
	fmt.Fprintln(p.out, text)
}

// readRune returns the first rune of the next input line, lowercased, or 0
// for an empty line.
func (p *TerminalPrompter) readRune() (rune, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}
	return unicode.ToLower([]rune(line)[0]), nil
}
