package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/lbliii/patitas"
)

var previewRuleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("8"))

// RenderCmd renders a single Markdown file to HTML on stdout.
type RenderCmd struct {
	File    string `arg:"" help:"Markdown file to render" type:"existingfile"`
	Preview bool   `help:"Print a styled summary after the HTML, when stdout is a terminal"`
}

func (c *RenderCmd) Run() error {
	content, err := readFile(c.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.File, err)
	}

	parseCfg, renderCfg, err := buildConfigs(c.File)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	doc, err := patitas.ParseToAST(content, c.File, parseCfg)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", c.File, err)
	}

	html, meta, toc, err := patitas.RenderAST(doc, nil, renderCfg, parseCfg)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", c.File, err)
	}

	fmt.Println(html)

	if c.Preview && isTTY() {
		fmt.Fprintln(os.Stderr, previewRuleStyle.Render("---"))
		fmt.Fprintf(os.Stderr, "%d headings, %d words, %d internal links, %d external links\n",
			meta.HeadingCount, meta.WordCount, len(meta.InternalLinks), len(meta.ExternalLinks))
		for _, entry := range toc {
			fmt.Fprintf(os.Stderr, "%s- %s\n", indent(entry.Level), entry.Text)
		}
	}

	return nil
}

func indent(level int) string {
	out := ""
	for i := 1; i < level; i++ {
		out += "  "
	}
	return out
}
