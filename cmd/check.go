package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/lbliii/patitas"
	"github.com/lbliii/patitas/internal/patitas/directive"
)

var violationStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("1")).
	Bold(true)

// CheckCmd parses a file and reports every directive contract
// violation (wrong parent, missing/forbidden children) without
// rendering, so a CI step can lint a doc tree before publishing it.
type CheckCmd struct {
	File string `arg:"" help:"Markdown file to validate" type:"existingfile"`
}

func (c *CheckCmd) Run() error {
	content, err := readFile(c.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.File, err)
	}

	parseCfg, _, err := buildConfigs(c.File)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	doc, err := patitas.ParseToAST(content, c.File, parseCfg)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", c.File, err)
	}

	registry, _ := parseCfg.DirectiveRegistry.(*directive.Registry)
	violations := directive.ValidateTree(doc, registry)
	if len(violations) == 0 {
		fmt.Printf("%s: no directive contract violations\n", c.File)
		return nil
	}

	for _, v := range violations {
		label := "[violation]"
		if isTTY() {
			label = violationStyle.Render(label)
		}
		fmt.Fprintf(os.Stderr, "%s %s:%d-%d %s: %s\n", label, c.File, v.Start, v.End, v.Directive, v.Reason)
	}
	return fmt.Errorf("%d directive contract violation(s) found", len(violations))
}
