package cmd

import (
	"fmt"

	"github.com/lbliii/patitas"
)

// TOCCmd prints the nested table-of-contents HTML for a file, without
// the document body.
type TOCCmd struct {
	File string `arg:"" help:"Markdown file to extract a table of contents from" type:"existingfile"`
}

func (c *TOCCmd) Run() error {
	content, err := readFile(c.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.File, err)
	}

	parseCfg, renderCfg, err := buildConfigs(c.File)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, tocHTML, _, _, err := patitas.ParseWithTOC(content, patitas.Options{
		SourceFile: c.File,
		Parse:      parseCfg,
		Render:     renderCfg,
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", c.File, err)
	}

	fmt.Println(tocHTML)
	return nil
}
