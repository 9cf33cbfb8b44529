package cmd

import (
	"fmt"
	"os"

	"github.com/lbliii/patitas"
	"github.com/lbliii/patitas/internal/fswatch"
)

// WatchCmd re-renders a file to stdout every time it changes on disk,
// a development convenience for previewing edits without a manual
// `patitas render` after every save.
type WatchCmd struct {
	File string `arg:"" help:"Markdown file to watch and re-render" type:"existingfile"`
}

func (c *WatchCmd) Run() error {
	w, err := fswatch.New(c.File)
	if err != nil {
		return fmt.Errorf("watching %s: %w", c.File, err)
	}
	defer func() { _ = w.Close() }()

	if err := c.renderOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
	}

	for {
		select {
		case <-w.Events():
			if err := c.renderOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "render error: %v\n", err)
			}
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

func (c *WatchCmd) renderOnce() error {
	content, err := readFile(c.File)
	if err != nil {
		return err
	}

	parseCfg, renderCfg, err := buildConfigs(c.File)
	if err != nil {
		return err
	}

	html, err := patitas.Parse(content, patitas.Options{
		SourceFile: c.File,
		Parse:      parseCfg,
		Render:     renderCfg,
	})
	if err != nil {
		return err
	}

	fmt.Println(html)
	return nil
}
