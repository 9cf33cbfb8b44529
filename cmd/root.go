// Package cmd provides the patitas command-line interface.
package cmd

import (
	kongcompletion "github.com/jotaen/kong-completion"
)

// CLI is the root command structure for Kong.
type CLI struct {
	Render     RenderCmd                 `cmd:"" help:"Render a Markdown file to HTML"`
	TOC        TOCCmd                    `cmd:"" help:"Render a Markdown file's table of contents"`
	Check      CheckCmd                  `cmd:"" help:"Validate directive placement without rendering"`
	Watch      WatchCmd                  `cmd:"" help:"Re-render a file on every save"`
	Version    VersionCmd                `cmd:"" help:"Show version info"`
	Completion kongcompletion.Completion `cmd:"" help:"Generate shell completions"`
}
