package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/lbliii/patitas/internal/config"
	"github.com/lbliii/patitas/internal/patitas/directive"
	"github.com/lbliii/patitas/internal/patitas/pcontext"
	"github.com/lbliii/patitas/internal/patitas/resolve"
	"github.com/lbliii/patitas/internal/patitas/role"
)

// buildConfigs loads patitas.yaml starting from file's directory and
// turns it into the ParseConfig/RenderConfig pair every library entry
// point in the root patitas package takes, wiring a resolve.Resolver
// rooted at the config's ProjectRoot for include/literalinclude
// directives along the way.
func buildConfigs(file string) (pcontext.ParseConfig, pcontext.RenderConfig, error) {
	cfg, err := config.LoadFromPath(filepath.Dir(file))
	if err != nil {
		return pcontext.ParseConfig{}, pcontext.RenderConfig{}, err
	}

	res := resolve.New(resolve.Config{
		Fs:   afero.NewOsFs(),
		Root: cfg.ProjectRoot,
	})
	directiveRegistry := directive.NewStandardRegistry(res.ForRender(file))
	roleRegistry := role.NewStandardRegistry(nil)

	parseCfg := pcontext.ParseConfig{
		TablesEnabled:        cfg.Tables,
		StrikethroughEnabled: cfg.Strikethrough,
		TaskListsEnabled:     cfg.TaskLists,
		FootnotesEnabled:     cfg.Footnotes,
		MathEnabled:          cfg.Math,
		AutolinksEnabled:     cfg.Autolinks,
		DirectiveRegistry:    directiveRegistry,
		RoleRegistry:         roleRegistry,
	}

	renderCfg := pcontext.RenderConfig{
		Highlight:         pcontext.HighlightStyle(cfg.HighlightStyle),
		DirectiveRegistry: directiveRegistry,
		RoleRegistry:      roleRegistry,
		Slugify:           pcontext.DefaultSlugify,
	}

	return parseCfg, renderCfg, nil
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
