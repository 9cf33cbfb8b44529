package cmd

import (
	"fmt"

	"github.com/lbliii/patitas/internal/version"
)

// VersionCmd displays build information: version, commit, and build
// date, or a JSON/short variant for scripting.
type VersionCmd struct {
	JSON  bool `kong:"help='Output in JSON format for scripting'"`
	Short bool `kong:"help='Output version number only'"`
}

func (c *VersionCmd) Run() error {
	info := version.GetBuildInfo()

	switch {
	case c.JSON:
		jsonBytes, err := info.JSON()
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
	case c.Short:
		fmt.Println(info.Short())
	default:
		fmt.Println(info.String())
	}

	return nil
}
