package cmd

import (
	"os"

	"github.com/mvwi/wip/internal/config"
	"github.com/mvwi/wip/internal/git"
	"github.com/mvwi/wip/internal/ui"
	"github.com/mvwi/wip/internal/wip"
)

// newOptions builds workflow options for the current directory. args is the
// command's positional arguments; an explicit remote there overrides config.
func newOptions(args []string) (wip.Options, *git.Tree, error) {
	dir, err := os.Getwd()
	if err != nil {
		return wip.Options{}, nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return wip.Options{}, nil, err
	}

	remote := cfg.Remote
	if len(args) > 0 {
		remote = args[0]
	}

	opt := wip.Options{
		Dir:           dir,
		Remote:        remote,
		IndexArtifact: cfg.IndexArtifact,
		OtherArtifact: cfg.OtherArtifact,
	}
	return opt, git.Open(dir, ui.Trace), nil
}
