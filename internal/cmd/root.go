package cmd

import (
	"fmt"
	"os"

	"github.com/mvwi/wip/internal/update"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "wip",
	Short: "Park work in progress on a remote branch",
	Long: `wip - park uncommitted work on the remote, pick it up anywhere

wip save packages your staged changes, unstaged changes, and untracked files
into a single commit on a disposable <branch>.WIP branch, pushes it together
with <branch>, and resets the local tree to HEAD. wip restore replays that
snapshot onto a clean checkout of <branch> — same files, same index.

Typical workflow:
  wip save              Park everything on origin, tree back at HEAD
  ...switch machines, clone or pull the branch...
  wip restore           Everything back, staged files staged again

Configuration:
  Add .wip.toml to your repo root (or ~/.config/wip/config.toml) to change
  the default remote or the artifact filenames.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

// Execute runs the root command.
func Execute() {
	update.CheckInBackground()
	err := rootCmd.Execute()
	update.PrintNoticeIfNewer(Version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("wip version {{.Version}}\n")
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}
