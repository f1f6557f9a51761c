package cmd

import (
	"github.com/mvwi/wip/internal/ui"
	"github.com/mvwi/wip/internal/wip"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore [remote]",
	Short: "Re-apply work saved with wip save onto a clean checkout",
	Long: `Pull the current branch, fetch the snapshot from <branch>.WIP on the remote,
and replay it: unstaged edits and untracked files land back in the working
tree, and everything that was staged at save time is staged again.

The working tree must be completely clean — restore rewrites files in place
and refuses to mix a snapshot into pending changes. The WIP branch itself is
left on the remote; delete it there once you no longer need the snapshot.`,
	Example: `  wip restore            Restore from origin
  wip restore upstream   Restore from the upstream remote`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	opt, tree, err := newOptions(args)
	if err != nil {
		return err
	}

	if err := wip.Restore(tree, opt); err != nil {
		return err
	}

	ui.Success("Restored work in progress from %s", opt.Remote)
	return nil
}
