package cmd

import (
	"github.com/mvwi/wip/internal/ui"
	"github.com/mvwi/wip/internal/wip"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save [remote]",
	Short: "Push all uncommitted work to a disposable <branch>.WIP branch",
	Long: `Package staged changes, unstaged changes, and untracked files into a single
commit on <branch>.WIP, push it together with <branch>, and reset the local
tree to HEAD.

Staged and unstaged content are captured as two separate patch files inside
the WIP commit, so wip restore can rebuild the exact index state. An existing
remote WIP branch from an earlier save is kept as <branch>.WIP.BACKUP (then
BACKUP-1, BACKUP-2, …).

There is no automatic rollback: if a git or patch invocation fails after the
tree has been cleared, the echoed commands show how far the run got and the
tree is left for manual recovery.`,
	Example: `  wip save            Save to origin
  wip save upstream   Save to the upstream remote`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	opt, tree, err := newOptions(args)
	if err != nil {
		return err
	}

	if err := wip.Save(tree, opt); err != nil {
		return err
	}

	ui.Success("Saved work in progress to %s", opt.Remote)
	return nil
}
