package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/popupbar/internal/persist"
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <group> <new-group>",
	Short: "Copy a group into a new group file",
	Long: `Copy every collection of a group into a new group file. The copy is
always unlocked and an existing target is never overwritten.`,
	Args: cobra.ExactArgs(2),
	RunE: runDuplicate,
}

func init() {
	rootCmd.AddCommand(duplicateCmd)
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	g, err := loadGroup(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}

	dup, err := persist.Duplicate(g, groupPath(store, args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to %s (%d collection(s))\n", g.Name(), dup.Path, dup.Len())
	return nil
}
