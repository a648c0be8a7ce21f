package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/popupbar/internal/persist"
)

var lockCmd = &cobra.Command{
	Use:   "lock <group>",
	Short: "Make a group read-only",
	Long: `Lock a group file. Locked groups refuse saving, renaming and deleting
collections until they are unlocked; loading still works.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetLocked(cmd, args[0], true)
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <group>",
	Short: "Make a group writable again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetLocked(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(unlockCmd)
}

func runSetLocked(cmd *cobra.Command, arg string, locked bool) error {
	g, err := loadGroup(arg)
	if err != nil {
		return err
	}
	if err := persist.SetLocked(g, locked); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	state := "unlocked"
	if locked {
		state = "locked"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Group %s %s\n", g.Name(), state)
	return nil
}
