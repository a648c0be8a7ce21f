package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/popupbar/internal/persist"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <group> [collection]",
	Short: "Delete a group file or one of its collections",
	Long: `Delete a collection of a group, or the whole group file when no
collection is named. Locked groups are left untouched.

Examples:
  pipctl delete work Foo    # Remove collection Foo
  pipctl delete scratch     # Remove scratch.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDelete,
}

var renameCmd = &cobra.Command{
	Use:   "rename <group> <collection> <new-name>",
	Short: "Rename a collection of a group",
	Args:  cobra.ExactArgs(3),
	RunE:  runRename,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(renameCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	g, err := loadGroup(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 2 {
		if err := persist.DeleteCollection(g, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted collection %s from %s\n", args[1], g.Name())
		return nil
	}

	if err := persist.DeleteGroup(g); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted group %s\n", g.Name())
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	g, err := loadGroup(args[0])
	if err != nil {
		return err
	}
	if err := persist.RenameCollection(g, args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s in %s\n", args[1], args[2], g.Name())
	return nil
}
