package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/popupbar/internal/persist"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the group files of the group directory",
	Args:  cobra.NoArgs,
	RunE:  runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	paths, err := store.Scan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintf(out, "No groups in %s\n", store.Dir())
		return nil
	}

	for _, path := range paths {
		g, err := persist.LoadGroup(path)
		if err != nil {
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", path, err)
			}
			continue
		}
		flag := ""
		if g.Locked {
			flag = " [locked]"
		}
		fmt.Fprintf(out, "%s: %d collection(s)%s\n", g.Name(), g.Len(), flag)
		if verbose {
			fmt.Fprintf(out, "  %s\n", g.Path)
		}
	}
	return nil
}
