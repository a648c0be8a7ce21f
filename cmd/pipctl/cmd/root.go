package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/popupbar/internal/persist"
	"github.com/ytget/popupbar/internal/platform"
)

var (
	// Global flags
	verbose  bool
	groupDir string
)

var rootCmd = &cobra.Command{
	Use:   "pipctl",
	Short: "Inspect and maintain popup bar collection groups",
	Long: `A command line companion of the popup bar for the group files that
hold saved collections of slots and bar settings.

Examples:
  pipctl groups                        # List the groups of the group directory
  pipctl show work                     # Show the collections of work.json
  pipctl lock work                     # Make a group read-only
  pipctl duplicate work work-backup    # Copy a group into a new file
  pipctl delete work Foo               # Delete collection Foo of work.json`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	dir, err := platform.DefaultGroupDir()
	if err != nil {
		dir = "."
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&groupDir, "dir", "d", dir, "group directory")
}

// openStore opens the group directory named by --dir
func openStore() (*persist.Store, error) {
	store, err := persist.NewStore(groupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open group directory: %w", err)
	}
	return store, nil
}

// groupPath resolves a group argument. Bare names live in the group
// directory; anything that looks like a path is used as is.
func groupPath(store *persist.Store, arg string) string {
	if strings.ContainsRune(arg, filepath.Separator) || strings.HasPrefix(arg, "~") {
		if p, err := persist.ResolvePath(arg); err == nil {
			return p
		}
		return arg
	}
	return store.PathFor(arg)
}

// loadGroup loads an existing group. Unlike the UI it does not treat a
// missing file as an empty group.
func loadGroup(arg string) (*persist.Group, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	path := groupPath(store, arg)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("group %s not found", path)
	}
	g, err := persist.LoadGroup(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	return g, nil
}
