package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/popupbar/internal/persist"
)

var (
	outputJSON bool
)

// GroupInfo is the structured form of a group for programmatic access
type GroupInfo struct {
	Name        string           `json:"name"`
	Path        string           `json:"path"`
	Locked      bool             `json:"locked"`
	Collections []CollectionInfo `json:"collections"`
}

// CollectionInfo describes one saved collection
type CollectionInfo struct {
	Name        string     `json:"name"`
	DisplayMode string     `json:"display_mode"`
	Direction   string     `json:"direction"`
	Slots       []SlotInfo `json:"slots"`
}

// SlotInfo describes one saved slot
type SlotInfo struct {
	Name         string `json:"name"`
	Recipe       string `json:"recipe"`
	OverlayText  string `json:"overlay_text,omitempty"`
	OverlayImage string `json:"overlay_image,omitempty"`
}

var showCmd = &cobra.Command{
	Use:   "show <group> [collection]",
	Short: "Show the collections of a group",
	Long: `Show the collections of a group file in file order with their display
mode, direction and slots. Naming a collection shows only that one.

Examples:
  pipctl show work
  pipctl show work Foo --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	g, err := loadGroup(args[0])
	if err != nil {
		return err
	}

	names := g.Names()
	if len(args) == 2 {
		names = []string{args[1]}
	}

	info, err := describeGroup(g, names)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	flag := ""
	if info.Locked {
		flag = " [locked]"
	}
	fmt.Fprintf(out, "Group %s%s\n", info.Name, flag)
	for _, c := range info.Collections {
		fmt.Fprintf(out, "\n%s (%s, %s)\n", c.Name, c.DisplayMode, c.Direction)
		for i, s := range c.Slots {
			fmt.Fprintf(out, "  %d. %s  %s\n", i+1, s.Name, s.Recipe)
			if verbose && (s.OverlayText != "" || s.OverlayImage != "") {
				fmt.Fprintf(out, "     overlay: %q %s\n", s.OverlayText, s.OverlayImage)
			}
		}
	}
	return nil
}

// describeGroup collects the named collections of g
func describeGroup(g *persist.Group, names []string) (GroupInfo, error) {
	info := GroupInfo{
		Name:        g.Name(),
		Path:        g.Path,
		Locked:      g.Locked,
		Collections: []CollectionInfo{},
	}
	for _, name := range names {
		specs, settings, err := persist.Load(g, name)
		if err != nil {
			return GroupInfo{}, err
		}
		c := CollectionInfo{
			Name:        name,
			DisplayMode: settings.DisplayMode.String(),
			Direction:   settings.Direction.String(),
			Slots:       make([]SlotInfo, 0, len(specs)),
		}
		for _, s := range specs {
			c.Slots = append(c.Slots, SlotInfo{
				Name:         s.Name,
				Recipe:       s.Recipe,
				OverlayText:  s.OverlayText,
				OverlayImage: s.OverlayImage,
			})
		}
		info.Collections = append(info.Collections, c)
	}
	return info, nil
}
