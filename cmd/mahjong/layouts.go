package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List available layouts",
	Long: `Shows the built-in layouts and any layouts loaded from the layouts
directory (--layouts-dir or layouts.dir in the config), easiest first.`,
	Args: cobra.NoArgs,
	Run:  runLayouts,
}

func runLayouts(_ *cobra.Command, _ []string) {
	all := catalog.All()

	fmt.Println("Available layouts:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-*s  %-*s  %5s  %6s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Tiles", "Layers", "Level")
	fmt.Printf("  %-*s  %-*s  %5s  %6s  %s\n", maxIDLen, "--", maxNameLen, "----", "-----", "------", "-----")

	for _, l := range all {
		layers := 0
		for _, p := range l.Positions {
			layers = max(layers, p.Z+1)
		}
		fmt.Printf("  %-*s  %-*s  %5d  %6d  %d\n", maxIDLen, l.ID, maxNameLen, l.Name, l.TileCount(), layers, l.Difficulty)
	}

	fmt.Println()
	fmt.Println("Run 'mahjong play --layout <id>' to play one.")
}
