package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [layout]",
	Short: "Show best times",
	Long: `Without a layout, shows a summary of every layout played.
With a layout id, shows the 10 fastest wins on it.

Examples:
  mahjong scores
  mahjong scores pyramid
  mahjong scores pyramid --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded results (for one layout when given)")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	layoutID := ""
	if len(args) == 1 {
		layoutID = args[0]
		if !catalog.Has(layoutID) {
			return fmt.Errorf("unknown layout %q, run 'mahjong layouts' to list them", layoutID)
		}
	}

	if flagClear {
		if err := store.ClearResults(layoutID); err != nil {
			return err
		}
		fmt.Println("Results cleared.")
		return nil
	}

	if layoutID == "" {
		return printSummary(store)
	}
	return printBestTimes(store, layoutID)
}

func printBestTimes(store *storage.Store, layoutID string) error {
	best, err := store.BestTimes(layoutID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best Times - %s\n", catalog.ByID(layoutID).Name)
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'mahjong play --layout %s' to set the first time!\n", layoutID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %s\n", "Rank", "Time", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %s\n", "----", "----", "-----", "-----", "----")
	for i, r := range best {
		fmt.Printf("  %-4d  %-6s  %-7d  %-6s  %s\n", i+1, clock(r.Elapsed), r.Score, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.LayoutStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return catalog.IndexOf(ids[i]) < catalog.IndexOf(ids[j]) ||
			(catalog.IndexOf(ids[i]) == catalog.IndexOf(ids[j]) && ids[i] < ids[j])
	})

	fmt.Printf("  %-16s  %6s  %4s  %5s  %-6s  %s\n", "Layout", "Played", "Won", "Rate", "Best", "Top score")
	fmt.Printf("  %-16s  %6s  %4s  %5s  %-6s  %s\n", "------", "------", "---", "----", "----", "---------")
	for _, id := range ids {
		s := stats[id]
		best := "-"
		if s.BestTime > 0 {
			best = clock(s.BestTime)
		}
		fmt.Printf("  %-16s  %6d  %4d  %4.0f%%  %-6s  %d\n", id, s.Played, s.Won, s.WinRate()*100, best, s.BestScore)
	}
	return nil
}

func clock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
