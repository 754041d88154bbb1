package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered mode with its best score so far.`,
	Run:   runList,
}

var (
	emph = color.New(color.FgBlue, color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
)

func runList(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	games := a.games.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	a.openStore()
	best := map[string]string{}
	if a.store != nil {
		if stats, err := a.store.GetAllGamesStats(); err == nil {
			for id, s := range stats {
				best[id] = fmt.Sprintf("best %s in %s games", humanize.Comma(int64(s.HighScore)), humanize.Comma(int64(s.GamesCount)))
			}
		}
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Record")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")

	for _, g := range games {
		record := best[g.ID]
		if record == "" {
			record = "not played yet"
		}
		// Pad before coloring so escape codes do not skew the columns
		fmt.Printf("  %s  %-*s  %s\n", emph(fmt.Sprintf("%-*s", maxIDLen, g.ID)), maxTitleLen, g.Title, dim(record))
	}

	fmt.Println()
	fmt.Println("Run 'blocks play <id>' to play a mode.")
}
