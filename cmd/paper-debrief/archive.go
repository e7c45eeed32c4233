// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-debrief/internal/archive"
	"github.com/pdiddy/paper-debrief/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the papers already surfaced in past briefings",
	Long: `Archive inspects the local dedup store. Every paper that made it into a
briefing is recorded here, and future runs skip anything that matches by
identifier or by embedding similarity.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived papers, most recently seen first",
	RunE:  runArchiveList,
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("Archive is empty.")
		return nil
	}

	for _, e := range entries {
		title := e.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Printf("%-12s  %-60s  %s\n", e.ID, title, e.LastSeen.Format("2006-01-02"))
	}
	fmt.Printf("\n%d entries\n", len(entries))
	return nil
}

var archiveStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive summary statistics",
	RunE:  runArchiveStats,
}

func runArchiveStats(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stat(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("entries:  %d\n", st.Entries)
	if st.Entries > 0 {
		fmt.Printf("earliest: %s\n", st.Earliest.Format("2006-01-02"))
		fmt.Printf("latest:   %s\n", st.Latest.Format("2006-01-02"))
	}
	return nil
}

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	dbDir, _ := cmd.Flags().GetString("db-dir")
	cfg := types.ArchiveConfig{
		Dir:                stringOr(dbDir, viper.GetString("archive.dir"), "data"),
		DuplicateThreshold: viper.GetFloat64("archive.duplicate_threshold"),
	}
	return archive.Open(cfg, os.Stderr)
}

func init() {
	archiveCmd.PersistentFlags().String("db-dir", "", "directory for the dedup archive (default data)")

	archiveListCmd.Flags().Int("limit", 0, "maximum entries to list (0 = all)")
	archiveListCmd.Flags().Bool("json", false, "output entries as JSON")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveStatsCmd)

	rootCmd.AddCommand(archiveCmd)
}
