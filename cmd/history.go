package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidembed/internal/config"
	"vidembed/internal/history"
)

var (
	flagRemove string
	flagLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List inserted embeds",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().StringVar(&flagRemove, "remove", "", "Delete the entry with this ID")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Show at most this many entries (0: all)")
}

func historyRun(cmd *cobra.Command, args []string) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagRemove != "" {
		if err := store.Remove(cmd.Context(), flagRemove); err != nil {
			return err
		}
		debugf("removed history entry %s", flagRemove)
		return nil
	}

	entries, err := store.List(cmd.Context(), flagLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No history entries found.")
		return nil
	}

	for _, line := range history.FormatForDisplay(entries) {
		fmt.Fprintln(out, line)
	}
	return nil
}
