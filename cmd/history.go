package cmd

import (
	"os"
	"time"

	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/history"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/style"
	"github.com/pk-services/pks/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Print the history as JSON")
	historyCmd.Flags().IntP("limit", "n", 0, "Show only the most recent entries")
	historyCmd.Flags().StringP("remove", "r", "", "Remove the entry of a URL")
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List played entries, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		if url := lo.Must(cmd.Flags().GetString("remove")); url != "" {
			handleErr(history.Remove(url))
			cmd.Printf("%s removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), url)
			return
		}

		entries, err := history.Recent()
		handleErr(err)

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd.OutOrStdout(), entries)
			return
		}

		width := util.TerminalWidth(80)
		for _, e := range entries {
			cmd.Println(style.Bold(util.Fit(e.Title, width)))
			cmd.Println(" ", style.Faint(e.LastPlayed.Format(time.DateTime)), style.Fg(color.Yellow)(util.Quantify(e.Plays, "play", "plays")), style.Faint(e.Player))
			cmd.Println(" ", e.URL)
		}
	},
}
