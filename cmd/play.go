package cmd

import (
	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/history"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/log"
	"github.com/pk-services/pks/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntP("entry", "n", 0, "Playlist entry to play, starting at 0")
	playCmd.Flags().Int("height", 0, "Preferred video height, 0 for the best")
}

var playCmd = &cobra.Command{
	Use:               "play <url>",
	Short:             "Play the stream of a single item",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		service := selectItem(cmd, args[0])

		title, url, err := service.Video(maxHeight(intFlag(cmd, "height", key.ExtractMaxHeight)))
		handleErr(err)

		p := newPlayer()
		proc, err := p.Play(title, url)
		handleErr(err)

		cmd.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Play)), style.Bold(title), style.Faint(p.Name()))
		handleErr(proc.Wait())

		if viper.GetBool(key.HistorySaveOnPlay) {
			selected, _ := service.Selected()
			if err := history.Save(selected.Title(), selected.Target(), p.Name()); err != nil {
				log.Warnf("history: %s", err)
			}
		}
	},
}
