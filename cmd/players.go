package cmd

import (
	"os"

	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/player"
	"github.com/pk-services/pks/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playersCmd)
	playersCmd.Flags().BoolP("probe", "p", false, "Show which player would be picked")
	playersCmd.SetOut(os.Stdout)
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the supported media players and whether they are installed",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("probe")) {
			cmd.Println(player.Get(viper.GetString(key.PlayerDefault)).Name())
			return
		}

		for _, name := range player.List() {
			p, err := player.New(name)
			handleErr(err)

			mark := style.Fg(color.Red)(icon.Get(icon.Cross))
			if p.Check() {
				mark = style.Fg(color.Green)(icon.Get(icon.Success))
			}

			line := []any{mark, style.Bold(name)}
			if name == viper.GetString(key.PlayerDefault) {
				line = append(line, style.Faint("(default)"))
			}
			cmd.Println(line...)
		}
	},
}
