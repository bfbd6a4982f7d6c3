package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/extract"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/style"
	"github.com/pk-services/pks/util"
	"github.com/pk-services/pks/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolve runs the extraction of url behind a progress line.
func resolve(url string, options extract.Options) *extract.Service {
	service := extract.NewService(newExtractor(), options)

	erase := util.PrintErasable(fmt.Sprintf("%s Resolving %s...", icon.Get(icon.Progress), url))
	service.Resolve(context.Background(), url)
	erase()

	handleErr(service.Validate())
	remember(url)
	return service
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.PersistentFlags().IntP("entry", "n", 0, "Playlist entry to use, starting at 0")
	extractCmd.PersistentFlags().Int("height", 0, "Preferred video height, 0 for the best")
	extractCmd.PersistentFlags().String("format-sort", "", "Format sorting hint passed to yt-dlp")
	lo.Must0(viper.BindPFlag(key.ExtractFormatSort, extractCmd.PersistentFlags().Lookup("format-sort")))

	extractCmd.SetOut(os.Stdout)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Resolve media metadata and stream URLs with yt-dlp",
}

// selectItem resolves the url argument and moves to the --entry entry.
func selectItem(cmd *cobra.Command, url string) *extract.Service {
	service := resolve(url, extractOptions())
	service.SetCurrent(lo.Must(cmd.Flags().GetInt("entry")))
	return service
}

func init() {
	extractCmd.AddCommand(extractInfoCmd)
	extractInfoCmd.Flags().BoolP("json", "j", false, "Print the raw metadata")
}

var extractInfoCmd = &cobra.Command{
	Use:               "info <url>",
	Short:             "Show what a URL resolves to",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		service := resolve(args[0], extractOptions())
		info := service.Infos()

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd.OutOrStdout(), info)
			return
		}

		cmd.Println(style.Title(info.Type()), style.Bold(info.Title()))
		cmd.Println(style.Faint(service.URL()))

		if info.IsPlaylist() {
			cmd.Println(util.Quantify(service.Count(), "entry", "entries"))
			for i, entry := range info.Entries() {
				cmd.Printf("%s %s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("%3d", i)), entry.Title(), style.Faint(entry.Target()))
			}
		}
	},
}

func init() {
	extractCmd.AddCommand(extractFormatsCmd)
}

var extractFormatsCmd = &cobra.Command{
	Use:               "formats <url>",
	Short:             "List the formats of an item",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		service := selectItem(cmd, args[0])

		formats, err := service.FormatList()
		handleErr(err)

		chosen, err := service.SelectFormat(maxHeight(intFlag(cmd, "height", key.ExtractMaxHeight)))
		handleErr(err)

		for _, format := range formats {
			if format == chosen.Name() {
				cmd.Println(style.Fg(color.Green)(icon.Get(icon.Mark)), style.Bold(format))
				continue
			}
			cmd.Println(" ", format)
		}
	},
}

func init() {
	extractCmd.AddCommand(extractVideoCmd)
}

var extractVideoCmd = &cobra.Command{
	Use:               "video <url>",
	Short:             "Print the title and stream URL of the chosen format",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		service := selectItem(cmd, args[0])

		title, url, err := service.Video(maxHeight(intFlag(cmd, "height", key.ExtractMaxHeight)))
		handleErr(err)

		cmd.Println(style.Bold(title))
		cmd.Println(url)
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringP("dir", "d", "", "Directory to download into")
}

var downloadCmd = &cobra.Command{
	Use:               "download <url>",
	Short:             "Download a video with yt-dlp",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		dir := lo.Must(cmd.Flags().GetString("dir"))
		if dir == "" {
			dir = where.Downloads()
		}

		handleErr(newExtractor().Download(context.Background(), args[0], dir))
		remember(args[0])
		fmt.Printf("%s downloaded to %s\n", style.Fg(color.Green)(icon.Get(icon.Download)), dir)
	},
}
