package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/open"
	"github.com/pk-services/pks/scrape"
	"github.com/pk-services/pks/style"
	"github.com/pk-services/pks/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().String("head", "", "Regular expression the image file name must match")
	lo.Must0(viper.BindPFlag(key.ScrapeHead, scrapeCmd.Flags().Lookup("head")))

	scrapeCmd.Flags().StringSlice("ext", nil, "Image extensions to keep")
	lo.Must0(viper.BindPFlag(key.ScrapeExt, scrapeCmd.Flags().Lookup("ext")))

	scrapeCmd.Flags().String("strategy", "", "Scraping strategy (xpath, stream)")
	lo.Must0(scrapeCmd.RegisterFlagCompletionFunc("strategy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(scrape.XPath), string(scrape.Stream)}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.ScrapeStrategy, scrapeCmd.Flags().Lookup("strategy")))

	scrapeCmd.Flags().BoolP("json", "j", false, "Print the image to link mapping as JSON")
	scrapeCmd.Flags().BoolP("images", "i", false, "Print images only")
	scrapeCmd.Flags().BoolP("links", "l", false, "Print links only")
	scrapeCmd.Flags().BoolP("open", "o", false, "Choose links to open in the browser")
	scrapeCmd.MarkFlagsMutuallyExclusive("json", "images", "links", "open")

	scrapeCmd.SetOut(os.Stdout)
}

var scrapeCmd = &cobra.Command{
	Use:               "scrape <url>",
	Short:             "List the images of a page with the links they point to",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		service := scrape.New(
			loadRules(),
			scrape.WithHead(viper.GetString(key.ScrapeHead)),
			scrape.WithExt(viper.GetStringSlice(key.ScrapeExt)...),
			scrape.WithStrategy(scrape.Strategy(viper.GetString(key.ScrapeStrategy))),
		)

		erase := util.PrintErasable(fmt.Sprintf("%s Scraping %s...", icon.Get(icon.Progress), args[0]))
		err := service.Load(context.Background(), args[0])
		erase()
		handleErr(err)
		remember(args[0])

		pairs := service.ImagesLinks()

		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			printJSON(cmd.OutOrStdout(), pairs)
		case lo.Must(cmd.Flags().GetBool("images")):
			for _, image := range pairs.Images() {
				cmd.Println(image)
			}
		case lo.Must(cmd.Flags().GetBool("links")):
			for _, link := range pairs.Links() {
				cmd.Println(link)
			}
		case lo.Must(cmd.Flags().GetBool("open")):
			handleErr(openLinks(pairs.Links()))
		default:
			width := util.TerminalWidth(80)
			pairs.Each(func(image, link string) {
				cmd.Println(icon.Get(icon.Image), util.Fit(image, width-4))
				cmd.Println(style.Fg(color.Gray)(icon.Get(icon.Link)), style.Faint(util.Fit(link, width-4)))
			})
			cmd.Println(style.Bold(util.Quantify(pairs.Len(), "pair", "pairs")), style.Faint("from "+service.URL()))
		}
	},
}

func openLinks(links []string) error {
	links = lo.Uniq(links)
	if len(links) == 0 {
		return fmt.Errorf("no links found")
	}

	var chosen []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message:  "Open which links?",
		Options:  links,
		PageSize: 15,
	}, &chosen); err != nil {
		return err
	}

	for _, link := range chosen {
		if err := open.Start(link); err != nil {
			return err
		}
	}
	return nil
}
