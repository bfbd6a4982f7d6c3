package cmd

import (
	"encoding/json"
	"io"

	"github.com/pk-services/pks/extract"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/log"
	"github.com/pk-services/pks/player"
	"github.com/pk-services/pks/query"
	"github.com/pk-services/pks/rules"
	"github.com/pk-services/pks/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newExtractor returns the yt-dlp extractor, cached when configured.
func newExtractor() extract.Extractor {
	var ex extract.Extractor = extract.YTDLP{Path: viper.GetString(key.ExtractYtdlpPath)}
	if viper.GetBool(key.ExtractCache) {
		ex = extract.Cached(ex)
	}
	return ex
}

func extractOptions() extract.Options {
	return extract.Options{
		FormatSort: viper.GetString(key.ExtractFormatSort),
		Verbose:    viper.GetBool(key.ExtractVerbose),
	}
}

// maxHeight returns the configured height limit, none when 0.
func maxHeight(height int) mo.Option[int] {
	if height <= 0 {
		return mo.None[int]()
	}
	return mo.Some(height)
}

func newPlayer() player.Player {
	p := player.Get(viper.GetString(key.PlayerDefault))
	p.AddOptions(viper.GetStringSlice(key.PlayerOptions)...)
	return p
}

func loadRules() *rules.Table {
	table, err := rules.Load(where.Rules())
	handleErr(err)
	return table
}

// remember stores url for completion. Failures only cost a suggestion.
func remember(url string) {
	if err := query.Remember(url); err != nil {
		log.Warnf("remember %s: %s", url, err)
	}
}

func completionURLs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func printJSON(w io.Writer, v any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	handleErr(encoder.Encode(v))
}

// intFlag returns the flag called name when it was given, the configured value
// of configKey otherwise. Several commands share one key, so the flags are not
// bound to viper.
func intFlag(cmd *cobra.Command, name, configKey string) int {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return lo.Must(cmd.Flags().GetInt(name))
	}
	return viper.GetInt(configKey)
}
