package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/filesystem"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/lastfm"
	"github.com/pk-services/pks/playlist"
	"github.com/pk-services/pks/style"
	"github.com/pk-services/pks/tui"
	"github.com/pk-services/pks/util"
	"github.com/pk-services/pks/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playlistCmd)

	flags := playlistCmd.PersistentFlags()
	flags.IntP("batch", "b", 0, "Number of entries loaded at once")
	lo.Must0(viper.BindPFlag(key.PlaylistBatch, flags.Lookup("batch")))
	flags.Int("height", 0, "Maximum video height requested from the player")
	flags.BoolP("shuffle", "s", false, "Shuffle m3u playback")
	lo.Must0(viper.BindPFlag(key.PlaylistShuffle, flags.Lookup("shuffle")))
	flags.String("name", "", "Name of the saved m3u playlist")

	flags.String("lastfm", "", "Take the tracks of a Last.fm page")
	flags.String("tag", "", "Take the tracks of a Last.fm tag")
	flags.String("artist", "", "Take the tracks of a Last.fm artist")
	flags.String("song", "", "Narrow --artist to a song")
	flags.String("album", "", "Narrow --artist to an album")

	playlistCmd.SetOut(os.Stdout)
}

var playlistCmd = &cobra.Command{
	Use:     "playlist",
	Aliases: []string{"pl"},
	Short:   "Walk playlists: play, download and save them as m3u",
}

// lastfmURL builds the Last.fm listing from the flags, empty when none is set.
func lastfmURL(cmd *cobra.Command) string {
	// commands without the Last.fm flags get empty values
	get := func(name string) string {
		value, _ := cmd.Flags().GetString(name)
		return value
	}

	return lastfm.URL{
		URL:    get("lastfm"),
		Tag:    get("tag"),
		Artist: get("artist"),
		Song:   get("song"),
		Album:  get("album"),
	}.String()
}

// newPlaylist builds the playlist of the url argument, or of the Last.fm
// listing given by flags, and loads its first batch.
func newPlaylist(cmd *cobra.Command, args []string, load bool) *playlist.Playlist {
	options := []playlist.Option{
		playlist.WithBatch(viper.GetInt(key.PlaylistBatch)),
		playlist.WithHistory(viper.GetBool(key.HistorySaveOnPlay)),
		playlist.WithDir(where.Downloads()),
		playlist.WithPlaylistsDir(where.Playlists()),
		playlist.WithPlayerOptions(viper.GetStringSlice(key.PlayerOptions)...),
	}

	var url string
	if len(args) > 0 {
		url = args[0]
	}

	if listing := lastfmURL(cmd); listing != "" {
		erase := util.PrintErasable(fmt.Sprintf("%s Loading %s...", icon.Get(icon.Progress), listing))
		page, err := lastfm.Load(context.Background(), listing)
		erase()
		handleErr(err)

		options = append(options, playlist.WithAlbum(page))
		url = page.URL()
	}

	if url == "" {
		handleErr(fmt.Errorf("a url or a Last.fm flag is required"))
	}

	pl := playlist.New(newExtractor(), newPlayer(), options...)
	if !load {
		return pl
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Listing %s...", icon.Get(icon.Progress), url))
	err := pl.SetURL(context.Background(), url)
	erase()
	handleErr(err)

	remember(url)
	return pl
}

func playlistHeight(cmd *cobra.Command) int {
	return intFlag(cmd, "height", key.PlaylistHeight)
}

func playlistName(cmd *cobra.Command, pl *playlist.Playlist) string {
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		return name
	}
	return pl.URL()
}

func done(cmd *cobra.Command, verb string, n, of int) {
	cmd.Printf("%s %s %s of %d\n", style.Fg(color.Green)(icon.Get(icon.Success)), verb, util.Quantify(n, "entry", "entries"), of)
}

func init() {
	playlistCmd.AddCommand(playlistPlayCmd)
}

var playlistPlayCmd = &cobra.Command{
	Use:               "play [url]",
	Short:             "Play every entry of the first batch in order",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		pl := newPlaylist(cmd, args, true)
		done(cmd, "played", pl.PlayAll(context.Background(), playlistHeight(cmd)), pl.CacheSize())
	},
}

func init() {
	playlistCmd.AddCommand(playlistDownloadCmd)
}

var playlistDownloadCmd = &cobra.Command{
	Use:               "download [url]",
	Short:             "Download every entry of the first batch",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		pl := newPlaylist(cmd, args, true)
		done(cmd, "downloaded", pl.DownloadAll(context.Background()), pl.CacheSize())
	},
}

func init() {
	playlistCmd.AddCommand(playlistSaveCmd)
}

var playlistSaveCmd = &cobra.Command{
	Use:               "save [url]",
	Short:             "Save the first batch as an m3u playlist",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		pl := newPlaylist(cmd, args, true)

		path, err := pl.SaveM3U(context.Background(), playlistName(cmd, pl))
		handleErr(err)

		cmd.Printf("%s saved to %s\n", style.Fg(color.Green)(icon.Get(icon.Playlist)), path)
	},
}

func init() {
	playlistCmd.AddCommand(playlistCacheCmd)
}

var playlistCacheCmd = &cobra.Command{
	Use:               "cache [url]",
	Short:             "Play the first batch through a temporary m3u playlist",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		pl := newPlaylist(cmd, args, true)
		handleErr(pl.PlayCache(context.Background(), playlistHeight(cmd), viper.GetBool(key.PlaylistShuffle)))
	},
}

func init() {
	playlistCmd.AddCommand(playlistAutoCmd)
	playlistAutoCmd.Flags().Int("start", 1, "First playlist item, starting at 1")
	playlistAutoCmd.Flags().Int("end", 0, "Last playlist item, 0 for the batch size")
}

var playlistAutoCmd = &cobra.Command{
	Use:               "auto <url>",
	Short:             "Let the player walk the playlist itself",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		pl := newPlaylist(cmd, args, true)

		start := max(lo.Must(cmd.Flags().GetInt("start")), 1)
		end := lo.Must(cmd.Flags().GetInt("end"))
		if end <= 0 {
			end = start + pl.Batch() - 1
		}

		handleErr(pl.PlayAuto(start, end, playlistHeight(cmd), viper.GetBool(key.PlaylistShuffle)))
	},
}

func completionPlaylists(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return savedPlaylists(), cobra.ShellCompDirectiveNoFileComp
}

// savedPlaylists lists the names of the m3u files in the playlists directory.
func savedPlaylists() []string {
	entries, err := filesystem.API().ReadDir(where.Playlists())
	if err != nil {
		return nil
	}

	return lo.FilterMap(entries, func(e os.FileInfo, _ int) (string, bool) {
		name := e.Name()
		return strings.TrimSuffix(name, filepath.Ext(name)), !e.IsDir() && filepath.Ext(name) == ".m3u"
	})
}

func init() {
	playlistCmd.AddCommand(playlistM3UCmd)
	playlistM3UCmd.Flags().BoolP("list", "l", false, "List the saved playlists")
}

var playlistM3UCmd = &cobra.Command{
	Use:               "m3u [name]",
	Short:             "Play a saved m3u playlist",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionPlaylists,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("list")) || len(args) == 0 {
			for _, name := range savedPlaylists() {
				tracks, err := playlist.ReadM3U(filepath.Join(where.Playlists(), name+".m3u"))
				if err != nil {
					cmd.Println(style.Fg(color.Red)(name), style.Faint(err.Error()))
					continue
				}
				cmd.Println(style.Bold(name), style.Faint(util.Quantify(len(tracks), "track", "tracks")))
			}
			return
		}

		pl := playlist.New(newExtractor(), newPlayer(),
			playlist.WithPlaylistsDir(where.Playlists()),
			playlist.WithPlayerOptions(viper.GetStringSlice(key.PlayerOptions)...),
		)
		handleErr(pl.PlayM3U(args[0], playlistHeight(cmd), viper.GetBool(key.PlaylistShuffle)))
	},
}

func init() {
	playlistCmd.AddCommand(playlistBrowseCmd)
}

var playlistBrowseCmd = &cobra.Command{
	Use:               "browse [url]",
	Short:             "Browse a playlist interactively",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionURLs,
	Run: func(cmd *cobra.Command, args []string) {
		browse(cmd, lo.FirstOr(args, ""))
	},
}

// browse opens the interactive browser on url. Players are detached from the
// terminal while it owns the screen.
func browse(cmd *cobra.Command, url string) {
	viper.Set(key.PlayerConsole, false)

	var args []string
	if url != "" {
		args = []string{url}
	}
	pl := newPlaylist(cmd, args, false)
	if url == "" {
		url = lastfmURL(cmd)
	}

	remember(url)
	handleErr(tui.Run(context.Background(), pl, &tui.Options{
		URL:    url,
		Height: playlistHeight(cmd),
		Name:   lo.CoalesceOrEmpty(playlistName(cmd, pl), playlist.CacheName),
	}))
}
