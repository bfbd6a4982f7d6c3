package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/constant"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/player"
	"github.com/pk-services/pks/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dependency is an external program pks runs.
type dependency struct {
	name     string
	required bool
	found    func() bool
}

func dependencies() []dependency {
	ytdlp := viper.GetString(key.ExtractYtdlpPath)
	if ytdlp == "" {
		ytdlp = "yt-dlp"
	}

	deps := []dependency{{
		name:     "yt-dlp",
		required: true,
		found: func() bool {
			_, err := exec.LookPath(ytdlp)
			return err == nil
		},
	}}

	for _, name := range player.List() {
		if name == player.Dummy {
			continue
		}
		deps = append(deps, dependency{
			name: name,
			found: func() bool {
				p, err := player.New(name)
				return err == nil && p.Check()
			},
		})
	}
	return deps
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that yt-dlp and the media players are installed",
	Run: func(cmd *cobra.Command, args []string) {
		var missing []string

		for _, dep := range dependencies() {
			if dep.found() {
				cmd.Println(style.Fg(color.Green)(icon.Get(icon.Success)), dep.name)
				continue
			}

			cmd.Println(style.Fg(color.Red)(icon.Get(icon.Cross)), dep.name)
			if dep.required {
				missing = append(missing, dep.name)
			}
		}

		for _, dep := range missing {
			printMissingDependencyError(dep)
		}
		if len(missing) > 0 {
			os.Exit(1)
		}
	},
}

var installCommands = map[string]map[string]string{
	constant.Darwin:  {"yt-dlp": "brew install yt-dlp"},
	constant.Linux:   {"yt-dlp": "pipx install yt-dlp"},
	constant.Windows: {"yt-dlp": "scoop install yt-dlp"},
}

func printMissingDependencyError(dep string) {
	installCmd := installCommands[runtime.GOOS][dep]

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("'%s' was not found in your PATH.", dep)

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\nTo install it, try running:\n  %s", style.New().Foreground(color.Mauve).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, lo.Compact([]string{title, "", body, suggestion})...)))
}
