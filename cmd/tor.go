package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/network"
	"github.com/pk-services/pks/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const torCheckURL = "https://check.torproject.org/api/ip"

func init() {
	rootCmd.AddCommand(torCmd)
	torCmd.Flags().BoolP("check", "c", false, "Ask the Tor project whether requests leave through Tor")
	torCmd.SetOut(os.Stdout)
}

var torCmd = &cobra.Command{
	Use:   "tor",
	Short: "Show the Tor proxy settings",
	Long:  "Show the Tor proxy settings. Run any command with --tor to route it through the proxy.",
	Run: func(cmd *cobra.Command, args []string) {
		status := style.Fg(color.Red)("disabled")
		if network.TorEnabled() {
			status = style.Fg(color.Green)("enabled")
		}

		cmd.Println(style.Bold("proxy"), network.TorProxy())
		cmd.Println(style.Bold("status"), status)

		if !lo.Must(cmd.Flags().GetBool("check")) {
			return
		}

		resp, err := network.Get(context.Background(), torCheckURL)
		handleErr(err)

		var result struct {
			IsTor bool   `json:"IsTor"`
			IP    string `json:"IP"`
		}
		handleErr(json.Unmarshal(resp.Body, &result))

		if result.IsTor {
			cmd.Printf("%s exit through Tor at %s\n", style.Fg(color.Green)(icon.Get(icon.Tor)), result.IP)
			return
		}
		handleErr(fmt.Errorf("requests leave from %s, not through Tor", result.IP))
	},
}
