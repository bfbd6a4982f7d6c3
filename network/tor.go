package network

import (
	"os"

	"github.com/pk-services/pks/constant"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/log"
	"github.com/spf13/viper"
)

var proxyVariables = []string{"HTTP_PROXY", "HTTPS_PROXY"}

// TorProxy returns the proxy URL used while Tor is enabled.
func TorProxy() string {
	addr := viper.GetString(key.NetworkTorAddress)
	if addr == "" {
		addr = constant.TorAddress
	}
	return "socks5h://" + addr
}

// EnableTor routes every subsequent request of the process through the Tor SOCKS endpoint.
// Child processes (yt-dlp, players) inherit the variables too.
func EnableTor() error {
	proxy := TorProxy()
	for _, name := range proxyVariables {
		if err := os.Setenv(name, proxy); err != nil {
			return err
		}
	}

	log.Infof("tor enabled through %s", proxy)
	return nil
}

// DisableTor removes the proxy variables set by EnableTor.
func DisableTor() error {
	for _, name := range proxyVariables {
		if err := os.Unsetenv(name); err != nil {
			return err
		}
	}

	log.Info("tor disabled")
	return nil
}

// TorEnabled reports whether both proxy variables point at the Tor endpoint.
func TorEnabled() bool {
	proxy := TorProxy()
	for _, name := range proxyVariables {
		if os.Getenv(name) != proxy {
			return false
		}
	}
	return true
}
