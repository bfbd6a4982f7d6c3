// Command pks scrapes galleries, resolves media with yt-dlp and plays it.
package main

import (
	"github.com/pk-services/pks/cmd"
	"github.com/pk-services/pks/config"
	"github.com/pk-services/pks/internal/cache"
	"github.com/pk-services/pks/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cache.CollectGarbage()

	cmd.Execute()
}
