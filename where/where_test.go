package where

import (
	"path/filepath"
	"testing"

	"github.com/pk-services/pks/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Directory functions create what they return", t, func() {
		for name, dir := range map[string]func() string{
			"Config":      Config,
			"Cache":       Cache,
			"Logs":        Logs,
			"Playlists":   Playlists,
			"Downloads":   Downloads,
			"Extractions": Extractions,
			"Temp":        Temp,
		} {
			Convey(name+"()", func() {
				path := dir()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}
	})

	Convey("File functions live under their directories", t, func() {
		So(filepath.Dir(Rules()), ShouldEqual, Config())
		So(filepath.Dir(History()), ShouldEqual, Config())
		So(filepath.Dir(Queries()), ShouldEqual, Cache())
	})

	Convey("PKS_CONFIG_PATH overrides the config directory", t, func() {
		t.Setenv(EnvConfigPath, "/custom/pks")
		So(Config(), ShouldEqual, "/custom/pks")
		So(Rules(), ShouldEqual, filepath.Join("/custom/pks", "rules.json"))
	})
}
