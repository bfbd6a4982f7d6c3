package config

import (
	"testing"

	"github.com/pk-services/pks/filesystem"
	"github.com/pk-services/pks/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.PlaylistBatch), ShouldEqual, 50)
			So(viper.GetString(key.NetworkTorAddress), ShouldEqual, "localhost:9150")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("network.tor_address"), ShouldEqual, "network_tor_address")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PlaylistBatch]

		Convey("Its environment variable is prefixed once", func() {
			So(field.Env(), ShouldEqual, "PKS_PLAYLIST_BATCH")
		})

		Convey("Its type is reported", func() {
			So(field.typeName(), ShouldEqual, "int")
			list := Default[key.ScrapeExt]
			So(list.typeName(), ShouldEqual, "[]string")
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("An unknown player is rejected", func() {
			viper.Set(key.PlayerDefault, "winamp")
			So(Validate(), ShouldNotBeNil)
			viper.Set(key.PlayerDefault, "")
			So(Validate(), ShouldBeNil)
		})

		Convey("A zero batch is rejected", func() {
			viper.Set(key.PlaylistBatch, 0)
			So(Validate(), ShouldNotBeNil)
			viper.Set(key.PlaylistBatch, 50)
		})

		Convey("Requests have no timeout unless one is set", func() {
			So(viper.GetInt(key.NetworkTimeout), ShouldEqual, 0)
			viper.Set(key.NetworkTimeout, -1)
			So(Validate(), ShouldNotBeNil)
			viper.Set(key.NetworkTimeout, 0)
			So(Validate(), ShouldBeNil)
		})

		Convey("A malformed tor address is rejected", func() {
			viper.Set(key.NetworkTorAddress, "localhost")
			So(Validate(), ShouldNotBeNil)
			viper.Set(key.NetworkTorAddress, "localhost:9150")
			So(Validate(), ShouldBeNil)
		})
	})
}
