package icon

import (
	"testing"

	"github.com/pk-services/pks/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Every icon renders in every variant", t, func() {
		for _, variant := range AvailableVariants() {
			viper.Set(key.CliIcons, variant)
			for i := range icons {
				So(Get(i), ShouldNotBeEmpty)
			}
		}
	})

	Convey("An unknown variant renders nothing", t, func() {
		viper.Set(key.CliIcons, "kaomoji")
		defer viper.Set(key.CliIcons, plain)
		So(Get(Play), ShouldBeEmpty)
	})
}
