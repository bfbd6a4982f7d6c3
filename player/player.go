// Package player starts external media player programs.
// Each supported program is a registered variant that knows its command line
// and how to probe whether it is installed.
package player

import (
	"github.com/pk-services/pks/key"
	"github.com/spf13/viper"
)

// Player builds and runs the command line of one player program.
type Player interface {
	Name() string

	// Play starts the program on uri. The caller waits on the returned process.
	Play(title, uri string) (Process, error)

	// Check reports whether the program is installed and responds.
	Check() bool

	// Args returns the arguments Play would pass, options first.
	Args(title, uri string) []string

	AddOptions(options ...string)
	ClearOptions()
	Options() []string
}

// Process is a started player.
type Process interface {
	Wait() error
	Kill() error
	String() string
}

type options struct {
	list []string
}

func (o *options) AddOptions(opts ...string) {
	o.list = append(o.list, opts...)
}

func (o *options) ClearOptions() {
	o.list = nil
}

func (o *options) Options() []string {
	return append([]string(nil), o.list...)
}

// withOptions inserts the options right after the program name.
func (o *options) withOptions(args ...string) []string {
	return append(o.Options(), args...)
}

func console() bool {
	return viper.GetBool(key.PlayerConsole)
}
