package player

import "fmt"

// dummyPlayer never spawns anything. It stands in when no program is installed.
type dummyPlayer struct {
	options
}

func NewDummy() Player {
	return &dummyPlayer{}
}

func (*dummyPlayer) Name() string {
	return Dummy
}

func (d *dummyPlayer) Args(title, uri string) []string {
	return d.withOptions(title, uri)
}

func (*dummyPlayer) Play(title, uri string) (Process, error) {
	return dummyProcess{title: title, uri: uri}, nil
}

func (*dummyPlayer) Check() bool {
	return true
}

type dummyProcess struct {
	title, uri string
}

func (dummyProcess) Wait() error { return nil }

func (dummyProcess) Kill() error { return nil }

func (d dummyProcess) String() string {
	return fmt.Sprintf("dummy(title=%s, uri=%s)", d.title, d.uri)
}
