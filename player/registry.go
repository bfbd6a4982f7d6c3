package player

import (
	"fmt"
	"sync"

	"github.com/pk-services/pks/log"
	"github.com/samber/lo"
)

type entry struct {
	name string
	new  func() Player
}

var (
	registry   []entry
	registryMu sync.RWMutex
)

func init() {
	Register(Dummy, NewDummy)
	Register(MPV, NewMPV)
	Register(FFPlay, NewFFPlay)
	Register(VLC, NewVLC)
}

// Register adds a variant, or replaces the constructor of a known name
// without changing its probing position.
func Register(name string, constructor func() Player) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, i, ok := lo.FindIndexOf(registry, func(e entry) bool { return e.name == name }); ok {
		registry[i].new = constructor
		return
	}
	registry = append(registry, entry{name: name, new: constructor})
}

// List returns the registered names in registration order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return lo.Map(registry, func(e entry, _ int) string { return e.name })
}

// New constructs the variant registered under name.
func New(name string) (Player, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := lo.Find(registry, func(e entry) bool { return e.name == name })
	if !ok {
		return nil, fmt.Errorf("unknown player %q, expected one of %v", name, lo.Map(registry, func(e entry, _ int) string { return e.name }))
	}
	return e.new(), nil
}

// Get returns the named player. Without a name it returns the first
// installed program in registration order, or the dummy player.
// An unknown name also yields the dummy player.
func Get(name string) Player {
	if name != "" {
		p, err := New(name)
		if err != nil {
			log.Warn(err)
			return NewDummy()
		}
		return p
	}

	for _, n := range List() {
		if n == Dummy {
			continue
		}

		p, err := New(n)
		if err == nil && p.Check() {
			log.Infof("using player %s", n)
			return p
		}
	}

	log.Info("no player found, using dummy")
	return NewDummy()
}
