// Package runner provides the registry of simulation modes and the loop that
// launches one simulator run per enabled mode.
package runner

import (
	"fmt"
	"sync"
)

// Mode is one simulator configuration that can be toggled from the command line.
type Mode struct {
	// Flag is the long flag name, also used as the mode key.
	Flag string
	// Short is the short flag alias.
	Short string
	// Label is the line printed to stdout before the run starts.
	Label string
	// Config is the ini section name passed to the simulator with -c.
	Config string
	// Default reports whether the mode runs when its flag is not given.
	Default     bool
	Description string
}

var (
	mu       sync.RWMutex
	registry = map[string]Mode{}
	order    []string
)

// Register adds a mode to the registry. Modes run in registration order.
// It panics if the flag name is already taken.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[m.Flag]; exists {
		panic(fmt.Sprintf("mode %s already registered", m.Flag))
	}
	registry[m.Flag] = m
	order = append(order, m.Flag)
}

// List returns all registered modes in dispatch order.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()
	list := make([]Mode, 0, len(order))
	for _, flag := range order {
		list = append(list, registry[flag])
	}
	return list
}
