package commands

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Words the shell handles itself before consulting the registry.
const (
	builtinOverwrite = "overwrite"
	builtinReload    = "reload"
	builtinAutosave  = "autosave"
)

var quitWords = []string{"quit", "exit", "q"}

// reserved reports whether the shell would swallow name before a command
// registered under it could run.
func reserved(name string) bool {
	switch name {
	case builtinOverwrite, builtinReload, builtinAutosave:
		return true
	}
	return slices.Contains(quitWords, name)
}

// Registry maps command names and aliases to commands. One namespace serves
// both the CLI and the shell.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command // name and aliases map to command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register adds c under its name and aliases. Nothing is added when any of
// them is blank, already taken, repeated, or a shell builtin.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for i, key := range keys {
		kind := "command"
		if i > 0 {
			kind = "command alias"
		}
		switch {
		case strings.TrimSpace(key) == "" || strings.ContainsAny(key, " \t"):
			return fmt.Errorf("%s %q: names must be single words", kind, key)
		case reserved(key):
			return fmt.Errorf("%s reserved by the shell: %s", kind, key)
		case slices.Contains(keys[:i], key):
			return fmt.Errorf("%s listed twice: %s", kind, key)
		}
		if _, exists := r.cmds[key]; exists {
			return fmt.Errorf("%s already registered: %s", kind, key)
		}
	}

	for _, key := range keys {
		r.cmds[key] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns each command once, ordered by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Command
	for key, cmd := range r.cmds {
		if key == cmd.Name() {
			result = append(result, cmd)
		}
	}
	slices.SortFunc(result, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// DefaultRegistry holds every command registered from init.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a clash, which can only
// be a programming error.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
