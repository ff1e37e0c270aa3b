// Package command dispatches the text commands of the agent shell to
// registered handlers.
package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Handler is the function signature for command implementations. args holds
// exactly Command.Args values.
type Handler func(ctx context.Context, args []string) (Result, error)

// Result is the output of a command. IsError marks output that reports a
// handled failure, such as a missing key.
type Result struct {
	Output  string
	IsError bool
}

// Command describes a named shell command. The last of Args positional
// arguments absorbs the remainder of the line, so values may contain spaces.
type Command struct {
	Name        string
	Args        []string
	Description string
}

// Usage returns the one-line synopsis of c.
func (c Command) Usage() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		parts = append(parts, "<"+a+">")
	}
	return strings.Join(parts, " ")
}

type entry struct {
	command Command
	handler Handler
}

// Registry maps command names to handlers. Safe for concurrent use.
type Registry struct {
	entries map[string]entry
	mu      sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register adds a new command. Returns ErrAlreadyExists if the name is taken;
// use Replace to update an existing command.
func (r *Registry) Register(cmd Command, handler Handler) error {
	if cmd.Name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[cmd.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, cmd.Name)
	}

	r.entries[cmd.Name] = entry{command: cmd, handler: handler}
	return nil
}

// Replace updates an existing command's definition and handler.
func (r *Registry) Replace(cmd Command, handler Handler) error {
	if cmd.Name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[cmd.Name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, cmd.Name)
	}

	r.entries[cmd.Name] = entry{command: cmd, handler: handler}
	return nil
}

// Get retrieves a handler by command name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entries[name]
	if !exists {
		return nil, false
	}
	return e.handler, true
}

// List returns all command definitions sorted by name.
func (r *Registry) List() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]Command, 0, len(r.entries))
	for _, e := range r.entries {
		cmds = append(cmds, e.command)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name < cmds[j].Name
	})
	return cmds
}

// Execute parses line, looks up the named command, and runs its handler.
// Returns ErrNotFound for unknown commands and ErrUsage when the line holds
// too few arguments. Handler errors are wrapped with the command name.
func (r *Registry) Execute(ctx context.Context, line string) (Result, error) {
	name, rest := splitWord(strings.TrimSpace(line))
	if name == "" {
		return Result{}, ErrEmptyLine
	}

	r.mu.RLock()
	e, exists := r.entries[name]
	r.mu.RUnlock()

	if !exists {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	args, ok := splitArgs(rest, len(e.command.Args))
	if !ok {
		return Result{}, fmt.Errorf("%w: usage: %s", ErrUsage, e.command.Usage())
	}

	result, err := e.handler(ctx, args)
	if err != nil {
		return Result{}, fmt.Errorf("command %s failed: %w", name, err)
	}

	return result, nil
}

// splitArgs splits s into n arguments; the last keeps the remainder of s.
func splitArgs(s string, n int) ([]string, bool) {
	if n == 0 {
		return nil, s == ""
	}

	args := make([]string, 0, n)
	for i := 0; i < n-1; i++ {
		var word string
		word, s = splitWord(s)
		if word == "" {
			return nil, false
		}
		args = append(args, word)
	}

	if s == "" {
		return nil, false
	}
	return append(args, s), true
}

func splitWord(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}
