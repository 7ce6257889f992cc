// Package terminal is a pretend shell over canned output and the shared file tree.
package terminal

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/webdesk/internal/apps/vfs"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

//go:embed commands.yaml
var builtinCommands []byte

const banner = "Linux Portfolio Terminal v1.0.0\nType \"help\" for available commands.\n"

// DefaultHistory bounds the scrollback
const DefaultHistory = 200

// Entry is one command and its output
type Entry struct {
	Command string `json:"command"`
	Output  string `json:"output"`
}

// View is the rendered terminal
type View struct {
	Prompt  string  `json:"prompt"`
	Cwd     string  `json:"cwd"`
	History []Entry `json:"history"`
}

// Options configures a terminal
type Options struct {
	User       string
	Host       string
	MaxHistory int
}

// Terminal is one terminal window
type Terminal struct {
	fs       *vfs.FS
	commands map[string]string
	opts     Options
	cwd      string
	history  []Entry
}

// LoadCommands parses the canned command table
func LoadCommands() (map[string]string, error) {
	var table map[string]string
	if err := yaml.Unmarshal(builtinCommands, &table); err != nil {
		return nil, fmt.Errorf("parse command table: %w", err)
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out, nil
}

// New creates a terminal in the home directory
func New(fs *vfs.FS, commands map[string]string, opts Options) *Terminal {
	if opts.User == "" {
		opts.User = "devops"
	}
	if opts.Host == "" {
		opts.Host = "portfolio"
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultHistory
	}
	return &Terminal{
		fs:       fs,
		commands: commands,
		opts:     opts,
		cwd:      fs.Home(),
		history:  []Entry{{Output: banner}},
	}
}

// Render mounts the current view
func (t *Terminal) Render(_ context.Context, c *registry.Container) error {
	history := make([]Entry, len(t.history))
	copy(history, t.history)
	c.Mount(View{Prompt: t.prompt(), Cwd: t.cwd, History: history})
	return nil
}

// HandleAction runs a command ("run" with a "command" argument) or clears the screen
func (t *Terminal) HandleAction(_ context.Context, a registry.Action) error {
	switch a.Name {
	case "run":
		t.Run(a.String("command"))
		return nil
	case "clear":
		t.history = nil
		return nil
	default:
		return fmt.Errorf("terminal: unknown action %q", a.Name)
	}
}

// Run executes one command line and records it
func (t *Terminal) Run(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	args := fields[1:]

	var out string
	switch name {
	case "clear":
		t.history = nil
		return
	case "pwd":
		out = t.cwd
	case "ls":
		out = t.ls(args)
	case "cd":
		out = t.cd(args)
	case "cd..":
		out = t.cd([]string{".."})
	case "cat":
		out = t.cat(args)
	case "find":
		out = t.find(args)
	case "history":
		out = t.listHistory()
	case "whoami":
		out = t.opts.User
	default:
		canned, ok := t.commands[strings.ToLower(line)]
		if !ok {
			canned = fmt.Sprintf("Command not found: %s\nType \"help\" for available commands.", line)
		}
		out = canned
	}
	t.record(Entry{Command: line, Output: out})
}

// Cwd returns the working directory
func (t *Terminal) Cwd() string {
	return t.cwd
}

// History returns a copy of the scrollback
func (t *Terminal) History() []Entry {
	return append([]Entry(nil), t.history...)
}

func (t *Terminal) prompt() string {
	return fmt.Sprintf("%s@%s:%s$", t.opts.User, t.opts.Host, t.cwd)
}

func (t *Terminal) record(e Entry) {
	t.history = append(t.history, e)
	if over := len(t.history) - t.opts.MaxHistory; over > 0 {
		t.history = t.history[over:]
	}
}

func (t *Terminal) ls(args []string) string {
	target := t.cwd
	if len(args) > 0 {
		target = t.fs.Resolve(t.cwd, args[0])
	}
	entries, err := t.fs.ReadDir(target)
	if err != nil {
		return fmt.Sprintf("ls: cannot access '%s': %v", target, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return strings.Join(names, "  ")
}

func (t *Terminal) cd(args []string) string {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	dest := t.fs.Resolve(t.cwd, target)
	n, err := t.fs.Stat(dest)
	if err != nil {
		return fmt.Sprintf("cd: %s: No such file or directory", target)
	}
	if !n.Dir {
		return fmt.Sprintf("cd: %s: Not a directory", target)
	}
	t.cwd = dest
	return ""
}

func (t *Terminal) cat(args []string) string {
	if len(args) == 0 {
		return "cat: missing operand"
	}
	var b strings.Builder
	for i, arg := range args {
		data, err := t.fs.ReadFile(t.fs.Resolve(t.cwd, arg))
		if err != nil {
			fmt.Fprintf(&b, "cat: %s: %v", arg, err)
		} else {
			b.WriteString(strings.TrimRight(string(data), "\n"))
		}
		if i < len(args)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// find matches a glob against paths relative to the working directory
func (t *Terminal) find(args []string) string {
	if len(args) == 0 {
		return "find: missing pattern"
	}
	pattern := args[0]
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Sprintf("find: invalid pattern '%s'", pattern)
	}

	var matches []string
	err := t.fs.Walk(t.cwd, func(p string, _ *vfs.Node) {
		rel := strings.TrimPrefix(strings.TrimPrefix(p, t.cwd), "/")
		if rel == "" {
			return
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			matches = append(matches, "./"+rel)
		}
	})
	if err != nil {
		return fmt.Sprintf("find: %v", err)
	}
	return strings.Join(matches, "\n")
}

func (t *Terminal) listHistory() string {
	var b strings.Builder
	n := 0
	for _, e := range t.history {
		if e.Command == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%5d  %s\n", n, e.Command)
	}
	return strings.TrimRight(b.String(), "\n")
}
