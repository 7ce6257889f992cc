// Package vfs is the read-only pretend file tree shared by the terminal and
// file browser apps.
package vfs

import (
	"errors"
	"path"
	"sort"
	"strings"
)

var (
	ErrNotExist = errors.New("no such file or directory")
	ErrNotDir   = errors.New("not a directory")
	ErrIsDir    = errors.New("is a directory")
)

// Node is a file or directory
type Node struct {
	Name     string
	Dir      bool
	Content  []byte
	children map[string]*Node
}

// Entry is one directory listing row
type Entry struct {
	Name string `json:"name"`
	Dir  bool   `json:"dir"`
	Size int    `json:"size"`
}

// FS is an immutable tree rooted at "/"
type FS struct {
	root *Node
	home string
}

// New creates an empty tree with the given home directory
func New(home string) *FS {
	return &FS{root: &Node{Name: "/", Dir: true, children: map[string]*Node{}}, home: home}
}

// Home returns the home directory
func (fs *FS) Home() string {
	return fs.home
}

// MkdirAll creates a directory and its parents
func (fs *FS) MkdirAll(p string) *Node {
	n := fs.root
	for _, part := range split(p) {
		child, ok := n.children[part]
		if !ok {
			child = &Node{Name: part, Dir: true, children: map[string]*Node{}}
			n.children[part] = child
		}
		n = child
	}
	return n
}

// WriteFile adds a file, creating parent directories
func (fs *FS) WriteFile(p string, content []byte) {
	dir, name := path.Split(path.Clean("/" + p))
	fs.MkdirAll(dir).children[name] = &Node{Name: name, Content: content}
}

// Resolve turns target into an absolute clean path relative to cwd. "~" is home.
func (fs *FS) Resolve(cwd, target string) string {
	switch {
	case target == "" || target == "~":
		return fs.home
	case strings.HasPrefix(target, "~/"):
		return path.Join(fs.home, target[2:])
	case strings.HasPrefix(target, "/"):
		return path.Clean(target)
	default:
		return path.Join(cwd, target)
	}
}

// Stat looks up a node by absolute path
func (fs *FS) Stat(p string) (*Node, error) {
	n := fs.root
	for _, part := range split(p) {
		if !n.Dir {
			return nil, ErrNotDir
		}
		child, ok := n.children[part]
		if !ok {
			return nil, ErrNotExist
		}
		n = child
	}
	return n, nil
}

// ReadDir lists a directory, directories first then by name
func (fs *FS) ReadDir(p string) ([]Entry, error) {
	n, err := fs.Stat(p)
	if err != nil {
		return nil, err
	}
	if !n.Dir {
		return nil, ErrNotDir
	}

	out := make([]Entry, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, Entry{Name: c.Name, Dir: c.Dir, Size: len(c.Content)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dir != out[j].Dir {
			return out[i].Dir
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// ReadFile returns a file's content
func (fs *FS) ReadFile(p string) ([]byte, error) {
	n, err := fs.Stat(p)
	if err != nil {
		return nil, err
	}
	if n.Dir {
		return nil, ErrIsDir
	}
	return n.Content, nil
}

// Walk visits every node under root in lexical order
func (fs *FS) Walk(root string, fn func(p string, n *Node)) error {
	n, err := fs.Stat(root)
	if err != nil {
		return err
	}
	walk(path.Clean("/"+root), n, fn)
	return nil
}

func walk(p string, n *Node, fn func(string, *Node)) {
	fn(p, n)
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		walk(path.Join(p, name), n.children[name], fn)
	}
}

func split(p string) []string {
	var parts []string
	for _, part := range strings.Split(path.Clean("/"+p), "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
