package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage, so gathering and
// application can be tested without touching a real filesystem.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// errorPaths injects errors for specific paths
	errorPaths map[string]error
}

// fileNode represents a file or directory in memory
type fileNode struct {
	name    string
	mode    fs.FileMode
	modTime time.Time
	content []byte
	isDir   bool
}

// NewMemoryFS creates a new in-memory filesystem with a root directory.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: map[string]*fileNode{
			"/": {name: "/", mode: 0755 | fs.ModeDir, modTime: time.Now(), isDir: true},
		},
		errorPaths: make(map[string]error),
	}
}

// InjectError makes any operation on path fail with err.
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[filepath.Clean(path)] = err
}

func (m *MemoryFS) check(op, path string) (string, error) {
	path = filepath.Clean(path)
	if err, ok := m.errorPaths[path]; ok {
		return path, &fs.PathError{Op: op, Path: path, Err: err}
	}
	return path, nil
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path, err := m.check("stat", name)
	if err != nil {
		return nil, err
	}
	node, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return &fileInfo{node: node}, nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path, err := m.check("open", name)
	if err != nil {
		return nil, err
	}
	node, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrInvalid}
	}
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path, err := m.check("write", name)
	if err != nil {
		return err
	}
	parent, ok := m.files[filepath.Dir(path)]
	if !ok || !parent.isDir {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrNotExist}
	}
	content := make([]byte, len(data))
	copy(content, data)
	m.files[path] = &fileNode{
		name:    filepath.Base(path),
		mode:    perm,
		modTime: time.Now(),
		content: content,
	}
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path, err := m.check("mkdir", path)
	if err != nil {
		return err
	}
	for _, dir := range ancestors(path) {
		node, ok := m.files[dir]
		if ok {
			if !node.isDir {
				return &fs.PathError{Op: "mkdir", Path: dir, Err: fs.ErrExist}
			}
			continue
		}
		m.files[dir] = &fileNode{
			name:    filepath.Base(dir),
			mode:    perm | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}
	}
	return nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path, err := m.check("remove", name)
	if err != nil {
		return err
	}
	if _, ok := m.files[path]; !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(m.files, path)
	return nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path, err := m.check("readdir", name)
	if err != nil {
		return nil, err
	}
	node, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrInvalid}
	}

	var entries []fs.DirEntry
	for p, n := range m.files {
		if p != path && filepath.Dir(p) == path {
			entries = append(entries, &dirEntry{node: n})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// ancestors lists every directory from the root down to path itself.
func ancestors(path string) []string {
	var dirs []string
	for dir := filepath.Clean(path); ; dir = filepath.Dir(dir) {
		dirs = append(dirs, dir)
		if dir == filepath.Dir(dir) {
			break
		}
	}
	// Reverse so parents come before children
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}

// fileInfo adapts a fileNode to fs.FileInfo
type fileInfo struct {
	node *fileNode
}

func (f *fileInfo) Name() string       { return f.node.name }
func (f *fileInfo) Size() int64        { return int64(len(f.node.content)) }
func (f *fileInfo) Mode() fs.FileMode  { return f.node.mode }
func (f *fileInfo) ModTime() time.Time { return f.node.modTime }
func (f *fileInfo) IsDir() bool        { return f.node.isDir }
func (f *fileInfo) Sys() interface{}   { return nil }

// dirEntry adapts a fileNode to fs.DirEntry
type dirEntry struct {
	node *fileNode
}

func (d *dirEntry) Name() string { return d.node.name }
func (d *dirEntry) IsDir() bool  { return d.node.isDir }
func (d *dirEntry) Type() fs.FileMode {
	return d.node.mode.Type()
}
func (d *dirEntry) Info() (fs.FileInfo, error) { return &fileInfo{node: d.node}, nil }

// WriteTree populates the filesystem from a map of path to content,
// creating parent directories as needed. Paths must be absolute.
func (m *MemoryFS) WriteTree(files map[string]string) error {
	for path, content := range files {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		if err := m.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := m.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
