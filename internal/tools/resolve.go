package tools

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Resolver locates a tool: the project's node_modules/.bin first, then PATH,
// then npx.
type Resolver struct {
	Root     string
	LookPath func(file string) (string, error)
}

// NewResolver returns a Resolver backed by exec.LookPath.
func NewResolver(root string) *Resolver {
	return &Resolver{Root: root, LookPath: exec.LookPath}
}

// Resolve returns the argv prefix for tool. npxArgs are appended after "npx"
// when falling back to npx.
func (r *Resolver) Resolve(tool string, npxArgs ...string) ([]string, error) {
	local := filepath.Join(r.Root, "node_modules", ".bin", tool)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return []string{local}, nil
	}

	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if path, err := lookPath(tool); err == nil {
		return []string{path}, nil
	}
	if npx, err := lookPath("npx"); err == nil {
		return append([]string{npx}, npxArgs...), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrToolNotFound, tool)
}
