package project

import (
	"slices"
	"sync"
)

// Result summarizes what a generation run did. Steps record into it
// concurrently; read the fields only after Generate returns.
type Result struct {
	mu sync.Mutex

	CreatedDirs  []string // Folders that did not exist before.
	ExistingDirs []string // Folders that were left untouched.
	WrittenFiles []string // Files written, overwritten or appended.
	Warnings     []string // Non-fatal diagnostics.
	Installed    bool     // Whether the install step ran to completion.
}

func (r *Result) addDir(path string, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if created {
		r.CreatedDirs = append(r.CreatedDirs, path)
		return
	}
	r.ExistingDirs = append(r.ExistingDirs, path)
}

func (r *Result) addFile(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.WrittenFiles = append(r.WrittenFiles, path)
}

func (r *Result) addWarning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, msg)
}

func (r *Result) setInstalled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Installed = true
}

// sort orders the path lists; completion order is not deterministic.
func (r *Result) sort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	slices.Sort(r.CreatedDirs)
	slices.Sort(r.ExistingDirs)
	slices.Sort(r.WrittenFiles)
}
