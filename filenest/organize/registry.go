package organize

import (
	"path/filepath"
	"sort"
	"strings"
)

// CategoryOthers is the fallback category for unmatched extensions.
const CategoryOthers = "Others"

// CategoryRoot labels moves whose destination is the watch directory
// root rather than a category folder, e.g. unprotect restores.
const CategoryRoot = "(root)"

// Category is one immutable row of the category table.
type Category struct {
	Name       string
	Extensions []string
}

// Registry maps file extensions to category names. It is built once from
// a configuration table and never mutated; a changed table means building
// a new registry.
type Registry struct {
	categories []Category
	index      map[string]string // lowercase extension -> category name
}

// NewRegistry builds a registry from a category table. Extensions are
// normalized to lowercase with a leading dot. The shipped table keeps
// extensions disjoint across categories; if a table maps one extension
// twice the lexicographically first category wins, deterministically.
func NewRegistry(table map[string][]string) *Registry {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	r := &Registry{
		categories: make([]Category, 0, len(table)),
		index:      make(map[string]string),
	}

	for _, name := range names {
		exts := make([]string, 0, len(table[name]))
		for _, ext := range table[name] {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts = append(exts, ext)
			if _, exists := r.index[ext]; !exists {
				r.index[ext] = name
			}
		}
		r.categories = append(r.categories, Category{Name: name, Extensions: exts})
	}

	return r
}

// CategoryFor returns the category name for a filename based on its final
// extension, or CategoryOthers when nothing matches. Pure and total.
func (r *Registry) CategoryFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	// A leading-dot name like ".bashrc" has no extension, only a stem.
	if ext == "" || ext == strings.ToLower(filepath.Base(filename)) {
		return CategoryOthers
	}
	if name, ok := r.index[ext]; ok {
		return name
	}
	return CategoryOthers
}

// Categories returns the category table in deterministic (sorted) order.
// The returned slice is a copy; the registry stays immutable.
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Names returns the category names in deterministic order, without the
// implicit Others bucket.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.categories))
	for _, c := range r.categories {
		names = append(names, c.Name)
	}
	return names
}
