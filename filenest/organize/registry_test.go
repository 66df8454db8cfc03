package organize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rizirfan/FileNest/filenest/config"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	table := make(map[string][]string)
	for _, cat := range config.DefaultCategories() {
		table[cat.Name] = cat.Extensions
	}
	return NewRegistry(table)
}

func TestRegistry_CategoryFor(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		filename string
		category string
	}{
		{"photo.jpg", "Images"},
		{"photo.JPG", "Images"},
		{"report.pdf", "Documents"},
		{"notes.md", "Documents"},
		{"song.mp3", "Audio"},
		{"clip.mkv", "Videos"},
		{"bundle.tar", "Archives"},
		{"main.go", "Code"},
		{"setup.exe", "Executables"},
		{"data.xyz", CategoryOthers},
		{"README", CategoryOthers},
		{"archive.tar.gz", "Archives"}, // final extension decides
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, r.CategoryFor(tt.filename), "filename %q", tt.filename)
	}
}

func TestRegistry_CategoryFor_DotFiles(t *testing.T) {
	r := testRegistry(t)

	// A leading-dot name has no extension, only a stem.
	assert.Equal(t, CategoryOthers, r.CategoryFor(".bashrc"))
	assert.Equal(t, CategoryOthers, r.CategoryFor(".gitignore"))

	// But a dotfile with a real extension is classified normally.
	assert.Equal(t, "Images", r.CategoryFor(".hidden.png"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := testRegistry(t)

	assert.Equal(t, r.CategoryFor("a.pdf"), r.CategoryFor("a.PDF"))
	assert.Equal(t, r.CategoryFor("a.pdf"), r.CategoryFor("a.Pdf"))
}

func TestNewRegistry_NormalizesExtensions(t *testing.T) {
	r := NewRegistry(map[string][]string{
		"Stuff": {"TXT", ".Log", " md "},
	})

	assert.Equal(t, "Stuff", r.CategoryFor("a.txt"))
	assert.Equal(t, "Stuff", r.CategoryFor("a.log"))
	assert.Equal(t, "Stuff", r.CategoryFor("a.md"))
}

func TestNewRegistry_DuplicateExtensionIsDeterministic(t *testing.T) {
	r := NewRegistry(map[string][]string{
		"Beta":  {".dup"},
		"Alpha": {".dup"},
	})

	// Lexicographically first category wins regardless of map order.
	assert.Equal(t, "Alpha", r.CategoryFor("x.dup"))
}

func TestRegistry_CategoriesSortedAndImmutable(t *testing.T) {
	r := testRegistry(t)

	cats := r.Categories()
	require.NotEmpty(t, cats)
	for i := 1; i < len(cats); i++ {
		assert.Less(t, cats[i-1].Name, cats[i].Name)
	}

	cats[0].Name = "mutated"
	assert.NotEqual(t, "mutated", r.Categories()[0].Name)
}
