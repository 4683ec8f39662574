package changelog

// Category is a Conventional Commits type, or CategoryOther for subjects that
// do not follow the convention.
type Category string

const (
	CategoryFeat     Category = "feat"
	CategoryFix      Category = "fix"
	CategoryDocs     Category = "docs"
	CategoryRefactor Category = "refactor"
	CategoryPerf     Category = "perf"
	CategoryChore    Category = "chore"
	CategoryBuild    Category = "build"
	CategoryCI       Category = "ci"
	CategoryStyle    Category = "style"
	CategoryTest     Category = "test"
	CategoryRevert   Category = "revert"
	CategoryOther    Category = "other"
)

// Commit is one line of log output split into its short hash and subject.
type Commit struct {
	ShortID string
	Subject string
}

// Entry is a classified commit. Detail is the description with the type and
// scope prefix removed, or the whole subject for CategoryOther.
type Entry struct {
	Category Category
	Detail   string
	ShortID  string
}

// Groups holds classified entries per category.
// Entries keep insertion order within a category, and categories remember the
// order in which they were first seen.
type Groups struct {
	order   []Category
	entries map[Category][]Entry
}

// NewGroups returns an empty Groups.
func NewGroups() *Groups {
	return &Groups{entries: make(map[Category][]Entry)}
}

// Add appends an entry to its category.
func (g *Groups) Add(e Entry) {
	if g.entries == nil {
		g.entries = make(map[Category][]Entry)
	}
	if _, ok := g.entries[e.Category]; !ok {
		g.order = append(g.order, e.Category)
	}
	g.entries[e.Category] = append(g.entries[e.Category], e)
}

// Get returns the entries recorded for a category, in insertion order.
func (g *Groups) Get(c Category) []Entry {
	if g == nil {
		return nil
	}
	return g.entries[c]
}

// Categories returns the categories in discovery order.
func (g *Groups) Categories() []Category {
	if g == nil {
		return nil
	}
	out := make([]Category, len(g.order))
	copy(out, g.order)
	return out
}

// Count returns the total number of entries across all categories.
func (g *Groups) Count() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, entries := range g.entries {
		n += len(entries)
	}
	return n
}

// IsEmpty returns true if no entries have been added.
func (g *Groups) IsEmpty() bool {
	return g.Count() == 0
}

// RenderOrder returns the categories in the order release notes list them.
func RenderOrder() []Category {
	return []Category{
		CategoryFeat,
		CategoryFix,
		CategoryPerf,
		CategoryRefactor,
		CategoryDocs,
		CategoryChore,
		CategoryBuild,
		CategoryCI,
		CategoryStyle,
		CategoryTest,
		CategoryRevert,
		CategoryOther,
	}
}

// categoryLabels are the section headings used in rendered notes.
var categoryLabels = map[Category]string{
	CategoryFeat:     "✨ Features",
	CategoryFix:      "🐛 Bug Fixes",
	CategoryPerf:     "⚡ Performance",
	CategoryRefactor: "🔧 Refactoring",
	CategoryDocs:     "📚 Documentation",
	CategoryChore:    "🧹 Chores",
	CategoryBuild:    "🏗️ Build",
	CategoryCI:       "🤖 CI/CD",
	CategoryStyle:    "💄 Style",
	CategoryTest:     "✅ Tests",
	CategoryRevert:   "⏮️ Reverts",
	CategoryOther:    "Other",
}

// Label returns the section heading for a category. Unknown categories are
// returned as-is.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
