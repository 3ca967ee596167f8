// Package mood holds the catalog of moods and the tasks suggested for each.
package mood

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

const DefaultSuggestions = 5

var ErrUnknownMood = errors.New("unknown mood")

type Category struct {
	Name  string   `yaml:"name"`
	Tasks []string `yaml:"tasks"`
}

type Mood struct {
	Name       string     `yaml:"name"`
	Emoji      string     `yaml:"emoji"`
	Reaction   string     `yaml:"reaction"`
	Categories []Category `yaml:"categories"`
}

// Title is the display form of the mood name, e.g. "Happy".
func (m Mood) Title() string {
	if m.Name == "" {
		return ""
	}
	return strings.ToUpper(m.Name[:1]) + m.Name[1:]
}

// Label is the title followed by the emoji.
func (m Mood) Label() string {
	if m.Emoji == "" {
		return m.Title()
	}
	return m.Title() + " " + m.Emoji
}

func (m Mood) Category(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range m.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Tasks returns every task of the mood across categories.
func (m Mood) Tasks() []string {
	var all []string
	for _, c := range m.Categories {
		all = append(all, c.Tasks...)
	}
	return all
}

type Catalog struct {
	moods []Mood
	index map[string]int

	mu  sync.Mutex
	rng *rand.Rand
}

type catalogFile struct {
	Moods []Mood `yaml:"moods"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(builtinCatalog)
	if err != nil {
		panic(fmt.Sprintf("mood: built-in catalog: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mood catalog: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mood catalog: %w", err)
	}
	if len(f.Moods) == 0 {
		return nil, errors.New("mood catalog has no moods")
	}

	c := &Catalog{
		index: make(map[string]int, len(f.Moods)),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, m := range f.Moods {
		m.Name = strings.ToLower(strings.TrimSpace(m.Name))
		if m.Name == "" {
			return nil, errors.New("mood catalog: mood without a name")
		}
		if _, dup := c.index[m.Name]; dup {
			return nil, fmt.Errorf("mood catalog: duplicate mood %q", m.Name)
		}
		for i := range m.Categories {
			m.Categories[i].Name = strings.ToLower(strings.TrimSpace(m.Categories[i].Name))
		}
		if len(m.Tasks()) == 0 {
			return nil, fmt.Errorf("mood catalog: %q has no tasks", m.Name)
		}
		c.index[m.Name] = len(c.moods)
		c.moods = append(c.moods, m)
	}
	return c, nil
}

// WithSeed makes suggestion sampling deterministic.
func (c *Catalog) WithSeed(seed uint64) *Catalog {
	c.mu.Lock()
	c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	c.mu.Unlock()
	return c
}

// Names lists mood names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.moods))
	for i, m := range c.moods {
		names[i] = m.Name
	}
	return names
}

func (c *Catalog) Moods() []Mood {
	return append([]Mood(nil), c.moods...)
}

// Lookup finds a mood by name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (Mood, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Mood{}, false
	}
	return c.moods[i], true
}

func (c *Catalog) mustLookup(name string) (Mood, error) {
	m, ok := c.Lookup(name)
	if !ok {
		return Mood{}, fmt.Errorf("%w %q (try one of: %s)", ErrUnknownMood, name, strings.Join(c.Names(), ", "))
	}
	return m, nil
}

// Suggest returns up to n distinct random tasks for mood. A known category
// narrows the pool to that category; otherwise all categories are used.
func (c *Catalog) Suggest(mood, category string, n int) ([]string, error) {
	m, err := c.mustLookup(mood)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultSuggestions
	}
	pool := m.Tasks()
	if cat, ok := m.Category(category); ok && len(cat.Tasks) > 0 {
		pool = append([]string(nil), cat.Tasks...)
	}

	c.mu.Lock()
	c.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	c.mu.Unlock()

	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n], nil
}

// Random picks one task from any category of mood.
func (c *Catalog) Random(mood string) (string, error) {
	tasks, err := c.Suggest(mood, "", 1)
	if err != nil {
		return "", err
	}
	return tasks[0], nil
}
