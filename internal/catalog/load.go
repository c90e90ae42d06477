package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// ConflictMarker appears in the name of category files set aside by an
// import. Such files are never loaded.
const ConflictMarker = ".conflict-"

// Option configures loading.
type Option func(*loader)

// WithLogger sets the logger used to report skipped entries.
func WithLogger(l *slog.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

type loader struct {
	logger *slog.Logger
}

func newLoader(opts []Option) *loader {
	ld := &loader{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load returns the catalog stored in dir, or the built-in catalog when dir
// is empty. A nil order falls back to DefaultOrder.
func Load(dir string, order []string, opts ...Option) (*Catalog, error) {
	if order == nil {
		order = DefaultOrder
	}
	var (
		cats []Category
		err  error
	)
	if dir == "" {
		cats, err = loadDefaults(opts)
	} else {
		cats, err = LoadDir(dir, opts...)
	}
	if err != nil {
		return nil, err
	}
	return New(cats, order)
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load("", DefaultOrder)
}

func loadDefaults(opts []Option) ([]Category, error) {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, opts...)
}

// LoadDir reads every category file in dir. Subdirectories are ignored.
func LoadDir(dir string, opts ...Option) ([]Category, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot stat catalog directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path is not a directory: %s", dir)
	}
	return LoadFS(os.DirFS(dir), opts...)
}

// LoadFS reads every *.yaml and *.yml file at the root of fsys, in file name
// order.
func LoadFS(fsys fs.FS, opts ...Option) ([]Category, error) {
	ld := newLoader(opts)
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog: %w", err)
	}

	var out []Category
	for _, e := range entries {
		if e.IsDir() || !IsCategoryFile(e.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", e.Name(), err)
		}
		cats, err := ld.parse(e.Name(), data)
		if err != nil {
			return nil, err
		}
		out = append(out, cats...)
	}
	return out, nil
}

// IsCategoryFile reports whether name looks like a loadable category file.
func IsCategoryFile(name string) bool {
	if strings.Contains(name, ConflictMarker) || strings.HasPrefix(name, ".") {
		return false
	}
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Parse decodes one category file. name is only used in messages.
func Parse(name string, data []byte, opts ...Option) ([]Category, error) {
	return newLoader(opts).parse(name, data)
}

type rawCategory struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Description   string    `yaml:"description"`
	ProcedureLink string    `yaml:"procedure_link"`
	Icon          string    `yaml:"icon"`
	Color         string    `yaml:"color"`
	Tags          []string  `yaml:"tags"`
	Apps          yaml.Node `yaml:"apps"`
}

type rawFile struct {
	Categories  []rawCategory `yaml:"categories"`
	rawCategory `yaml:",inline"`
}

func (ld *loader) parse(name string, data []byte) ([]Category, error) {
	var f rawFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", name, err)
	}

	raws := f.Categories
	if len(raws) == 0 {
		if f.ID == "" && f.Name == "" && f.Apps.Kind == 0 {
			return nil, nil
		}
		raws = []rawCategory{f.rawCategory}
	}

	out := make([]Category, 0, len(raws))
	for _, r := range raws {
		if r.ID == "" {
			ld.logger.Warn("skipping category without id", "file", name, "name", r.Name)
			continue
		}
		c := Category{
			ID:            r.ID,
			Name:          r.Name,
			Description:   r.Description,
			ProcedureLink: r.ProcedureLink,
			Icon:          r.Icon,
			Color:         r.Color,
			Tags:          r.Tags,
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		c.Apps, c.HasApps = ld.decodeApps(name, c.ID, &r.Apps)
		out = append(out, c)
	}
	return out, nil
}

// decodeApps tolerates a missing or malformed apps value: the category is
// kept but reports no apps.
func (ld *loader) decodeApps(file, categoryID string, node *yaml.Node) ([]App, bool) {
	if node.Kind != yaml.SequenceNode {
		if node.Kind != 0 {
			ld.logger.Warn("apps is not a list", "file", file, "category", categoryID)
		}
		return nil, false
	}

	apps := make([]App, 0, len(node.Content))
	seen := make(map[string]bool, len(node.Content))
	for _, n := range node.Content {
		var a App
		if err := n.Decode(&a); err != nil {
			ld.logger.Warn("skipping malformed app", "file", file, "category", categoryID, "line", n.Line, "err", err)
			continue
		}
		if a.ID == "" {
			ld.logger.Warn("skipping app without id", "file", file, "category", categoryID, "line", n.Line)
			continue
		}
		if seen[a.ID] {
			ld.logger.Warn("skipping duplicate app", "file", file, "category", categoryID, "app", a.ID)
			continue
		}
		seen[a.ID] = true
		if a.Name == "" {
			a.Name = a.ID
		}
		apps = append(apps, a)
	}
	return apps, true
}

// Marshal encodes a category in the file format read by Parse.
func Marshal(c Category) ([]byte, error) {
	doc := struct {
		ID            string   `yaml:"id"`
		Name          string   `yaml:"name"`
		Description   string   `yaml:"description,omitempty"`
		ProcedureLink string   `yaml:"procedure_link,omitempty"`
		Icon          string   `yaml:"icon,omitempty"`
		Color         string   `yaml:"color,omitempty"`
		Tags          []string `yaml:"tags,omitempty"`
		Apps          []App    `yaml:"apps"`
	}{c.ID, c.Name, c.Description, c.ProcedureLink, c.Icon, c.Color, c.Tags, c.Apps}
	if doc.Apps == nil {
		doc.Apps = []App{}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal category %s: %w", c.ID, err)
	}
	return data, nil
}
