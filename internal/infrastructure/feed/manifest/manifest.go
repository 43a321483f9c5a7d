// Package manifest loads the datapackage descriptor that sits next to each
// results dataset and resolves it into import settings.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/naming"
	"github.com/riskibarqy/futball/internal/infrastructure/feed/csvfeed"
	"github.com/riskibarqy/futball/internal/usecase"
)

// Candidate descriptor names, in lookup order.
var fileNames = []string{"datapackage.json", "datapackage.yaml", "datapackage.yml"}

var ErrInvalid = errors.New("invalid manifest")

type Manifest struct {
	Name      string     `json:"name" yaml:"name"`
	Title     string     `json:"title" yaml:"title"`
	Country   string     `json:"country" yaml:"country"`
	Resources []Resource `json:"resources" yaml:"resources"`

	// path is the file the manifest was read from.
	path string
}

type Resource struct {
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
	Format   string `json:"format" yaml:"format"`
	Encoding string `json:"encoding" yaml:"encoding"`
	Schema   Schema `json:"schema" yaml:"schema"`
}

type Schema struct {
	Fields []Field `json:"fields" yaml:"fields"`
}

type Field struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Format string `json:"format" yaml:"format"`
}

// Find returns the descriptor path inside dir, or path itself when it is a
// file.
func Find(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range fileNames {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no datapackage descriptor in %s: %w", path, fs.ErrNotExist)
}

// Load reads and validates a descriptor. path may be the dataset directory.
func Load(path string) (*Manifest, error) {
	file, err := Find(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", file, err)
	}

	m := &Manifest{path: file}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, m)
	default:
		err = sonic.Unmarshal(data, m)
	}
	if err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", file, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) Path() string {
	return m.path
}

func (m *Manifest) Validate() error {
	if len(m.Resources) == 0 {
		return fmt.Errorf("%w: %s has no resources", ErrInvalid, m.path)
	}
	for i, res := range m.Resources {
		if strings.TrimSpace(res.Path) == "" {
			return fmt.Errorf("%w: %s resource %d has no path", ErrInvalid, m.path, i)
		}
	}
	return nil
}

// CSVResource picks the first resource declared or named as CSV, falling
// back to the first resource.
func (m *Manifest) CSVResource() Resource {
	for _, res := range m.Resources {
		if strings.EqualFold(res.Format, "csv") || strings.EqualFold(filepath.Ext(res.Path), ".csv") {
			return res
		}
	}
	return m.Resources[0]
}

// ResourcePath resolves a resource path against the manifest directory.
func (m *Manifest) ResourcePath(res Resource) string {
	if filepath.IsAbs(res.Path) {
		return res.Path
	}
	return filepath.Join(filepath.Dir(m.path), filepath.FromSlash(res.Path))
}

func (r Resource) Field(name string) (Field, bool) {
	for _, f := range r.Schema.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// Dataset is a manifest resolved into the settings of one results import.
type Dataset struct {
	Competition string
	Country     string
	DateLayout  string
	CSVPath     string
	Encoding    string
}

// Dataset resolves the competition from the name slug first, then the
// title. The date layout comes from the Date field's strftime format.
func (m *Manifest) Dataset() (Dataset, error) {
	res := m.CSVResource()
	out := Dataset{
		Competition: naming.Clean(m.Title),
		Country:     naming.Clean(m.Country),
		CSVPath:     m.ResourcePath(res),
		Encoding:    res.Encoding,
	}

	for _, raw := range []string{m.Name, m.Title} {
		if league, ok := competition.LeagueBySlug(raw); ok {
			out.Competition = league.Title
			if out.Country == "" {
				out.Country = league.Country
			}
			break
		}
	}

	if field, ok := res.Field("Date"); ok && strings.TrimSpace(field.Format) != "" {
		layout, err := StrftimeLayout(field.Format)
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: %s Date field: %v", ErrInvalid, m.path, err)
		}
		out.DateLayout = layout
	}
	return out, nil
}

// ReadResults opens the dataset CSV decoded to UTF-8 and parses it.
func (d Dataset) ReadResults() ([]usecase.ResultRow, error) {
	f, err := os.Open(d.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.CSVPath, err)
	}
	defer f.Close()

	var r io.Reader = f
	r, err = csvfeed.DecodeReader(r, d.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.CSVPath, err)
	}
	rows, err := csvfeed.ReadResults(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.CSVPath, err)
	}
	return rows, nil
}
