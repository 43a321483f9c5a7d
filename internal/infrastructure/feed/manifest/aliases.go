package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/infrastructure/feed/csvfeed"
)

// aliasFile is the YAML form of a name map:
//
//	aliases:
//	  English Premier League: Premier League
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases reads a name map from a YAML file (by extension) or a CSV file.
// YAML rows are returned sorted by external name.
func LoadAliases(path string) ([]alias.Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		return csvfeed.ReadAliasFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file %s: %w", path, err)
	}
	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode alias file %s: %w", path, err)
	}

	rows := make([]alias.Row, 0, len(file.Aliases))
	for external, canonical := range file.Aliases {
		rows = append(rows, alias.Row{External: external, Canonical: canonical})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].External < rows[j].External })
	return rows, nil
}
