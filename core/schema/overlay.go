// ABOUTME: YAML overlay loader adding extra exact aliases to the built-in table
// ABOUTME: Lets operators follow a dataset column rename without a rebuild

package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"contractes-api/core/domain"
)

// Overlay is the on-disk alias extension format:
//
//	aliases:
//	  company: [adjudicatari_nom]
//	  amount: [import_total_iva_inclos]
type Overlay struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// ParseOverlay decodes an overlay document and validates its role names
func ParseOverlay(data []byte) (map[domain.Role][]string, error) {
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing alias overlay: %w", err)
	}

	extra := make(map[domain.Role][]string, len(o.Aliases))
	for name, aliases := range o.Aliases {
		role, ok := domain.ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("alias overlay: unknown role %q", name)
		}
		extra[role] = aliases
	}
	return extra, nil
}

// LoadTable returns DefaultTable extended with the overlay at path.
// An empty path returns DefaultTable unchanged.
func LoadTable(path string) (Table, error) {
	table := DefaultTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias overlay: %w", err)
	}
	extra, err := ParseOverlay(data)
	if err != nil {
		return nil, err
	}
	return table.Prepend(extra), nil
}
