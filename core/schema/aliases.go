// ABOUTME: Ordered alias table mapping logical roles to known physical column names
// ABOUTME: Exact aliases win over contains-rules; both are tried in declaration order

package schema

import (
	"strings"

	"contractes-api/core/domain"
)

// ContainsRule matches a field whose lower-cased name contains every
// substring in All and none of the substrings in None.
type ContainsRule struct {
	All  []string `yaml:"all"`
	None []string `yaml:"none"`
}

// Matches reports whether a lower-cased field name satisfies the rule
func (r ContainsRule) Matches(field string) bool {
	if len(r.All) == 0 {
		return false
	}
	for _, s := range r.All {
		if !strings.Contains(field, s) {
			return false
		}
	}
	for _, s := range r.None {
		if strings.Contains(field, s) {
			return false
		}
	}
	return true
}

// Aliases lists the known physical names for one role
type Aliases struct {
	Role     domain.Role
	Exact    []string
	Contains []ContainsRule
}

// Table is the alias table in role priority order
type Table []Aliases

// DefaultTable returns the built-in alias table.
// Each call returns a fresh copy that callers may extend.
func DefaultTable() Table {
	return Table{
		{
			Role:     domain.RoleCompany,
			Exact:    []string{"denominacio_adjudicatari", "adjudicatari", "nom_adjudicatari", "identificacio_adjudicatari"},
			Contains: []ContainsRule{{All: []string{"adjudicatari"}}},
		},
		{
			Role:     domain.RoleCompanyID,
			Exact:    []string{"identificacio_adjudicatari", "nif_adjudicatari", "cif_adjudicatari"},
			Contains: []ContainsRule{{All: []string{"nif"}}},
		},
		{
			Role:  domain.RoleAmount,
			Exact: []string{"import_adjudicacio_amb_iva", "import_adjudicaci_amb_iva", "import_amb_iva"},
			Contains: []ContainsRule{
				{All: []string{"import", "amb", "iva"}},
				{All: []string{"import", "iva"}, None: []string{"sense"}},
			},
		},
		{
			Role:     domain.RoleAmountNoVAT,
			Exact:    []string{"import_adjudicacio_sense_iva", "import_adjudicaci_sense_iva", "import_sense_iva"},
			Contains: []ContainsRule{{All: []string{"import", "sense"}}},
		},
		{
			Role:     domain.RoleFormalizationDate,
			Exact:    []string{"data_formalitzacio_contracte", "data_formalitzaci_del_contracte", "data_formalitzacio"},
			Contains: []ContainsRule{{All: []string{"data", "formalitz"}}},
		},
		{
			Role:     domain.RoleAwardDate,
			Exact:    []string{"data_adjudicacio_contracte", "data_adjudicaci_del_contracte", "data_adjudicacio"},
			Contains: []ContainsRule{{All: []string{"data", "adjudica"}}},
		},
		{
			Role:     domain.RoleTitle,
			Exact:    []string{"objecte_contracte", "objecte_del_contracte", "denominacio", "titol"},
			Contains: []ContainsRule{{All: []string{"objecte"}}},
		},
		{
			Role:  domain.RoleLink,
			Exact: []string{"enllac_publicacio", "enllac", "url_publicacio", "url"},
			Contains: []ContainsRule{
				{All: []string{"enlla"}},
				{All: []string{"url"}},
			},
		},
		{
			Role:     domain.RoleBuyer,
			Exact:    []string{"nom_organ", "organ_contractacio", "nom_ambit"},
			Contains: []ContainsRule{{All: []string{"organ"}}},
		},
		{
			Role:     domain.RoleProcedure,
			Exact:    []string{"procediment", "tipus_procediment"},
			Contains: []ContainsRule{{All: []string{"procediment"}}},
		},
	}
}

// Lookup returns the aliases declared for a role
func (t Table) Lookup(role domain.Role) (Aliases, bool) {
	for _, a := range t {
		if a.Role == role {
			return a, true
		}
	}
	return Aliases{}, false
}

// Prepend returns a copy of the table with extra exact aliases placed
// ahead of the existing ones for each role.
func (t Table) Prepend(extra map[domain.Role][]string) Table {
	out := make(Table, len(t))
	for i, a := range t {
		exact := make([]string, 0, len(extra[a.Role])+len(a.Exact))
		for _, name := range extra[a.Role] {
			exact = append(exact, strings.ToLower(strings.TrimSpace(name)))
		}
		exact = append(exact, a.Exact...)
		out[i] = Aliases{Role: a.Role, Exact: exact, Contains: a.Contains}
	}
	return out
}
