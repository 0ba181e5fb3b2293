// ABOUTME: Logical roles and the schema mapping them to physical dataset columns
// ABOUTME: Gives the rest of the engine stable names regardless of remote column drift

package domain

import "sort"

// Role is a stable semantic slot in a contract record
type Role string

const (
	// RoleCompany is the awarded company name
	RoleCompany Role = "company"

	// RoleCompanyID is the awarded company tax identifier
	RoleCompanyID Role = "company_id"

	// RoleAmount is the award amount including VAT
	RoleAmount Role = "amount"

	// RoleAmountNoVAT is the award amount excluding VAT
	RoleAmountNoVAT Role = "amount_no_vat"

	// RoleFormalizationDate is the date the contract was formalized
	RoleFormalizationDate Role = "formalization_date"

	// RoleAwardDate is the date the contract was awarded
	RoleAwardDate Role = "award_date"

	// RoleTitle is the contract object or title
	RoleTitle Role = "title"

	// RoleLink is the publication link
	RoleLink Role = "link"

	// RoleBuyer is the contracting body
	RoleBuyer Role = "buyer"

	// RoleProcedure is the award procedure type
	RoleProcedure Role = "procedure"
)

// AllRoles lists every role in resolution priority order.
// Roles earlier in the list claim ambiguous columns first.
var AllRoles = []Role{
	RoleCompany,
	RoleCompanyID,
	RoleAmount,
	RoleAmountNoVAT,
	RoleFormalizationDate,
	RoleAwardDate,
	RoleTitle,
	RoleLink,
	RoleBuyer,
	RoleProcedure,
}

// ParseRole converts a role name into a Role
func ParseRole(name string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == name {
			return r, true
		}
	}
	return "", false
}

// LogicalSchema maps logical roles to the physical field currently fulfilling them.
// Roles that could not be resolved are absent from the map.
type LogicalSchema map[Role]string

// Field returns the physical field for a role and whether it was resolved
func (s LogicalSchema) Field(role Role) (string, bool) {
	field, ok := s[role]
	return field, ok && field != ""
}

// Has reports whether a role is resolved
func (s LogicalSchema) Has(role Role) bool {
	_, ok := s.Field(role)
	return ok
}

// Missing returns the given roles that are not resolved, in the given order
func (s LogicalSchema) Missing(roles ...Role) []Role {
	var missing []Role
	for _, r := range roles {
		if !s.Has(r) {
			missing = append(missing, r)
		}
	}
	return missing
}

// AmountRole is the amount to total: with VAT when resolved, otherwise
// without VAT when that is resolved
func (s LogicalSchema) AmountRole() Role {
	if !s.Has(RoleAmount) && s.Has(RoleAmountNoVAT) {
		return RoleAmountNoVAT
	}
	return RoleAmount
}

// Roles returns the resolved roles sorted by name
func (s LogicalSchema) Roles() []Role {
	roles := make([]Role, 0, len(s))
	for r := range s {
		if s.Has(r) {
			roles = append(roles, r)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
