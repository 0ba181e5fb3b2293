// ABOUTME: Normalizer turns raw dataset rows into NormalizedRecords through a logical schema
// ABOUTME: Parse failures fall back to safe defaults and are recorded as warnings, never errors

package normalize

import (
	"time"

	"contractes-api/core/domain"
	"contractes-api/core/errors"
	"contractes-api/core/interfaces"
)

// Normalizer converts raw records using a resolved schema
type Normalizer struct {
	logger interfaces.Logger
}

// NewNormalizer creates a normalizer; a nil logger discards output
func NewNormalizer(logger interfaces.Logger) *Normalizer {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Normalizer{logger: logger}
}

// Records normalizes a batch in input order
func (n *Normalizer) Records(records []domain.Record, schema domain.LogicalSchema) []domain.NormalizedRecord {
	out := make([]domain.NormalizedRecord, len(records))
	warnings := 0
	for i, r := range records {
		out[i] = n.Record(r, schema)
		warnings += len(out[i].Warnings)
	}
	if warnings > 0 {
		n.logger.Debug("Normalized batch with parse warnings", map[string]interface{}{
			"records":  len(records),
			"warnings": warnings,
		})
	}
	return out
}

// Record normalizes a single raw record
func (n *Normalizer) Record(r domain.Record, schema domain.LogicalSchema) domain.NormalizedRecord {
	nr := domain.NormalizedRecord{Raw: r}

	text := func(role domain.Role) string {
		if field, ok := schema.Field(role); ok {
			return Text(r[field])
		}
		return ""
	}
	nr.Company = text(domain.RoleCompany)
	nr.CompanyID = text(domain.RoleCompanyID)
	nr.Title = text(domain.RoleTitle)
	nr.Buyer = text(domain.RoleBuyer)
	nr.Procedure = text(domain.RoleProcedure)

	if field, ok := schema.Field(domain.RoleLink); ok {
		nr.Link = Link(r[field])
	}

	nr.Amount = n.amount(r, schema, domain.RoleAmount, &nr.Warnings)
	nr.AmountNoVAT = n.amount(r, schema, domain.RoleAmountNoVAT, &nr.Warnings)
	nr.FormalizationDate = n.date(r, schema, domain.RoleFormalizationDate, &nr.Warnings)
	nr.AwardDate = n.date(r, schema, domain.RoleAwardDate, &nr.Warnings)

	return nr
}

func (n *Normalizer) amount(r domain.Record, schema domain.LogicalSchema, role domain.Role, warnings *[]errors.ParseWarning) float64 {
	field, ok := schema.Field(role)
	if !ok {
		return 0
	}
	raw, present := r[field]
	if !present || raw == nil {
		return 0
	}
	v, ok := Amount(raw)
	if !ok {
		*warnings = append(*warnings, errors.ParseWarning{
			Field:  field,
			Role:   string(role),
			Raw:    Text(raw),
			Reason: "unparsable amount, using 0",
		})
		return 0
	}
	return v
}

func (n *Normalizer) date(r domain.Record, schema domain.LogicalSchema, role domain.Role, warnings *[]errors.ParseWarning) *time.Time {
	field, ok := schema.Field(role)
	if !ok {
		return nil
	}
	raw, present := r[field]
	if !present || raw == nil {
		return nil
	}
	d := Date(raw)
	if d == nil {
		*warnings = append(*warnings, errors.ParseWarning{
			Field:  field,
			Role:   string(role),
			Raw:    Text(raw),
			Reason: "unparsable date, treated as absent",
		})
	}
	return d
}
