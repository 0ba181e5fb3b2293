// ABOUTME: Safe SQL query builder for the SQLite snapshot cache
// ABOUTME: Enforces parameterization and validated identifiers for every statement

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"contractes-api/core/interfaces"
)

const tableName = "snapshots"

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	maxKeyLength    = 255
	// A 3000-row snapshot encodes to a few megabytes
	maxValueLength = 64 * 1024 * 1024
)

// QueryBuilder builds parameterized SQL statements
type QueryBuilder struct {
	query  string
	params []interface{}
	err    error
}

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{params: make([]interface{}, 0)}
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	return nil
}

func (qb *QueryBuilder) check(names ...string) bool {
	if qb.err != nil {
		return false
	}
	for _, n := range names {
		if err := validateName(n); err != nil {
			qb.err = err
			return false
		}
	}
	return true
}

// Select builds a SELECT query
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	if len(columns) == 0 {
		qb.err = errors.New("select needs at least one column")
		return qb
	}
	if qb.check(columns...) {
		qb.query = "SELECT " + strings.Join(columns, ", ") + " "
	}
	return qb
}

// From adds FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if qb.check(table) {
		qb.query += "FROM " + table + " "
	}
	return qb
}

// Where adds a parameterized condition, joined with AND to earlier ones
func (qb *QueryBuilder) Where(column, operator string, value interface{}) *QueryBuilder {
	if !qb.check(column) {
		return qb
	}
	switch operator {
	case "=", "!=", ">", "<", ">=", "<=":
	default:
		qb.err = fmt.Errorf("operator not allowed: %s", operator)
		return qb
	}

	if strings.Contains(qb.query, "WHERE") {
		qb.query += "AND "
	} else {
		qb.query += "WHERE "
	}
	qb.query += column + " " + operator + " ? "
	qb.params = append(qb.params, value)
	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	if qb.check(table) {
		qb.query = "INSERT OR REPLACE INTO " + table + " "
	}
	return qb
}

// Values adds VALUES clause
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) || len(columns) == 0 {
		qb.err = errors.New("columns and values must be non-empty and of equal length")
		return qb
	}
	if !qb.check(columns...) {
		return qb
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	qb.query += "(" + strings.Join(columns, ", ") + ") VALUES (" + placeholders + ")"
	qb.params = append(qb.params, values...)
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if qb.check(table) {
		qb.query = "DELETE FROM " + table + " "
	}
	return qb
}

// Build returns the built query and parameters
func (qb *QueryBuilder) Build() (string, []interface{}, error) {
	if qb.err != nil {
		return "", nil, qb.err
	}
	return strings.TrimSpace(qb.query), qb.params, nil
}

// ValidateKey rejects unusable cache keys and warns on suspicious ones
func ValidateKey(key string, logger interfaces.Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	// Parameterization makes these harmless; snapshot keys never contain them.
	for _, pattern := range []string{"--", "/*", ";", "'", "\"", "\\", "\n"} {
		if strings.Contains(key, pattern) && logger != nil {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
			break
		}
	}
	return nil
}

func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue rejects empty or oversized values
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}
	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}
	return nil
}

// getQuery selects a live entry by key
func getQuery(key string, now int64) (string, []interface{}, error) {
	return NewQueryBuilder().
		Select("value").
		From(tableName).
		Where("key", "=", key).
		Where("expiry", ">", now).
		Build()
}

// setQuery upserts an entry
func setQuery(key string, value []byte, expiry int64) (string, []interface{}, error) {
	return NewQueryBuilder().
		InsertOrReplace(tableName).
		Values([]string{"key", "value", "expiry"}, []interface{}{key, value, expiry}).
		Build()
}

// deleteQuery removes an entry by key
func deleteQuery(key string) (string, []interface{}, error) {
	return NewQueryBuilder().Delete(tableName).Where("key", "=", key).Build()
}

// cleanupQuery removes expired entries
func cleanupQuery(now int64) (string, []interface{}, error) {
	return NewQueryBuilder().Delete(tableName).Where("expiry", "<=", now).Build()
}
