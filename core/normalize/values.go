package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"contractes-api/pkg/utils/parse"
	timeutil "contractes-api/pkg/utils/time"
)

// Amount parses a raw amount value; unparsable values yield 0 and false
func Amount(raw any) (float64, bool) {
	return parse.Amount(raw)
}

// Date parses a raw date value into a calendar date, or nil when absent or unparsable
func Date(raw any) *time.Time {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	d, ok := timeutil.ParseDate(s)
	if !ok {
		return nil
	}
	return &d
}

// Link extracts a plain URL from a link value.
// Structured values carry the URL in a "url" sub-field.
func Link(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if u, ok := v["url"].(string); ok {
			return strings.TrimSpace(u)
		}
	}
	return ""
}

// Text renders a raw value as display text
func Text(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any:
		return Link(v)
	}
	return ""
}
