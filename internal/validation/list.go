package validation

import (
	"encoding/json"
	"strings"
)

// StringList accepts a JSON string, array of strings or null. Form bodies
// bind repeated keys into it directly.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = NormalizeList([]string{one})
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = NormalizeList(many)
	return nil
}

// NormalizeList trims every value, drops blanks and never returns nil.
func NormalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
