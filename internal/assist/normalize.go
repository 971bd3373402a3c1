package assist

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	fallbackSuggestions = "No suggestions available."
	fallbackPlan        = "No plan generated."
)

// Annotation is one advisory prioritization entry. Every field is optional;
// an entry with no identifying fields at all is still kept so the caller can
// display it generically. Annotations are never applied to stored plans.
type Annotation struct {
	ID       *string `json:"id,omitempty"`
	Title    *string `json:"title,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

// normalizeText passes advisory text through unchanged, substituting the
// fallback only for an empty-but-successful response.
func normalizeText(text, fallback string) string {
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

// normalizePrioritization parses the provider's loosely structured JSON into
// typed annotations. It accepts a {"prioritized": [...]} object or a bare
// array, with or without markdown code fences. Output that cannot be parsed
// as either shape at all degrades to an error; partial entries do not.
func normalizePrioritization(text string) ([]Annotation, error) {
	raw := stripCodeFences(text)
	if strings.TrimSpace(raw) == "" {
		return []Annotation{}, nil
	}

	var entries []json.RawMessage

	var wrapper struct {
		Prioritized []json.RawMessage `json:"prioritized"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err == nil {
		entries = wrapper.Prioritized
	} else if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("unparseable prioritization payload: %w", err)
	}

	out := make([]Annotation, 0, len(entries))
	for _, entry := range entries {
		var fields map[string]any
		if err := json.Unmarshal(entry, &fields); err != nil {
			// A non-object element carries nothing usable; keep the slot
			// so the count still reflects what the provider sent.
			out = append(out, Annotation{})
			continue
		}
		out = append(out, Annotation{
			ID:       optionalString(fields, "id"),
			Title:    optionalString(fields, "title"),
			Priority: optionalString(fields, "priority"),
			Reason:   optionalString(fields, "reason"),
		})
	}
	return out, nil
}

func optionalString(fields map[string]any, key string) *string {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// stripCodeFences unwraps ```json ... ``` style blocks some models emit
// even when asked for raw JSON.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
