package artifact

import (
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// LabelEncoder is a bidirectional mapping between a closed set of category
// strings and integer codes. Classes are stored sorted, so codes follow
// lexicographic order regardless of the order passed to NewLabelEncoder —
// the same convention the serving application's encoders were fit with.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder fits an encoder over the given categories.
func NewLabelEncoder(classes []string) *LabelEncoder {
	sorted := make([]string, len(classes))
	for i, c := range classes {
		sorted[i] = norm.NFC.String(c)
	}
	sort.Strings(sorted)

	e := &LabelEncoder{
		classes: sorted,
		index:   make(map[string]int, len(sorted)),
	}
	for i, c := range sorted {
		e.index[c] = i
	}
	return e
}

// Transform maps a category string to its integer code. Input is NFC
// normalized first so visually identical Unicode spellings match.
func (e *LabelEncoder) Transform(s string) (int, error) {
	code, ok := e.index[norm.NFC.String(s)]
	if !ok {
		return 0, fmt.Errorf("encoder: unknown category %q", s)
	}
	return code, nil
}

// InverseTransform maps an integer code back to its category string.
func (e *LabelEncoder) InverseTransform(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("encoder: code %d out of range [0,%d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

// Classes returns the sorted category strings. The slice is a copy.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Len returns the number of categories.
func (e *LabelEncoder) Len() int { return len(e.classes) }

// HasClasses reports whether the encoder's category set equals the given
// set, ignoring order.
func (e *LabelEncoder) HasClasses(classes []string) bool {
	if len(classes) != len(e.classes) {
		return false
	}
	for _, c := range classes {
		if _, ok := e.index[norm.NFC.String(c)]; !ok {
			return false
		}
	}
	return true
}

type encoderWire struct {
	Classes []string `json:"classes"`
}

// MarshalJSON encodes the encoder as {"classes": [...]}.
func (e *LabelEncoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(encoderWire{Classes: e.classes})
}

// UnmarshalJSON rebuilds the code index from the stored class list.
func (e *LabelEncoder) UnmarshalJSON(data []byte) error {
	var w encoderWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("encoder: decode: %w", err)
	}
	if len(w.Classes) == 0 {
		return fmt.Errorf("encoder: no classes")
	}
	e.classes = w.Classes
	e.index = make(map[string]int, len(w.Classes))
	for i, c := range w.Classes {
		if _, dup := e.index[c]; dup {
			return fmt.Errorf("encoder: duplicate class %q", c)
		}
		e.index[c] = i
	}
	return nil
}
