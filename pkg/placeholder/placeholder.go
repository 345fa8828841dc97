package placeholder

import (
	"regexp"
	"strings"
)

// markerPattern matches ${{name[ type][:default]}}. The default is lazy,
// may span lines and stops at the first "}}".
var markerPattern = regexp.MustCompile(`\$\{\{([A-Za-z0-9_]+)(?:[ \t]+([A-Za-z0-9_]+))?[ \t]*(?::((?s:.*?)))?\}\}`)

// Placeholder is a single marker found in a template.
type Placeholder struct {
	// Name is the display form of the key, underscores rendered as spaces.
	Name string `json:"name" yaml:"name"`
	// Key is the identifier exactly as written in the marker.
	Key string `json:"key" yaml:"key"`
	// Type selects the editor used for the value. Empty when omitted.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Default is the raw text after the colon. Editors interpret it (for
	// example "items" splits it into options).
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	// Raw is the full marker text.
	Raw string `json:"raw" yaml:"raw"`
	// Offset is the byte offset of the marker in the template.
	Offset int `json:"offset" yaml:"offset"`
}

// Marker returns the marker text for the placeholder. The original text is
// returned when known so substituting it back reproduces the template.
func (p Placeholder) Marker() string {
	if p.Raw != "" {
		return p.Raw
	}
	key := p.Key
	if key == "" {
		key = KeyOf(p.Name)
	}
	var b strings.Builder
	b.WriteString("${{")
	b.WriteString(key)
	if p.Type != "" {
		b.WriteByte(' ')
		b.WriteString(p.Type)
	}
	if p.Default != "" {
		b.WriteByte(':')
		b.WriteString(p.Default)
	}
	b.WriteString("}}")
	return b.String()
}

// Value is the final value chosen for a placeholder name. Name accepts either
// the display form or the key form.
type Value struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// DisplayName converts a marker key into the name shown to users.
func DisplayName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// KeyOf converts a display name back into the marker key.
func KeyOf(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// Extract returns every placeholder in text in document order. Duplicated
// names are returned once per marker.
func Extract(text string) []Placeholder {
	if !strings.Contains(text, "${{") {
		return nil
	}
	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		key := text[m[2]:m[3]]
		p := Placeholder{
			Name:   DisplayName(key),
			Key:    key,
			Raw:    text[m[0]:m[1]],
			Offset: m[0],
		}
		if m[4] >= 0 {
			p.Type = text[m[4]:m[5]]
		}
		if m[6] >= 0 {
			p.Default = text[m[6]:m[7]]
		}
		out = append(out, p)
	}
	return out
}

// Contains reports whether text holds at least one marker for name.
func Contains(text, name string) bool {
	re := keyPattern(KeyOf(name))
	if re == nil {
		return false
	}
	return re.MatchString(text)
}

// Substitute replaces the markers of each value in turn, following the order
// of values rather than document order. Every marker site of a name is
// replaced; names missing from text leave it untouched. Values are inserted
// literally.
func Substitute(text string, values []Value) string {
	if len(values) == 0 || !strings.Contains(text, "${{") {
		return text
	}
	for _, v := range values {
		re := keyPattern(KeyOf(v.Name))
		if re == nil {
			continue
		}
		text = re.ReplaceAllLiteralString(text, v.Value)
		if !strings.Contains(text, "${{") {
			break
		}
	}
	return text
}

// Defaults pairs every placeholder with its raw default value.
func Defaults(placeholders []Placeholder) []Value {
	out := make([]Value, 0, len(placeholders))
	for _, p := range placeholders {
		out = append(out, Value{Name: p.Name, Value: p.Default})
	}
	return out
}

func keyPattern(key string) *regexp.Regexp {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	re, err := regexp.Compile(`\$\{\{` + regexp.QuoteMeta(key) + `(?:[ \t]+[A-Za-z0-9_]+)?[ \t]*(?::(?s:.*?))?\}\}`)
	if err != nil {
		return nil
	}
	return re
}
