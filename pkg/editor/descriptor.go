package editor

import (
	"fmt"
	"strconv"
	"strings"
)

// Built-in kind identifiers. "string" and "items" are the kinds templates
// have always used; the others extend the same registry.
const (
	KindString = "string"
	KindItems  = "items"
	KindText   = "text"
	KindSecret = "secret"
	KindBool   = "bool"
)

// ItemSeparator splits the raw value of an "items" placeholder into options.
const ItemSeparator = "|"

// Descriptor is the toolkit independent description of an editor: what kind
// of input to present, the choices it offers and its initial value.
type Descriptor struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Default string   `json:"default" yaml:"default"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	Raw     string   `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// HasOptions reports whether the descriptor restricts values to Options.
func (d Descriptor) HasOptions() bool {
	return len(d.Options) > 0
}

// Validate checks value against the descriptor. Free text kinds accept any
// value.
func (d Descriptor) Validate(value string) error {
	switch d.Kind {
	case KindItems:
		for _, option := range d.Options {
			if option == value {
				return nil
			}
		}
		return fmt.Errorf("%w: %q is not one of %s", ErrInvalidValue, value, strings.Join(d.Options, ", "))
	case KindBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, value)
		}
		return nil
	default:
		return nil
	}
}

// Normalize returns the canonical form of value for the descriptor kind.
func (d Descriptor) Normalize(value string) string {
	if d.Kind == KindBool {
		if b, err := parseBool(value); err == nil {
			return strconv.FormatBool(b)
		}
	}
	return value
}

// Index returns the position of value in Options or -1.
func (d Descriptor) Index(value string) int {
	for i, option := range d.Options {
		if option == value {
			return i
		}
	}
	return -1
}

func newString(raw string) Descriptor {
	return Descriptor{Kind: KindString, Default: raw}
}

func newItems(raw string) Descriptor {
	options := strings.Split(raw, ItemSeparator)
	return Descriptor{Kind: KindItems, Default: options[0], Options: options}
}

func newText(raw string) Descriptor {
	return Descriptor{Kind: KindText, Default: strings.ReplaceAll(raw, `\n`, "\n")}
}

func newSecret(raw string) Descriptor {
	return Descriptor{Kind: KindSecret, Default: raw}
}

func newBool(raw string) Descriptor {
	b, err := parseBool(raw)
	if err != nil {
		b = false
	}
	return Descriptor{Kind: KindBool, Default: strconv.FormatBool(b), Options: []string{"true", "false"}}
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off", "":
		return false, nil
	default:
		return false, fmt.Errorf("editor: invalid boolean %q", raw)
	}
}
