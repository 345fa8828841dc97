package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreate_Items(t *testing.T) {
	reg := NewRegistry()

	got, ok := reg.Create("items", "MIT|Apache|GPL")
	if !ok {
		t.Fatalf("expected items kind to resolve")
	}
	want := Descriptor{
		Kind:    KindItems,
		Default: "MIT",
		Options: []string{"MIT", "Apache", "GPL"},
		Raw:     "MIT|Apache|GPL",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("items descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name    string
		kind    string
		raw     string
		want    string
		options []string
	}{
		{name: "string keeps raw", kind: KindString, raw: "Untitled", want: "Untitled"},
		{name: "string empty", kind: KindString, raw: "", want: ""},
		{name: "items single", kind: KindItems, raw: "only", want: "only", options: []string{"only"}},
		{name: "text decodes newlines", kind: KindText, raw: `a\nb`, want: "a\nb"},
		{name: "secret keeps raw", kind: KindSecret, raw: "hunter2", want: "hunter2"},
		{name: "bool yes", kind: KindBool, raw: "yes", want: "true", options: []string{"true", "false"}},
		{name: "bool garbage", kind: KindBool, raw: "maybe", want: "false", options: []string{"true", "false"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Create(tc.kind, tc.raw)
			if !ok {
				t.Fatalf("kind %q did not resolve", tc.kind)
			}
			if got.Kind != tc.kind {
				t.Fatalf("kind: want %q, got %q", tc.kind, got.Kind)
			}
			if got.Default != tc.want {
				t.Fatalf("default: want %q, got %q", tc.want, got.Default)
			}
			if diff := cmp.Diff(tc.options, got.Options); diff != "" {
				t.Fatalf("options (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreate_UnknownKindIsAbsent(t *testing.T) {
	reg := NewRegistry()
	if desc, ok := reg.Create("color", "red"); ok {
		t.Fatalf("unknown kind resolved to %+v", desc)
	}
	if _, ok := reg.Create("", "red"); ok {
		t.Fatalf("empty kind should not resolve")
	}
	var nilReg *Registry
	if _, ok := nilReg.Create("string", "x"); ok {
		t.Fatalf("nil registry should not resolve")
	}
	if _, ok := NewEmptyRegistry().Create("string", "x"); ok {
		t.Fatalf("empty registry should not resolve")
	}
}

func TestRegister_CustomKind(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register("mcu", func(raw string) Descriptor {
		return Descriptor{Default: "stm32f4", Options: []string{"stm32f4", "nrf52"}}
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, ok := reg.Create("mcu", "")
	if !ok {
		t.Fatalf("custom kind should resolve")
	}
	if got.Kind != "mcu" || got.Default != "stm32f4" {
		t.Fatalf("unexpected descriptor %+v", got)
	}
	if diff := cmp.Diff([]string{"bool", "items", "mcu", "secret", "string", "text"}, reg.List()); diff != "" {
		t.Fatalf("list (-want +got):\n%s", diff)
	}
}

func TestRegister_Rejections(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(KindString, newString); !errors.Is(err, ErrDuplicateKind) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := reg.Register("  ", newString); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatalf("expected error for nil constructor")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustRegister should panic on duplicates")
		}
	}()
	reg.MustRegister(KindItems, newItems)
}

func TestDefaultRegistry(t *testing.T) {
	if !Default().Has(KindString) || !Default().Has(KindItems) {
		t.Fatalf("default registry should hold built-ins")
	}
	desc, ok := Create(KindItems, "a|b")
	if !ok || desc.Default != "a" {
		t.Fatalf("package level create: %+v ok=%v", desc, ok)
	}
}

func TestDescriptor_Validate(t *testing.T) {
	items, _ := NewRegistry().Create(KindItems, "MIT|Apache|GPL")
	if err := items.Validate("Apache"); err != nil {
		t.Fatalf("valid option rejected: %v", err)
	}
	if err := items.Validate("BSD"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid value, got %v", err)
	}
	if items.Index("GPL") != 2 || items.Index("BSD") != -1 {
		t.Fatalf("index mismatch")
	}

	flag, _ := NewRegistry().Create(KindBool, "on")
	if err := flag.Validate("nope"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid bool, got %v", err)
	}
	if got := flag.Normalize("Y"); got != "true" {
		t.Fatalf("normalize: %q", got)
	}

	text, _ := NewRegistry().Create(KindString, "")
	if err := text.Validate("anything }} goes"); err != nil {
		t.Fatalf("string should accept any value: %v", err)
	}
}
