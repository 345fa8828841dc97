package placeholder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestExtract_NameTypeDefault(t *testing.T) {
	got := Extract("PROJECT = ${{project_name string:Untitled}}\n")
	want := []Placeholder{{
		Name:    "project name",
		Key:     "project_name",
		Type:    "string",
		Default: "Untitled",
		Raw:     "${{project_name string:Untitled}}",
		Offset:  10,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_Variants(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []Placeholder
	}{
		{
			name: "name only",
			text: "${{target}}",
			want: []Placeholder{{Name: "target", Key: "target"}},
		},
		{
			name: "name and default",
			text: "${{cpu:cortex-m4}}",
			want: []Placeholder{{Name: "cpu", Key: "cpu", Default: "cortex-m4"}},
		},
		{
			name: "name and type",
			text: "${{vendor string}}",
			want: []Placeholder{{Name: "vendor", Key: "vendor", Type: "string"}},
		},
		{
			name: "empty default",
			text: "${{vendor string:}}",
			want: []Placeholder{{Name: "vendor", Key: "vendor", Type: "string"}},
		},
		{
			name: "space before colon",
			text: "${{vendor string :acme}}",
			want: []Placeholder{{Name: "vendor", Key: "vendor", Type: "string", Default: "acme"}},
		},
		{
			name: "items default keeps delimiter",
			text: "${{license items:MIT|Apache|GPL}}",
			want: []Placeholder{{Name: "license", Key: "license", Type: "items", Default: "MIT|Apache|GPL"}},
		},
		{
			name: "document order and duplicates",
			text: "${{b}} ${{a}} ${{b}}",
			want: []Placeholder{
				{Name: "b", Key: "b"},
				{Name: "a", Key: "a"},
				{Name: "b", Key: "b"},
			},
		},
		{
			name: "default stops at first closing braces",
			text: "${{x string:a}}b}}",
			want: []Placeholder{{Name: "x", Key: "x", Type: "string", Default: "a"}},
		},
		{
			name: "invalid name characters are ignored",
			text: "${{not-valid}} $${x}",
		},
		{
			name: "default spans lines",
			text: "desc: ${{description string:line one\nline two}}\n",
			want: []Placeholder{{Name: "description", Key: "description", Type: "string", Default: "line one\nline two"}},
		},
	}

	ignore := cmpopts.IgnoreFields(Placeholder{}, "Raw", "Offset")
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Extract(tc.text)
			if diff := cmp.Diff(tc.want, got, ignore, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("extract %q (-want +got):\n%s", tc.text, diff)
			}
		})
	}
}

func TestSubstitute_NoPlaceholdersIsIdentity(t *testing.T) {
	texts := []string{
		"",
		"plain text",
		"all: build\n\t$(CC) -o $@ $^\n",
		"{{not a marker}} ${not either}",
	}
	values := []Value{{Name: "project name", Value: "demo"}}
	for _, text := range texts {
		if got := Substitute(text, values); got != text {
			t.Fatalf("identity broken for %q: got %q", text, got)
		}
	}
}

func TestSubstitute_AbsentNameLeavesText(t *testing.T) {
	text := "name=${{project_name string:Untitled}}"
	got := Substitute(text, []Value{{Name: "license", Value: "MIT"}})
	if got != text {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestSubstitute_ReplacesEverySite(t *testing.T) {
	text := "TARGET=${{project_name string:app}}\nall: ${{project_name}}.elf\n"
	got := Substitute(text, []Value{{Name: "project name", Value: "blinky"}})
	want := "TARGET=blinky\nall: blinky.elf\n"
	if got != want {
		t.Fatalf("substitute mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestSubstitute_KeyFormAndLiteralValues(t *testing.T) {
	text := "CFLAGS=${{cflags string:-O2}}"
	got := Substitute(text, []Value{{Name: "cflags", Value: "-O2 $(EXTRA) ${1}"}})
	want := "CFLAGS=-O2 $(EXTRA) ${1}"
	if got != want {
		t.Fatalf("substitute mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestSubstitute_DefaultSpanningLines(t *testing.T) {
	text := "desc: ${{description string:line one\nline two}}\nend\n"
	got := Substitute(text, []Value{{Name: "description", Value: "X"}})
	want := "desc: X\nend\n"
	if got != want {
		t.Fatalf("substitute mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestSubstitute_PrefixKeyDoesNotMatchLongerKey(t *testing.T) {
	text := "${{name}} ${{name_full}}"
	got := Substitute(text, []Value{{Name: "name", Value: "x"}})
	want := "x ${{name_full}}"
	if got != want {
		t.Fatalf("substitute mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestSubstitute_FollowsValueOrder(t *testing.T) {
	text := "${{a}}-${{b}}"
	// The value inserted for b carries a marker for a, which is only replaced
	// when a comes after b in the value list.
	got := Substitute(text, []Value{{Name: "b", Value: "${{a}}"}, {Name: "a", Value: "1"}})
	if got != "1-1" {
		t.Fatalf("expected row order substitution, got %q", got)
	}
	got = Substitute(text, []Value{{Name: "a", Value: "1"}, {Name: "b", Value: "${{a}}"}})
	if got != "1-${{a}}" {
		t.Fatalf("expected row order substitution, got %q", got)
	}
}

func TestRoundTrip_MarkersReproduceTemplate(t *testing.T) {
	text := "PROJECT=${{project_name string:Untitled}}\n" +
		"LICENSE=${{license items:MIT|Apache|GPL}}\n" +
		"CPU=${{cpu :cortex-m3}}\n"

	placeholders := Extract(text)
	values := make([]Value, 0, len(placeholders))
	for _, p := range placeholders {
		values = append(values, Value{Name: p.Name, Value: p.Marker()})
	}
	if got := Substitute(text, values); got != text {
		t.Fatalf("round trip mismatch\nwant: %q\n got: %q", text, got)
	}
}

func TestRoundTrip_Defaults(t *testing.T) {
	text := "PROJECT=${{project_name string:Untitled}} LICENSE=${{license items:MIT|GPL}}"
	got := Substitute(text, Defaults(Extract(text)))
	want := "PROJECT=Untitled LICENSE=MIT|GPL"
	if got != want {
		t.Fatalf("defaults mismatch\nwant: %q\n got: %q", want, got)
	}
	if again := Substitute(got, Defaults(Extract(text))); again != got {
		t.Fatalf("rendered text should be stable, got %q", again)
	}
}

func TestMarker_Synthesised(t *testing.T) {
	p := Placeholder{Name: "project name", Type: "string", Default: "x"}
	if got := p.Marker(); got != "${{project_name string:x}}" {
		t.Fatalf("unexpected marker %q", got)
	}
	if !Contains("a "+p.Marker(), "project name") {
		t.Fatalf("synthesised marker should be found")
	}
	if Contains("plain", "project name") || Contains("${{x}}", "  ") {
		t.Fatalf("contains should not match")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("a_b_c"); got != "a b c" {
		t.Fatalf("display name %q", got)
	}
	if got := KeyOf("a b c"); got != "a_b_c" {
		t.Fatalf("key %q", got)
	}
	if got := KeyOf(DisplayName("Mixed_Case")); got != "Mixed_Case" {
		t.Fatalf("round trip lost characters: %q", got)
	}
}
