package docxwriter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/benjaminschreck/go-docxwriter/pkg/docxwriter/xml"
)

func TestDefaultRegistryStyles(t *testing.T) {
	registry := DefaultRegistry()
	required := []string{
		"Normal", "Title", "Subtitle", "Abstract", "References", "Quote",
		"List Bullet", "List Number", "Table Grid", "Caption", "Footnote",
		"Header", "Footer", "Code", "Warning", "Error", "Success", "Hidden",
	}
	for level := 1; level <= 9; level++ {
		required = append(required, "Heading "+string(rune('0'+level)))
	}
	for _, name := range required {
		if !registry.Has(name) {
			t.Errorf("default registry is missing %q", name)
		}
	}

	if registry != DefaultRegistry() {
		t.Error("DefaultRegistry() is not shared")
	}
	if got, want := len(registry.Names()), registry.Len(); got != want {
		t.Errorf("Names() has %d entries, Len() = %d", got, want)
	}
}

func TestRegistryGet(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		wantKind StyleKind
		wantOK   bool
	}{
		{name: "paragraph", style: "Heading 2", wantKind: ParagraphStyle, wantOK: true},
		{name: "table", style: "Table Grid", wantKind: TableStyle, wantOK: true},
		{name: "character", style: "Hyperlink", wantKind: CharacterStyle, wantOK: true},
		{name: "missing", style: "Heading 10"},
		{name: "case sensitive", style: "normal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := DefaultRegistry().Get(tt.style)
			if ok != tt.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.style, ok, tt.wantOK)
			}
			if ok && s.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", s.Kind, tt.wantKind)
			}
		})
	}

	// Get returns a copy
	s, _ := DefaultRegistry().Get("Normal")
	s.Font = "Comic Sans MS"
	if again, _ := DefaultRegistry().Get("Normal"); again.Font != "Times New Roman" {
		t.Errorf("registry style modified through Get: %q", again.Font)
	}
}

func TestRegistryRegisterOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(Style{Name: "Zeta"})
	r.Register(Style{Name: "Alpha"})
	r.Register(Style{Name: "Zeta", Bold: true})

	if diff := cmp.Diff([]string{"Zeta", "Alpha"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Alpha", "Zeta"}, r.SortedNames()); diff != "" {
		t.Errorf("SortedNames() mismatch (-want +got):\n%s", diff)
	}
	if s, _ := r.Get("Zeta"); !s.Bold {
		t.Error("Register did not replace the style")
	}
}

func TestStyleID(t *testing.T) {
	tests := map[string]string{
		"Heading 1":   "Heading1",
		"List Bullet": "ListBullet",
		"Normal":      "Normal",
		"Table Grid":  "TableGrid",
	}
	for name, want := range tests {
		if got := StyleID(name); got != want {
			t.Errorf("StyleID(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		color RGB
		want  string
	}{
		{Colors["white"], "FFFFFF"},
		{Colors["accent"], "0070C0"},
		{Colors["primary"], "000000"},
		{RGB{1, 2, 3}, "010203"},
	}
	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestStylesPart(t *testing.T) {
	data, err := xml.MarshalStyles(DefaultRegistry().stylesPart("en-US"))
	if err != nil {
		t.Fatalf("MarshalStyles() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal">`,
		`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="Heading 1"></w:name><w:basedOn w:val="Normal"></w:basedOn>`,
		`<w:style w:type="table" w:styleId="TableGrid">`,
		`<w:style w:type="character" w:styleId="Hyperlink">`,
		`<w:lang w:val="en-US"></w:lang>`,
		`<w:spacing w:after="0" w:line="480" w:lineRule="auto"></w:spacing>`,
		`<w:color w:val="FFFFFF"></w:color>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("styles.xml missing %s", want)
		}
	}
	if strings.Count(out, "<w:style ") != DefaultRegistry().Len() {
		t.Errorf("styles.xml has %d styles, want %d", strings.Count(out, "<w:style "), DefaultRegistry().Len())
	}
}

func TestDefaultNumbering(t *testing.T) {
	n := defaultNumbering()
	if len(n.Abstract) != 2 || len(n.Instances) != 2 {
		t.Fatalf("numbering = %d abstract, %d instances", len(n.Abstract), len(n.Instances))
	}
	for _, abstract := range n.Abstract {
		if len(abstract.Levels) != 9 {
			t.Errorf("abstract %d has %d levels, want 9", abstract.ID, len(abstract.Levels))
		}
		for i := 1; i < len(abstract.Levels); i++ {
			if abstract.Levels[i].Left <= abstract.Levels[i-1].Left {
				t.Errorf("abstract %d level %d indent does not increase", abstract.ID, i)
			}
		}
	}

	for _, name := range []string{"List Bullet", "List Number"} {
		s, _ := DefaultRegistry().Get(name)
		found := false
		for _, inst := range n.Instances {
			found = found || inst.ID == s.NumID
		}
		if !found {
			t.Errorf("%s refers to numbering %d which does not exist", name, s.NumID)
		}
	}
}
