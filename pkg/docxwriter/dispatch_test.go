package docxwriter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDispatchGroupOrder(t *testing.T) {
	b := NewBuilder(nil)
	group := obj(
		"First", "one",
		"Grid", obj("table", jsonList(jsonList("a"))),
		"Items", obj("list", jsonList("x")),
		"Break", obj("page_break", true),
		"Last", "two",
	)
	if err := DispatchGroup(b, group); err != nil {
		t.Fatalf("DispatchGroup() error = %v", err)
	}

	var got []string
	for _, item := range builderBody(t, b) {
		switch {
		case item.kind == "tbl":
			got = append(got, "table")
		case item.pageBreak:
			got = append(got, "break")
		default:
			got = append(got, item.style+":"+item.text)
		}
	}
	want := []string{"Heading1:First", ":one", "table", "ListBullet:x", "break", "Heading1:Last", ":two"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("body order mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchAttachesKey(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		wantKind string
	}{
		{name: "classification", value: obj("list", "not a list"), wantKind: "list"},
		{name: "rendering", value: obj("table", jsonList(jsonList())), wantKind: "table"},
		{name: "missing style", value: obj("text", "x", "style", "Nope"), wantKind: "style"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Dispatch(NewBuilder(nil), "Results", tt.value)
			var re *RenderError
			if !errors.As(err, &re) {
				t.Fatalf("expected RenderError, got %v", err)
			}
			if re.Key != "Results" || re.Kind != tt.wantKind {
				t.Errorf("key/kind = %q/%q, want Results/%s", re.Key, re.Kind, tt.wantKind)
			}
		})
	}
}

func TestDispatchGroupStopsAtFirstError(t *testing.T) {
	b := NewBuilder(nil)
	group := obj("Good", "x", "Bad", obj("list", jsonList("a"), "level", json.Number("-1")), "Never", "y")
	if err := DispatchGroup(b, group); !IsRenderError(err) {
		t.Fatalf("expected RenderError, got %v", err)
	}
	for _, item := range builderBody(t, b) {
		if item.text == "Never" {
			t.Error("rendering continued after an error")
		}
	}
}

func TestAssemble(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		b := NewBuilder(nil)
		if err := Assemble(context.Background(), b, nil, ""); !IsInputError(err) {
			t.Errorf("expected InputError, got %v", err)
		}
		if b.Len() != 0 {
			t.Error("content rendered for invalid input")
		}
	})

	t.Run("groups then watermark", func(t *testing.T) {
		b := NewBuilder(nil)
		in := &Input{Title: "T", FileName: "a.docx", Content: []Object{obj("A", "1"), obj("B", "2")}}
		if err := Assemble(context.Background(), b, in, "mark"); err != nil {
			t.Fatal(err)
		}
		var texts []string
		for _, item := range builderBody(t, b) {
			texts = append(texts, item.text)
		}
		if diff := cmp.Diff([]string{"T", "A", "1", "B", "2", "mark"}, texts); diff != "" {
			t.Errorf("body mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		b := NewBuilder(nil)
		in := &Input{Title: "T", FileName: "a.docx", Content: []Object{}}
		if err := Assemble(context.Background(), b, in, ""); err != nil {
			t.Fatal(err)
		}
		if b.Len() != 1 {
			t.Errorf("Len() = %d, want title only", b.Len())
		}
	})
}
