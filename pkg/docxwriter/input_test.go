package docxwriter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInputKeepsKeyOrder(t *testing.T) {
	in, err := ParseInput([]byte(`{
		"title": "T",
		"file_name": "out.docx",
		"content": {"Zeta": "z", "Alpha": "a", "Mid": {"table": [["x"]]}}
	}`))
	if err != nil {
		t.Fatalf("ParseInput() error = %v", err)
	}
	if in.Title != "T" || in.FileName != "out.docx" {
		t.Errorf("input = %+v", in)
	}
	if len(in.Content) != 1 {
		t.Fatalf("groups = %d, want 1", len(in.Content))
	}
	if diff := cmp.Diff([]string{"Zeta", "Alpha", "Mid"}, in.Content[0].Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}

	table, _ := in.Content[0].Get("Mid")
	want := Object{{Key: "table", Value: []interface{}{[]interface{}{"x"}}}}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("nested value mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInputContentList(t *testing.T) {
	in, err := ParseInput([]byte(`{"title":"T","file_name":"a.docx","content":[{"A":"1"},{"B":"2","C":"3"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	var keys [][]string
	for _, group := range in.Content {
		keys = append(keys, group.Keys())
	}
	if diff := cmp.Diff([][]string{{"A"}, {"B", "C"}}, keys); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}

	empty, err := ParseInput([]byte(`{"title":"T","file_name":"a.docx","content":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	if empty.Content == nil || len(empty.Content) != 0 {
		t.Errorf("empty content = %#v, want empty non-nil", empty.Content)
	}
}

func TestParseInputErrors(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantField string
	}{
		{name: "not json", json: `{"title":`},
		{name: "trailing data", json: `{"title":"T","file_name":"a","content":{}} {}`},
		{name: "top level list", json: `[1, 2]`},
		{name: "missing title", json: `{"file_name":"a","content":{}}`, wantField: "title"},
		{name: "title not string", json: `{"title":5,"file_name":"a","content":{}}`, wantField: "title"},
		{name: "missing file name", json: `{"title":"T","content":{}}`, wantField: "file_name"},
		{name: "blank file name", json: `{"title":"T","file_name":"  ","content":{}}`, wantField: "file_name"},
		{name: "file name with directory", json: `{"title":"T","file_name":"../x.docx","content":{}}`, wantField: "file_name"},
		{name: "file name dot dot", json: `{"title":"T","file_name":"..","content":{}}`, wantField: "file_name"},
		{name: "missing content", json: `{"title":"T","file_name":"a"}`, wantField: "content"},
		{name: "content string", json: `{"title":"T","file_name":"a","content":"x"}`, wantField: "content"},
		{name: "content list of strings", json: `{"title":"T","file_name":"a","content":["x"]}`, wantField: "content[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput([]byte(tt.json))
			var ie *InputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected InputError, got %v", err)
			}
			if ie.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ie.Field, tt.wantField)
			}
		})
	}
}

func TestParseInputDuplicateKeys(t *testing.T) {
	in, err := ParseInput([]byte(`{"title":"T","file_name":"a.docx","content":{"A":"first","B":"b","A":"last"}}`))
	if err != nil {
		t.Fatal(err)
	}
	want := Object{{Key: "A", Value: "last"}, {Key: "B", Value: "b"}}
	if diff := cmp.Diff(want, in.Content[0]); diff != "" {
		t.Errorf("duplicate key mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInputNumbers(t *testing.T) {
	in, err := ParseInput([]byte(`{"title":"T","file_name":"a.docx","content":{"N":{"text":"x","level":2}}}`))
	if err != nil {
		t.Fatal(err)
	}
	v, _ := in.Content[0].Get("N")
	level, _ := v.(Object).Get("level")
	if level != json.Number("2") {
		t.Errorf("level = %#v, want json.Number(\"2\")", level)
	}
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"title":"T","file_name":"a.docx","content":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := LoadInput(good)
	if err != nil {
		t.Fatalf("LoadInput() error = %v", err)
	}
	if in.Path != good {
		t.Errorf("Path = %q, want %q", in.Path, good)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"title":"T"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadInput(bad)
	var ie *InputError
	if !errors.As(err, &ie) || ie.Path != bad || ie.Field != "file_name" {
		t.Errorf("LoadInput(bad) error = %v", err)
	}

	_, err = LoadInput(filepath.Join(dir, "missing.json"))
	if !errors.As(err, &ie) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadInput(missing) error = %v", err)
	}
}

func TestObjectMarshalJSON(t *testing.T) {
	obj := Object{
		{Key: "b", Value: "<x>"},
		{Key: "a", Value: []interface{}{json.Number("1"), true, nil}},
		{Key: "c", Value: Object{{Key: "z", Value: "1"}, {Key: "y", Value: "2"}}},
	}
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"b":"\u003cx\u003e","a":[1,true,null],"c":{"z":"1","y":"2"}}`
	if string(data) != want {
		t.Errorf("json.Marshal = %s, want %s", data, want)
	}

	// Stringified section bodies are not HTML escaped
	body, err := stringify(obj)
	if err != nil {
		t.Fatal(err)
	}
	if body != `{"b":"<x>","a":[1,true,null],"c":{"z":"1","y":"2"}}` {
		t.Errorf("stringify = %s", body)
	}
}
