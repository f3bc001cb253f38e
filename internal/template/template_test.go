package template

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"
)

// tokenRe matches any placeholder token that survived rendering
var tokenRe = regexp.MustCompile(`\{[A-Za-z0-9_]+\}`)

func TestRenderTwoLineTemplate(t *testing.T) {
	tmpl, err := Parse("test", "work item {n}\ndir {d}\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rendered, err := tmpl.Render(map[string]string{"n": "7", "d": "/tmp/x"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "work item 7\ndir /tmp/x\n"
	if rendered != want {
		t.Errorf("Render = %q, want %q", rendered, want)
	}
}

func TestRenderMissingKey(t *testing.T) {
	tmpl, err := Parse("test", "work item {n}\ndir {d}\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	_, err = tmpl.Render(map[string]string{"n": "7"})
	if err == nil {
		t.Fatal("Render succeeded with missing key, want error")
	}

	var upe *UnresolvedPlaceholderError
	if !errors.As(err, &upe) {
		t.Fatalf("error is %T, want *UnresolvedPlaceholderError", err)
	}
	if !reflect.DeepEqual(upe.Missing, []string{"d"}) {
		t.Errorf("Missing = %v, want [d]", upe.Missing)
	}
}

func TestRenderMissingKeysCompleteAndSorted(t *testing.T) {
	tmpl, err := Parse("test", "{zz} {aa} {mm} {aa}\nmore {zz}\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	_, err = tmpl.Render(map[string]string{"mm": "x"})
	var upe *UnresolvedPlaceholderError
	if !errors.As(err, &upe) {
		t.Fatalf("error is %T, want *UnresolvedPlaceholderError", err)
	}
	if !reflect.DeepEqual(upe.Missing, []string{"aa", "zz"}) {
		t.Errorf("Missing = %v, want [aa zz] (sorted, no duplicates)", upe.Missing)
	}
}

func TestRenderLeavesNoTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		subs map[string]string
	}{
		{
			name: "lsf header",
			text: "#!/bin/bash\n#BSUB -J job-{work_item_num}\n#BSUB -q gpu\ncd {work_dir}\n",
			subs: map[string]string{"work_item_num": "3", "work_dir": "/scratch/run"},
		},
		{
			name: "adjacent placeholders",
			text: "{a}{b}{a}\n",
			subs: map[string]string{"a": "x", "b": "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.name, tt.text)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			rendered, err := tmpl.Render(tt.subs)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if tokenRe.MatchString(rendered) {
				t.Errorf("rendered output still contains a placeholder token:\n%s", rendered)
			}
		})
	}
}

func TestRenderValueIsOpaquePayload(t *testing.T) {
	// A substituted value that happens to look like a token is not re-expanded.
	tmpl, err := Parse("test", "path {p}\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	rendered, err := tmpl.Render(map[string]string{"p": "{untouched}"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rendered != "path {untouched}\n" {
		t.Errorf("Render = %q, want %q", rendered, "path {untouched}\n")
	}
}

func TestRenderIdempotent(t *testing.T) {
	tmpl, err := Parse("test", "#BSUB -J {name}\ncd {dir} && ./run.sh {name}\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	subs := map[string]string{"name": "job-1", "dir": "/tmp/wd"}
	first, err := tmpl.Render(subs)
	if err != nil {
		t.Fatalf("first Render failed: %v", err)
	}
	second, err := tmpl.Render(subs)
	if err != nil {
		t.Fatalf("second Render failed: %v", err)
	}
	if first != second {
		t.Errorf("Render is not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestRenderEscapedBraces(t *testing.T) {
	tmpl, err := Parse("test", "awk '{{print $1}}' {input}\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rendered, err := tmpl.Render(map[string]string{"input": "data.txt"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "awk '{print $1}' data.txt\n"
	if rendered != want {
		t.Errorf("Render = %q, want %q", rendered, want)
	}
}

func TestRenderExtraKeysIgnored(t *testing.T) {
	tmpl, err := Parse("test", "hello {who}\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rendered, err := tmpl.Render(map[string]string{"who": "world", "unused": "x"})
	if err != nil {
		t.Fatalf("Render failed with extra keys: %v", err)
	}
	if rendered != "hello world\n" {
		t.Errorf("Render = %q, want %q", rendered, "hello world\n")
	}
}

func TestParseMalformedTemplates(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
	}{
		{name: "unterminated placeholder", text: "ok line\ncd {work_dir\n", wantLine: 2},
		{name: "lone closing brace", text: "bad } here\n", wantLine: 1},
		{name: "empty placeholder", text: "{}\n", wantLine: 1},
		{name: "bad placeholder name", text: "{no spaces}\n", wantLine: 1},
		{name: "nested open brace", text: "{a{b}\n", wantLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name, tt.text)
			if err == nil {
				t.Fatal("Parse succeeded, want InvalidTemplateError")
			}
			var ite *InvalidTemplateError
			if !errors.As(err, &ite) {
				t.Fatalf("error is %T, want *InvalidTemplateError", err)
			}
			if ite.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", ite.Line, tt.wantLine)
			}
		})
	}
}

func TestParseEmptyTemplate(t *testing.T) {
	for _, text := range []string{"", "  \n \t\n"} {
		_, err := Parse("empty", text)
		if !IsInvalidTemplateError(err) {
			t.Errorf("Parse(%q) error = %v, want InvalidTemplateError", text, err)
		}
	}
}

func TestPlaceholdersSortedUnique(t *testing.T) {
	tmpl, err := Parse("test", "{b} {a} {b}\n{c} {a}\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []string{"a", "b", "c"}
	if got := tmpl.Placeholders(); !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders = %v, want %v", got, want)
	}

	// The returned slice must be a copy
	tmpl.Placeholders()[0] = "mutated"
	if got := tmpl.Placeholders(); !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders after mutation = %v, want %v", got, want)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.lsf")
	content := "#!/bin/bash\n#BSUB -J item-{work_item_num}\ncd {work_dir}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	tmpl, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tmpl.Name() != path {
		t.Errorf("Name = %q, want %q", tmpl.Name(), path)
	}
	want := []string{"work_dir", "work_item_num"}
	if got := tmpl.Placeholders(); !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders = %v, want %v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.lsf"))
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Load error = %v, want ErrTemplateNotFound", err)
	}
}
