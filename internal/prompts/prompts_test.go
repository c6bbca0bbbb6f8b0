package prompts

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRenderEmbeddedTemplates(t *testing.T) {
	r := NewRenderer(nil)
	out, err := r.Render(Values{Title: "Test", Description: "Desc", Category: "Toys"})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	for _, want := range []string{"Test", "Desc", "Toys"} {
		if !strings.Contains(out.User, want) {
			t.Errorf("user prompt missing %q:\n%s", want, out.User)
		}
	}
	for _, tok := range []string{"{title}", "{description}", "{category}"} {
		if strings.Contains(out.User, tok) {
			t.Errorf("user prompt still contains %s", tok)
		}
	}
	if out.System == "" {
		t.Error("system prompt is empty")
	}
	if len(out.Unmatched) != 0 {
		t.Errorf("Unmatched = %v, want none", out.Unmatched)
	}
}

func TestRenderMissingAsset(t *testing.T) {
	fsys := fstest.MapFS{
		SystemAsset: &fstest.MapFile{Data: []byte("system")},
	}
	_, err := NewRenderer(fsys).Render(Values{Title: "a", Description: "b", Category: "c"})
	if !errors.Is(err, ErrTemplateAssetMissing) {
		t.Fatalf("err = %v, want ErrTemplateAssetMissing", err)
	}
}

func TestFillReplacesEveryOccurrenceOnce(t *testing.T) {
	got := Fill("{title} / {title} in {category}", Values{Title: "{category}", Category: "Toys"})
	want := "{category} / {category} in Toys"
	if got != want {
		t.Fatalf("Fill = %q, want %q", got, want)
	}
}

func TestFillLeavesUnknownPlaceholders(t *testing.T) {
	fsys := fstest.MapFS{
		SystemAsset: &fstest.MapFile{Data: []byte("system")},
		UserAsset:   &fstest.MapFile{Data: []byte("{title} costs {price} ({brand})")},
	}

	out, err := NewRenderer(fsys).Render(Values{Title: "Lamp"})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out.User != "Lamp costs {price} ({brand})" {
		t.Fatalf("User = %q", out.User)
	}
	if len(out.Unmatched) != 2 || out.Unmatched[0] != "{price}" || out.Unmatched[1] != "{brand}" {
		t.Fatalf("Unmatched = %v", out.Unmatched)
	}

	out, err = NewRenderer(fsys).Render(Values{Title: "Lamp", Price: "19.99"})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if out.User != "Lamp costs 19.99 ({brand})" {
		t.Fatalf("User = %q", out.User)
	}
}
