package shared

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Go Echo Tutorial":         "go-echo-tutorial",
		"  --Hello,   World!!--  ": "hello-world",
		"SEO 記事 自動生成":             "seo-記事-自動生成",
		"Version 2.0 released":     "version-2-0-released",
		"Part #1 / Intro":          "part-1-intro",
		"!!!":                      "",
		"":                         "",
		"already-a-slug":           "already-a-slug",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugifyCapsLength(t *testing.T) {
	got := Slugify(strings.Repeat("ab ", 100))
	if n := utf8.RuneCountInString(got); n > maxSlugRunes {
		t.Fatalf("expected at most %d runes, got %d", maxSlugRunes, n)
	}
	if strings.HasSuffix(got, "-") || strings.HasPrefix(got, "-") {
		t.Fatalf("slug must not start or end with a dash: %q", got)
	}
}

func TestArticlePayloadNormalize(t *testing.T) {
	p := ArticlePayload{Title: "  Title  ", Tags: []string{" go ", "", "  "}}
	p.Normalize()
	if p.Title != "Title" {
		t.Fatalf("expected trimmed title, got %q", p.Title)
	}
	if len(p.Tags) != 1 || p.Tags[0] != "go" {
		t.Fatalf("expected cleaned tags, got %v", p.Tags)
	}
	if p.Status != ArticleStatusDraft {
		t.Fatalf("expected draft default, got %q", p.Status)
	}
}
