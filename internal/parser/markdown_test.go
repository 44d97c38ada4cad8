package parser

import (
	"context"
	"strings"
	"testing"
)

func TestMarkdownParser_DropsMarkup(t *testing.T) {
	input := `# Chapter 1

## Q1. What is **boxing**?

Converting a *value type* to ` + "`object`" + `.

## Q2. What is unboxing?

The reverse.
`
	p := &MarkdownParser{}
	doc, err := p.Extract(context.Background(), strings.NewReader(input), "notes.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	want := "Chapter 1\n\nQ1. What is boxing?\n\nConverting a value type to object.\n\nQ2. What is unboxing?\n\nThe reverse."
	if doc.Text != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, doc.Text)
	}
}

func TestMarkdownParser_KeepsCodeBlocks(t *testing.T) {
	input := "Intro.\n\n```\nvar x = 1;\nvar y = 2;\n```\n\nAfter code.\n"
	p := &MarkdownParser{}
	doc, err := p.Extract(context.Background(), strings.NewReader(input), "code.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Text, "var x = 1;\nvar y = 2;") {
		t.Errorf("expected code block content, got %q", doc.Text)
	}
	if !strings.HasSuffix(doc.Text, "After code.") {
		t.Errorf("expected trailing paragraph, got %q", doc.Text)
	}
}

func TestMarkdownParser_ListItemsOnOwnLines(t *testing.T) {
	input := "- first\n- second\n- third\n"
	p := &MarkdownParser{}
	doc, err := p.Extract(context.Background(), strings.NewReader(input), "list.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "first\nsecond\nthird" {
		t.Errorf("expected %q, got %q", "first\nsecond\nthird", doc.Text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Extract(context.Background(), strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Extract(context.Background(), strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
