package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pdf-tools.md", `---
slug: pdf-tools
title: PDF Tools
description: Work with PDF files
categories:
  - documents
tags:
  - pdf
author: anthropic
date: "2026-08-01"
featured: true
featuredType: permanent
featuredPriority: 1
---

Extract text and tables from PDFs.
`)
	writeFile(t, dir, "zz-lint.md", `---
title: Zed Linter
---
Body here.
`)
	// No frontmatter at all: slug from filename, but no title means skip
	writeFile(t, dir, "broken.md", "just a body, no frontmatter\n")
	writeFile(t, dir, "notes.txt", "not markdown, ignored\n")

	skills, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(skills) != 2 {
		t.Fatalf("Load() returned %d skills, want 2", len(skills))
	}

	// Sorted by slug
	if skills[0].Slug != "pdf-tools" || skills[1].Slug != "zz-lint" {
		t.Errorf("slugs = %s, %s; want pdf-tools, zz-lint", skills[0].Slug, skills[1].Slug)
	}

	pdf := skills[0]
	if pdf.Title != "PDF Tools" || pdf.Author != "anthropic" {
		t.Errorf("record = %+v, frontmatter fields not parsed", pdf)
	}
	if !pdf.Featured || pdf.FeaturedType != "permanent" || pdf.FeaturedPriority != 1 {
		t.Errorf("featured fields = %v/%s/%d", pdf.Featured, pdf.FeaturedType, pdf.FeaturedPriority)
	}
	if pdf.PrimaryCategory() != "documents" {
		t.Errorf("PrimaryCategory() = %q, want documents", pdf.PrimaryCategory())
	}
	if pdf.Body == "" {
		t.Error("body is empty, want markdown content below frontmatter")
	}

	// Slug fallback to file name
	if skills[1].Slug != "zz-lint" {
		t.Errorf("fallback slug = %q, want zz-lint", skills[1].Slug)
	}
}

func TestLoader_Get(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\nslug: a\ntitle: A\n---\n")

	loader := NewLoader(dir)
	got, err := loader.Get("a")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got == nil || got.Title != "A" {
		t.Errorf("Get(a) = %+v, want title A", got)
	}

	missing, err := loader.Get("nope")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Get(nope) = %+v, want nil", missing)
	}
}

func TestFilter(t *testing.T) {
	skills := []SkillRecord{
		{Slug: "a", Title: "Data Analyzer", Description: "crunch numbers", Categories: []string{"analytics"}, Tags: []string{"csv"}},
		{Slug: "b", Title: "PDF Tools", Description: "work with documents", Categories: []string{"documents"}},
		{Slug: "c", Title: "Chart Maker", Description: "visualize data", Categories: []string{"analytics"}},
	}

	tests := []struct {
		name      string
		query     string
		category  string
		wantSlugs []string
	}{
		{"no filters", "", "", []string{"a", "b", "c"}},
		{"category match is case insensitive", "", "Analytics", []string{"a", "c"}},
		{"query matches title", "pdf", "", []string{"b"}},
		{"query matches description", "crunch", "", []string{"a"}},
		{"query matches tags", "csv", "", []string{"a"}},
		{"query and category combine", "data", "analytics", []string{"a", "c"}},
		{"no match", "zzz", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(skills, tt.query, tt.category)
			if len(got) != len(tt.wantSlugs) {
				t.Fatalf("Filter() returned %d skills, want %d", len(got), len(tt.wantSlugs))
			}
			for i, want := range tt.wantSlugs {
				if got[i].Slug != want {
					t.Errorf("result[%d] = %s, want %s", i, got[i].Slug, want)
				}
			}
		})
	}
}

func TestSort(t *testing.T) {
	base := func() []SkillRecord {
		return []SkillRecord{
			{Slug: "c", Title: "zeta", Date: "2026-08-01"},
			{Slug: "a", Title: "Alpha", Date: "2026-08-20", Featured: true, FeaturedPriority: 2},
			{Slug: "b", Title: "beta", Date: "2026-08-10", Featured: true, FeaturedPriority: 1},
		}
	}

	tests := []struct {
		name      string
		mode      string
		wantSlugs []string
	}{
		{"alpha is case insensitive by title", "alpha", []string{"a", "b", "c"}},
		{"newest by date descending", "newest", []string{"a", "b", "c"}},
		{"featured first then priority", "featured", []string{"b", "a", "c"}},
		{"unknown mode falls back to alpha", "bogus", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := base()
			Sort(skills, tt.mode)
			for i, want := range tt.wantSlugs {
				if skills[i].Slug != want {
					t.Errorf("sorted[%d] = %s, want %s", i, skills[i].Slug, want)
				}
			}
		})
	}
}
