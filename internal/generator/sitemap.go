package generator

import (
	"html"
	"sort"
	"strings"

	"github.com/lballo/Site-laura-4/internal/catalog"
)

const (
	articleChangeFreq = "monthly"
	articlePriority   = "0.7"
)

// StaticPage is a sitemap entry for a page outside the article catalog.
type StaticPage struct {
	Loc        string `yaml:"loc"`
	ChangeFreq string `yaml:"changefreq"`
	Priority   string `yaml:"priority"`
}

// DefaultStaticPages lists the hand-written pages of the site.
func DefaultStaticPages() []StaticPage {
	return []StaticPage{
		{Loc: "/", ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: "/blog/", ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: "/formations/template-formation.html", ChangeFreq: "monthly", Priority: "0.8"},
		{Loc: "/accompagnements/positionnement.html", ChangeFreq: "monthly", Priority: "0.8"},
		{Loc: "/quizz/hypersensibilite.html", ChangeFreq: "monthly", Priority: "0.7"},
		{Loc: "/legal/mentions-legales.html", ChangeFreq: "yearly", Priority: "0.2"},
		{Loc: "/legal/politique-confidentialite.html", ChangeFreq: "yearly", Priority: "0.2"},
		{Loc: "/legal/cgv.html", ChangeFreq: "yearly", Priority: "0.2"},
	}
}

// BuildSitemap renders sitemap.xml: static pages first, then every catalog
// entry with a slug, newest first, at its clean /slug URL.
func BuildSitemap(baseURL string, static []StaticPage, entries []catalog.Entry) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "http://localhost"
	}

	lines := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
	}

	for _, page := range static {
		loc := page.Loc
		if !strings.HasPrefix(loc, "/") {
			loc = "/" + loc
		}
		lines = append(lines,
			"",
			"  <url>",
			"    <loc>"+html.EscapeString(base+loc)+"</loc>",
			"    <changefreq>"+page.ChangeFreq+"</changefreq>",
			"    <priority>"+page.Priority+"</priority>",
			"  </url>",
		)
	}

	sorted := append([]catalog.Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	lines = append(lines, "", "  <!-- Articles de blog -->")
	for _, entry := range sorted {
		slug := strings.TrimSpace(entry.Slug)
		if slug == "" {
			continue
		}
		lines = append(lines, "  <url>", "    <loc>"+html.EscapeString(base+"/"+slug)+"</loc>")
		if entry.Date != "" {
			lines = append(lines, "    <lastmod>"+entry.Date+"</lastmod>")
		}
		lines = append(lines,
			"    <changefreq>"+articleChangeFreq+"</changefreq>",
			"    <priority>"+articlePriority+"</priority>",
			"  </url>",
		)
	}

	lines = append(lines, "", "</urlset>")
	return strings.Join(lines, "\n") + "\n"
}
