package publisher

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Action names what the pipeline did with a source page.
type Action string

const (
	ActionPublish Action = "publish"
	ActionRetire  Action = "retire"
)

// Status is the outcome of one article.
type Status string

const (
	StatusPublished Status = "published"
	StatusRetired   Status = "retired"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

const summaryLimit = 100

// ArticleResult reports one page processed during a run.
type ArticleResult struct {
	Action      Action
	Status      Status
	PageID      string
	Title       string
	Slug        string
	Path        string
	ReadingTime int
	// Removed is set for retired pages whose artifact existed.
	Removed bool
	// Marked is set once the source accepted the status update.
	Marked bool
	Err    error
}

// Result is the outcome of a Run.
type Result struct {
	DryRun      bool
	Articles    []ArticleResult
	CatalogSize int
}

// Count returns the number of articles with status.
func (r *Result) Count(status Status) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, a := range r.Articles {
		if a.Status == status {
			n++
		}
	}
	return n
}

// Empty reports whether the run found nothing to do.
func (r *Result) Empty() bool {
	return r == nil || len(r.Articles) == 0
}

// Summary is a one-line account of the run, listing titles while it stays
// short and falling back to counts otherwise.
func (r *Result) Summary() string {
	if r.Empty() {
		return "Rien à faire"
	}

	published := r.titles(StatusPublished)
	retired := r.titles(StatusRetired)

	var parts []string
	if len(published) > 0 {
		parts = append(parts, "Publié : "+strings.Join(published, ", "))
	}
	if len(retired) > 0 {
		parts = append(parts, "Supprimé : "+strings.Join(retired, ", "))
	}
	summary := strings.Join(parts, " | ")
	if summary == "" || utf8.RuneCountInString(summary) > summaryLimit {
		summary = fmt.Sprintf("%d publié(s), %d supprimé(s)", len(published), len(retired))
	}
	return summary
}

func (r *Result) titles(status Status) []string {
	var out []string
	for _, a := range r.Articles {
		if a.Status == status {
			out = append(out, a.Title)
		}
	}
	return out
}
