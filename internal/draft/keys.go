package draft

import (
	"fmt"

	"draftkeep/store"
)

// PageKey identifies the editing context an engine instance belongs to.
// One draft is kept per page key; opening the same page again restores it.
type PageKey string

const (
	PageManualNoteEditor PageKey = "manual-note-editor"
	PageCodeRunner       PageKey = "code-runner"
	PageAIGenerate       PageKey = "ai-generate"
	PageAIImprove        PageKey = "ai-improve"
	PageAISummarize      PageKey = "ai-summarize"
	PageAICode           PageKey = "ai-code"
)

var knownPages = map[PageKey]bool{
	PageManualNoteEditor: true,
	PageCodeRunner:       true,
	PageAIGenerate:       true,
	PageAIImprove:        true,
	PageAISummarize:      true,
	PageAICode:           true,
}

// Valid reports whether the page key is one of the enumerated pages.
func (p PageKey) Valid() bool {
	return knownPages[p]
}

// Key returns the durable store key for this page.
func (p PageKey) Key() string {
	return store.KeyPrefix + string(p)
}

func validatePage(p PageKey) error {
	if !p.Valid() {
		return fmt.Errorf("unknown page key %q", p)
	}
	return nil
}
