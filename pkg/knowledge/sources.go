package knowledge

import (
	"strings"
)

// Source is one passage retrieved from the knowledge base.
type Source struct {
	Content      string
	Score        float64
	SourceURI    string
	DocumentName string
}

// SourceAccumulator collects the passages retrieved while a single chat
// invocation runs. The chat flow creates a fresh accumulator per request
// and reads it back after the agent completes, so retrieved sources can
// never leak between invocations.
type SourceAccumulator struct {
	sources []Source
}

func NewSourceAccumulator() *SourceAccumulator {
	return &SourceAccumulator{}
}

// Reset drops everything collected so far. Each retrieval call resets the
// accumulator before appending, so the sources always reflect the most
// recent retrieval only.
func (a *SourceAccumulator) Reset() {
	a.sources = a.sources[:0]
}

func (a *SourceAccumulator) Add(s Source) {
	a.sources = append(a.sources, s)
}

// Sources returns a copy of the collected passages in rank order.
func (a *SourceAccumulator) Sources() []Source {
	out := make([]Source, len(a.sources))
	copy(out, a.sources)
	return out
}

// DocumentName derives a display name from a source URI: the substring
// after the last path separator, or the whole URI when none is present.
func DocumentName(uri string) string {
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}
	return uri
}

// FilterCatalogSources drops passages that come from the static materials
// catalog. The catalog happens to be indexed alongside the textbook and
// must never be surfaced as a cited source.
func FilterCatalogSources(sources []Source) []Source {
	filtered := make([]Source, 0, len(sources))
	for _, s := range sources {
		if strings.Contains(strings.ToLower(s.DocumentName), "materials.json") {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}
