package csspurge

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// pseudoPattern matches pseudo-classes and pseudo-elements, which describe
// states a static document never shows.
var pseudoPattern = regexp.MustCompile(`::?[a-zA-Z-]+(\([^)]*\))?`)

// htmlMatcher reports which selectors match at least one element of a set
// of HTML documents.
type htmlMatcher struct {
	docs []*goquery.Document
	log  *zap.Logger
}

// loadHTML parses every HTML file.
func loadHTML(files []string, log *zap.Logger) (*htmlMatcher, error) {
	m := &htmlMatcher{log: log.Named("html")}
	for _, file := range files {
		doc, err := loadDocument(file)
		if err != nil {
			return nil, fmt.Errorf("load html %s: %w", file, err)
		}
		m.docs = append(m.docs, doc)
	}
	m.log.Debug("html documents loaded", zap.Int("count", len(m.docs)))
	return m, nil
}

func loadDocument(path string) (doc *goquery.Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return goquery.NewDocumentFromReader(f)
}

// Used returns the subset of selectors found in the documents. Selectors
// that cannot be compiled are kept as used.
func (m *htmlMatcher) Used(selectors []string) (map[string]bool, error) {
	used := make(map[string]bool, len(selectors))
	for _, sel := range selectors {
		query := staticSelector(sel)
		if query == "" {
			used[sel] = true
			continue
		}

		compiled, err := cascadia.Compile(query)
		if err != nil {
			m.log.Debug("selector kept, not compilable", zap.String("selector", sel), zap.Error(err))
			used[sel] = true
			continue
		}

		for _, doc := range m.docs {
			if doc.FindMatcher(compiled).Length() > 0 {
				used[sel] = true
				break
			}
		}
	}
	return used, nil
}

// staticSelector drops pseudo-classes and pseudo-elements from sel.
func staticSelector(sel string) string {
	return strings.TrimSpace(pseudoPattern.ReplaceAllString(sel, ""))
}
