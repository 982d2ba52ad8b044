// Package summary records what every optimizer pass removed or rewrote.
package summary

import (
	"github.com/yacobolo/csspurge/internal/cssast"
)

// Counters holds per-category reduction counts.
type Counters struct {
	DuplicateRules          int `json:"noDuplicateRules"`
	DuplicateDeclarations   int `json:"noDuplicateDeclarations"`
	EmptyDeclarations       int `json:"noEmptyDeclarations"`
	CommentsRemoved         int `json:"noCommentsRemoved"`
	SelectorsRemoved        int `json:"noSelectorsRemoved"`
	ZerosShortened          int `json:"noZerosShortened"`
	NamedColorsShortened    int `json:"noNamedColorsShortened"`
	HexColorsShortened      int `json:"noHexColorsShortened"`
	RGBColorsShortened      int `json:"noRGBColorsShortened"`
	HSLColorsShortened      int `json:"noHSLColorsShortened"`
	FontsShortened          int `json:"noFontsShortened"`
	BackgroundsShortened    int `json:"noBackgroundsShortened"`
	MarginsShortened        int `json:"noMarginsShortened"`
	PaddingsShortened       int `json:"noPaddingsShortened"`
	ListStylesShortened     int `json:"noListStylesShortened"`
	OutlinesShortened       int `json:"noOutlinesShortened"`
	BordersShortened        int `json:"noBordersShortened"`
	BorderTopsShortened     int `json:"noBorderTopsShortened"`
	BorderRightsShortened   int `json:"noBorderRightsShortened"`
	BorderBottomsShortened  int `json:"noBorderBottomsShortened"`
	BorderLeftsShortened    int `json:"noBorderLeftsShortened"`
	BorderSidesMerged       int `json:"noBorderTopsRightsBottomsLeftsShortened"`
	BorderRadiusShortened   int `json:"noBorderRadiusShortened"`
	CommonDeclarationsMoved int `json:"noCommonDeclarationsMoved"`
}

// Record describes one removed rule or declaration.
type Record struct {
	Selector string `json:"selector"`
	Property string `json:"property,omitempty"`
	Value    string `json:"value,omitempty"`
	Position string `json:"position,omitempty"`
}

// FileStat is the size of one input or output file.
type FileStat struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// Summary accumulates telemetry for one run.
type Summary struct {
	Counters              Counters
	Inputs                []FileStat
	HTMLInputs            []string
	Output                FileStat
	DuplicateRules        []Record
	DuplicateDeclarations []Record
	EmptyDeclarations     []Record
	SelectorsRemoved      []string
}

// New returns an empty summary.
func New() *Summary {
	return &Summary{}
}

func record(selector string, d *cssast.Declaration, pos cssast.Position) Record {
	r := Record{Selector: selector}
	if d != nil {
		r.Property = d.Property
		r.Value = d.Value
	}
	if !pos.IsZero() {
		r.Position = pos.String()
	}
	return r
}

// AddDuplicateRule records a merged duplicate rule or grouping.
func (s *Summary) AddDuplicateRule(label string, pos cssast.Position) {
	s.Counters.DuplicateRules++
	s.DuplicateRules = append(s.DuplicateRules, record(label, nil, pos))
}

// AddDuplicateDeclaration records a collapsed duplicate declaration.
func (s *Summary) AddDuplicateDeclaration(selector string, d *cssast.Declaration) {
	s.Counters.DuplicateDeclarations++
	s.DuplicateDeclarations = append(s.DuplicateDeclarations, record(selector, d, d.Position))
}

// AddEmptyDeclaration records a removed declaration without a value.
func (s *Summary) AddEmptyDeclaration(selector string, d *cssast.Declaration) {
	s.Counters.EmptyDeclarations++
	s.EmptyDeclarations = append(s.EmptyDeclarations, record(selector, d, d.Position))
}

// AddRemovedSelectors records selectors of a rule dropped as unused.
func (s *Summary) AddRemovedSelectors(selectors ...string) {
	s.Counters.SelectorsRemoved += len(selectors)
	s.SelectorsRemoved = append(s.SelectorsRemoved, selectors...)
}

// AddInput records the size of an input stylesheet.
func (s *Summary) AddInput(path string, size int) {
	s.Inputs = append(s.Inputs, FileStat{Path: path, Bytes: size})
}

// InputBytes is the total size of every input stylesheet.
func (s *Summary) InputBytes() int {
	total := 0
	for _, f := range s.Inputs {
		total += f.Bytes
	}
	return total
}

// SavingsKB is the size reduction in kilobytes.
func (s *Summary) SavingsKB() float64 {
	return round2(float64(s.InputBytes()-s.Output.Bytes) / 1024)
}

// SavingsPercentage is the size reduction relative to the input.
func (s *Summary) SavingsPercentage() float64 {
	in := s.InputBytes()
	if in == 0 {
		return 0
	}
	return round2(float64(in-s.Output.Bytes) / float64(in) * 100)
}

func round2(v float64) float64 {
	if v < 0 {
		return -round2(-v)
	}
	return float64(int64(v*100+0.5)) / 100
}
