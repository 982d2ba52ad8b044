package report

import (
	"sort"

	"github.com/yacobolo/csspurge/internal/summary"
)

// Category groups reduction counters in the run summary.
type Category string

const (
	CategoryDuplicates Category = "Duplicates"
	CategoryShorthands Category = "Shorthands"
	CategoryValues     Category = "Values"
	CategorySelectors  Category = "Selectors"
	CategoryComments   Category = "Comments"
)

// Count is one non-zero reduction counter.
type Count struct {
	Label    string
	Category Category
	N        int
}

// Counts lists the non-zero counters of c in a fixed order.
func Counts(c summary.Counters) []Count {
	all := []Count{
		{"duplicate rules", CategoryDuplicates, c.DuplicateRules},
		{"duplicate declarations", CategoryDuplicates, c.DuplicateDeclarations},
		{"empty declarations", CategoryDuplicates, c.EmptyDeclarations},
		{"comments removed", CategoryComments, c.CommentsRemoved},
		{"unused selectors", CategorySelectors, c.SelectorsRemoved},
		{"common declarations moved", CategorySelectors, c.CommonDeclarationsMoved},
		{"zeros shortened", CategoryValues, c.ZerosShortened},
		{"named colors shortened", CategoryValues, c.NamedColorsShortened},
		{"hex colors shortened", CategoryValues, c.HexColorsShortened},
		{"rgb colors shortened", CategoryValues, c.RGBColorsShortened},
		{"hsl colors shortened", CategoryValues, c.HSLColorsShortened},
		{"font", CategoryShorthands, c.FontsShortened},
		{"background", CategoryShorthands, c.BackgroundsShortened},
		{"margin", CategoryShorthands, c.MarginsShortened},
		{"padding", CategoryShorthands, c.PaddingsShortened},
		{"list-style", CategoryShorthands, c.ListStylesShortened},
		{"outline", CategoryShorthands, c.OutlinesShortened},
		{"border", CategoryShorthands, c.BordersShortened},
		{"border-top", CategoryShorthands, c.BorderTopsShortened},
		{"border-right", CategoryShorthands, c.BorderRightsShortened},
		{"border-bottom", CategoryShorthands, c.BorderBottomsShortened},
		{"border-left", CategoryShorthands, c.BorderLeftsShortened},
		{"border sides merged", CategoryShorthands, c.BorderSidesMerged},
		{"border-radius", CategoryShorthands, c.BorderRadiusShortened},
	}

	counts := make([]Count, 0, len(all))
	for _, count := range all {
		if count.N > 0 {
			counts = append(counts, count)
		}
	}
	return counts
}

// categoryTotal is the sum of one category's counters.
type categoryTotal struct {
	Category Category
	N        int
}

// totalsByCategory sums counts per category, largest first.
func totalsByCategory(counts []Count) []categoryTotal {
	byCategory := make(map[Category]int)
	for _, c := range counts {
		byCategory[c.Category] += c.N
	}

	totals := make([]categoryTotal, 0, len(byCategory))
	for cat, n := range byCategory {
		totals = append(totals, categoryTotal{Category: cat, N: n})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].N != totals[j].N {
			return totals[i].N > totals[j].N
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}
