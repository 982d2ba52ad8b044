package cssvalue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"single", "red", []string{"red"}},
		{"spaces", "1px  solid red", []string{"1px", "solid", "red"}},
		{"function kept whole", "url(a b.png) no-repeat", []string{"url(a b.png)", "no-repeat"}},
		{"nested parens", "calc(1px + (2px * 3)) auto", []string{"calc(1px + (2px * 3))", "auto"}},
		{"quoted string", `"Times New Roman" serif`, []string{`"Times New Roman"`, "serif"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.value))
		})
	}
}

func TestSplitCommas(t *testing.T) {
	got := SplitCommas(`url(a,b.png) top, rgb(1, 2, 3) , "a,b"`)
	assert.Equal(t, []string{"url(a,b.png) top", "rgb(1, 2, 3)", `"a,b"`}, got)
}

func TestImportant(t *testing.T) {
	tests := []struct {
		value     string
		important bool
		stripped  string
	}{
		{"red", false, "red"},
		{"red !important", true, "red"},
		{"red!important", true, "red"},
		{"red ! important", true, "red"},
		{"red !IMPORTANT", true, "red"},
		{"0 auto !important", true, "0 auto"},
		{"unimportant", false, "unimportant"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.important, IsImportant(tt.value))
			assert.Equal(t, tt.stripped, StripImportant(tt.value))
		})
	}

	assert.Equal(t, "red !important", WithImportant("red"))
}

func TestHasCSSWideKeyword(t *testing.T) {
	assert.True(t, HasCSSWideKeyword("inherit"))
	assert.True(t, HasCSSWideKeyword("1px INHERIT"))
	assert.True(t, HasCSSWideKeyword("initial"))
	assert.True(t, HasCSSWideKeyword("unset !important"))
	assert.True(t, HasCSSWideKeyword("revert-layer"))
	assert.False(t, HasCSSWideKeyword("noinherit-x"))
	assert.False(t, HasCSSWideKeyword("initial-letter"))
	assert.False(t, HasCSSWideKeyword("red"))

	assert.True(t, IsCSSWideKeyword(" Revert "))
	assert.False(t, IsCSSWideKeyword("revert 1px"))
}

func TestHasGradient(t *testing.T) {
	assert.True(t, HasGradient("linear-gradient(red, blue)"))
	assert.True(t, HasGradient("url(a.png), -webkit-radial-gradient(red, blue)"))
	assert.False(t, HasGradient("url(gradient.png)"))
}

func TestSides(t *testing.T) {
	tests := []struct {
		value string
		want  [4]string
		ok    bool
	}{
		{"1px", [4]string{"1px", "1px", "1px", "1px"}, true},
		{"1px 2px", [4]string{"1px", "2px", "1px", "2px"}, true},
		{"1px 2px 3px", [4]string{"1px", "2px", "3px", "2px"}, true},
		{"1px 2px 3px 4px", [4]string{"1px", "2px", "3px", "4px"}, true},
		{"1px 2px 3px 4px 5px", [4]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := Sides(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "2px", Side("1px 2px 3px", Left))
	assert.Equal(t, "", Side("", Top))
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name  string
		sides [4]string
		want  string
	}{
		{"all equal", [4]string{"0", "0", "0", "0"}, "0"},
		{"vertical and horizontal pairs", [4]string{"1px", "2px", "1px", "2px"}, "1px 2px"},
		{"left equals right", [4]string{"1px", "2px", "3px", "2px"}, "1px 2px 3px"},
		{"all distinct", [4]string{"1px", "2px", "3px", "4px"}, "1px 2px 3px 4px"},
		{"top equals bottom only", [4]string{"1px", "2px", "1px", "4px"}, "1px 2px 1px 4px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.Join(Collapse(tt.sides), " "))
		})
	}
}

func TestSplitLine(t *testing.T) {
	got, ok := SplitLine("red 1px solid")
	assert.True(t, ok)
	assert.Equal(t, [3]string{"1px", "solid", "red"}, got)

	got, ok = SplitLine("thin dashed")
	assert.True(t, ok)
	assert.Equal(t, [3]string{"thin", "dashed", ""}, got)

	_, ok = SplitLine("red blue")
	assert.False(t, ok)
}

func TestSplitListStyle(t *testing.T) {
	got, ok := SplitListStyle("square inside url(dot.png)")
	assert.True(t, ok)
	assert.Equal(t, [3]string{"square", "inside", "url(dot.png)"}, got)

	_, ok = SplitListStyle("disc square")
	assert.False(t, ok)
}

func TestIsColorBearing(t *testing.T) {
	assert.True(t, IsColorBearing("color"))
	assert.True(t, IsColorBearing("border-left-color"))
	assert.True(t, IsColorBearing("-webkit-box-shadow"))
	assert.False(t, IsColorBearing("margin"))
	assert.False(t, IsColorBearing("border-radius"))
}

func TestColorKeyword(t *testing.T) {
	hex, ok := ColorKeyword("White", false)
	assert.True(t, ok)
	assert.Equal(t, "#ffffff", hex)

	_, ok = ColorKeyword("aliceblue", false)
	assert.False(t, ok)

	hex, ok = ColorKeyword("aliceblue", true)
	assert.True(t, ok)
	assert.Equal(t, "#f0f8ff", hex)
}

func TestMapUnprotected(t *testing.T) {
	upper := func(s string) string { return strings.ToUpper(s) }

	got := MapUnprotected(`red url(red.png) "red" calc(red) red`, upper, "url", "calc")
	assert.Equal(t, `RED url(red.png) "red" calc(red) RED`, got)

	got = MapUnprotected("myurl(x)", upper, "url")
	assert.Equal(t, "MYURL(X)", got)
}
