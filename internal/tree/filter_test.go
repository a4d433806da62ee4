package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logTree(t *testing.T) *Tree {
	t.Helper()
	fs := fixtureFS(t, map[string]string{
		"/src/a.log": "",
		"/src/b.txt": "",
		"/src/c.log": "",
	})
	tr, err := NewFileTree(fs, "/src", nil)
	require.NoError(t, err)
	return tr
}

func TestFilter_Substring(t *testing.T) {
	tr := logTree(t)

	filtered, err := tr.Filter("log", FilterOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.log", "c.log"}, filtered.Elements())
	assert.Equal(t, []string{".*log.*"}, filtered.AppliedFilters())
}

func TestFilter_Inverted(t *testing.T) {
	tr := logTree(t)

	filtered, err := tr.Filter("log", FilterOptions{Invert: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"b.txt"}, filtered.Elements())
	assert.Equal(t, []string{"!><.*log.*"}, filtered.AppliedFilters())
}

func TestFilter_PartitionLaw(t *testing.T) {
	tr := logTree(t)

	kept, err := tr.Filter("log", FilterOptions{})
	require.NoError(t, err)
	dropped, err := tr.Filter("log", FilterOptions{Invert: true})
	require.NoError(t, err)

	union := append(append([]string{}, kept.Elements()...), dropped.Elements()...)
	assert.ElementsMatch(t, tr.Elements(), union)
	for _, e := range kept.Elements() {
		assert.NotContains(t, dropped.Elements(), e)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	tr := logTree(t)

	once, err := tr.Filter("log", FilterOptions{})
	require.NoError(t, err)
	twice, err := once.Filter("log", FilterOptions{})
	require.NoError(t, err)

	assert.Equal(t, once.Elements(), twice.Elements())
}

func TestFilter_RegexFullMatch(t *testing.T) {
	tr := logTree(t)

	// A full-match pattern: "log" alone matches no whole element.
	filtered, err := tr.Filter("log", FilterOptions{Regex: true})
	require.NoError(t, err)
	assert.Empty(t, filtered.Elements())

	filtered, err = tr.Filter(`[ac]\.log`, FilterOptions{Regex: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.log", "c.log"}, filtered.Elements())
	assert.Equal(t, []string{`[ac]\.log`}, filtered.AppliedFilters())
}

func TestFilter_CopyIsIndependent(t *testing.T) {
	tr := logTree(t)
	originalElements := append([]string{}, tr.Elements()...)

	filtered, err := tr.Filter("log", FilterOptions{})
	require.NoError(t, err)

	// The original is untouched by the derived copy.
	assert.Equal(t, originalElements, tr.Elements())
	assert.Empty(t, tr.AppliedFilters())

	// Filtering the copy again does not leak into the original log.
	require.NoError(t, filtered.FilterInPlace("a", FilterOptions{}))
	assert.Empty(t, tr.AppliedFilters())
	assert.Len(t, filtered.AppliedFilters(), 2)
}

func TestFilterInPlace_MutatesReceiver(t *testing.T) {
	tr := logTree(t)

	require.NoError(t, tr.FilterInPlace("log", FilterOptions{}))

	assert.Equal(t, []string{"a.log", "c.log"}, tr.Elements())
	assert.Equal(t, []string{".*log.*"}, tr.AppliedFilters())
}

func TestFilter_InvalidPatternIsAtomic(t *testing.T) {
	tr := logTree(t)

	_, err := tr.Filter("[unclosed", FilterOptions{Regex: true})
	assert.Error(t, err)

	err = tr.FilterInPlace("[unclosed", FilterOptions{Regex: true})
	assert.Error(t, err)

	// Nothing changed on the receiver.
	assert.Equal(t, []string{"a.log", "b.txt", "c.log"}, tr.Elements())
	assert.Empty(t, tr.AppliedFilters())
}

func TestFilter_AccumulatesLog(t *testing.T) {
	tr := logTree(t)

	require.NoError(t, tr.FilterInPlace("log", FilterOptions{}))
	require.NoError(t, tr.FilterInPlace("a", FilterOptions{Invert: true}))

	assert.Equal(t, []string{"c.log"}, tr.Elements())
	assert.Equal(t, []string{".*log.*", "!><.*a.*"}, tr.AppliedFilters())
}

func TestSameElements(t *testing.T) {
	a := logTree(t)
	b := logTree(t)

	assert.True(t, a.SameElements(b))

	require.NoError(t, b.FilterInPlace("log", FilterOptions{}))
	assert.False(t, a.SameElements(b))
}
