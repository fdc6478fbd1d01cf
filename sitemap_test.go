package repometa_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/repometa"
	"github.com/stretchr/testify/assert"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter passes everything", func(t *testing.T) {
		t.Parallel()

		var f *repometa.URLFilter
		assert.True(t, f.Match("https://repo.example.br/handle/1/2"))
	})

	t.Run("include then exclude", func(t *testing.T) {
		t.Parallel()

		f := &repometa.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/handle/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/handle/1/99`)},
		}

		assert.True(t, f.Match("https://repo.example.br/handle/1/2"))
		assert.False(t, f.Match("https://repo.example.br/handle/1/99"))
		assert.False(t, f.Match("https://repo.example.br/browse"))
	})
}

func TestIsItemURL(t *testing.T) {
	t.Parallel()

	assert.True(t, repometa.IsItemURL("https://repositorio.ufsc.br/handle/123456789/1"))
	assert.True(t, repometa.IsItemURL("https://repositorio.ufmg.br/items/0a1b"))
	assert.True(t, repometa.IsItemURL("https://repositorio.unb.br/entities/publication/x"))
	assert.False(t, repometa.IsItemURL("https://repositorio.ufsc.br/browse?type=author"))
}
