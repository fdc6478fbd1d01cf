package goquery_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemLinks(t *testing.T) {
	t.Parallel()

	body := `<html><body>
<a href="/handle/123456789/1">Tese 1</a>
<a href="/handle/123456789/1#abstract">Tese 1 resumo</a>
<a href="https://repo.example.br/items/5e1c">Tese 2</a>
<a href="https://other.example.br/handle/1/9">Outro repositório</a>
<a href="/bitstream/handle/123456789/1/tese.pdf">PDF</a>
<a href="/browse?type=author">Autores</a>
<a href="mailto:biblioteca@example.br">Contato</a>
<a href="/handle/123456789/3">Tese 3</a>
</body></html>`

	t.Run("same-host item links in document order", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ItemLinks(body, "https://repo.example.br/browse?type=dateissued", nil)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"https://repo.example.br/handle/123456789/1",
			"https://repo.example.br/items/5e1c",
			"https://repo.example.br/handle/123456789/3",
		}, links)
	})

	t.Run("applies filter", func(t *testing.T) {
		t.Parallel()

		filter := &repometa.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile(`/items/`)}}

		links, err := goquery.ItemLinks(body, "https://repo.example.br/browse", filter)
		require.NoError(t, err)

		assert.Len(t, links, 2)
	})

	t.Run("listing without items", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ItemLinks(`<a href="/browse?type=title">Títulos</a>`, "https://repo.example.br/", nil)
		require.NoError(t, err)

		assert.Empty(t, links)
	})

	t.Run("rejects relative base", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ItemLinks(body, "/browse", nil)

		assert.Equal(t, repometa.EINVALID, repometa.ErrorCode(err))
	})
}
