package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrides(t *testing.T) {
	t.Parallel()

	rules := goquery.Overrides()
	require.GreaterOrEqual(t, len(rules), 80)

	seen := make(map[string]bool)
	for _, rule := range rules {
		assert.False(t, seen[rule.Name], "duplicate rule %s", rule.Name)
		seen[rule.Name] = true

		require.NotEmpty(t, rule.Patterns, rule.Name)
		assert.False(t, rule.Identity.IsZero(), rule.Name)
		for _, pattern := range rule.Patterns {
			assert.True(t, rule.Match("https://"+pattern+"/handle/1/2"), "%s should match %s", rule.Name, pattern)
		}

		s := rule.New()
		assert.Equal(t, string(rule.Family)+":"+rule.Name, s.Name())
		assert.Equal(t, rule.Identity, s.Identity())
	}
}

func TestOverrides_Extract(t *testing.T) {
	t.Parallel()

	r := goquery.NewResolver()

	t.Run("unit code maps to program", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
<ol class="breadcrumb"><li>Repositório Institucional</li><li>FADIR - Faculdade de Direito</li><li>Dissertações</li></ol>
</body></html>`

		rec := r.Extract(body, "https://repositorio.ufu.br/handle/123456789/9")

		assert.Equal(t, "UFU", rec.Acronym)
		assert.Equal(t, "Direito", rec.ProgramName)
	})

	t.Run("FADIR resolves per institution", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			url  string
			body string
			want string
		}{
			{
				name: "handle link text",
				url:  "https://repositorio.ufgd.edu.br/handle/prefix/77",
				body: `<html><body><a href="/handle/prefix/50">FADIR</a></body></html>`,
				want: "Fronteiras e Direitos Humanos",
			},
			{
				name: "state collection",
				url:  "https://repositorio.ufms.br/items/5d1e",
				body: spaPage(`{"core":{"cache/object":{
					"/server/api/core/collections/1":{"data":{"type":"collection","name":"FADIR - Faculdade de Direito","metadata":{}}}
				}}}`, ""),
				want: "Direito",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				assert.Equal(t, tt.want, r.Extract(tt.body, tt.url).ProgramName)
			})
		}
	})

	t.Run("unit code step is named in progress", func(t *testing.T) {
		t.Parallel()

		var messages []string
		pr := goquery.NewResolver(goquery.WithStrategyOptions(goquery.WithProgress(func(msg string) {
			messages = append(messages, msg)
		})))
		body := `<html><body>
<ol class="breadcrumb"><li>Repositório Institucional</li><li>FADIR - Faculdade de Direito</li><li>Dissertações</li></ol>
</body></html>`

		pr.Extract(body, "https://repositorio.ufu.br/handle/123456789/9")

		require.Len(t, messages, 3)
		assert.Equal(t, "program found via unit code: Direito", messages[1])
	})

	t.Run("program read from degree note", func(t *testing.T) {
		t.Parallel()

		body := `<html><head>
<meta name="DC.description" content="Dissertação (mestrado) - Universidade Federal de Santa Catarina, Centro Tecnológico, Programa de Pós-Graduação em Engenharia Elétrica, Florianópolis, 2019.">
</head><body></body></html>`

		rec := r.Extract(body, "https://repositorio.ufsc.br/handle/123456789/1")

		assert.Equal(t, "Engenharia Elétrica", rec.ProgramName)
	})

	t.Run("campus refines identity for one call only", func(t *testing.T) {
		t.Parallel()

		url := "https://repositorio.unesp.br/items/1"
		state := `{"NGRX_STATE":{"core":{"cache/object":{
			"/server/api/core/items/1":{"data":{"type":"item","metadata":{
				"unesp.campus":[{"value":"Universidade Estadual Paulista (Unesp), Faculdade de Ciências e Letras, Araraquara"}],
				"unesp.graduateProgram":[{"value":"Programa de Pós-Graduação em Educação Escolar - FCLAR"}]
			}}}
		}}}}`
		s := r.Strategy(url, "")

		withCampus := s.Extract(spaPage(state, ""), url)
		without := s.Extract(spaPage(`{"core":{"cache/object":{}}}`, ""), url)

		assert.Equal(t, "UNESP", withCampus.Acronym)
		assert.Equal(t, "Universidade Estadual Paulista - Câmpus de Araraquara", withCampus.InstitutionName)
		assert.Equal(t, "Educação Escolar", withCampus.ProgramName)
		assert.Equal(t, "Universidade Estadual Paulista", without.InstitutionName)
		assert.Equal(t, repometa.Identity{Acronym: "UNESP", Name: "Universidade Estadual Paulista"}, s.Identity())
	})

	t.Run("institution link pattern wins over family default", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
<a href="/teses/disponiveis/2/2131/tde-01/publico/resumo.txt">Resumo</a>
<a href="/teses/disponiveis/2/2131/tde-01/publico/Tese_Completa.pdf">Tese</a>
</body></html>`

		rec := r.Extract(body, "https://www.teses.usp.br/teses/disponiveis/2/2131/tde-01/")

		assert.Equal(t, "USP", rec.Acronym)
		assert.Equal(t, "https://www.teses.usp.br/teses/disponiveis/2/2131/tde-01/publico/Tese_Completa.pdf", rec.PDFLink)
	})

	t.Run("override falls back to family default", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
<ul id="ds-trail"><li>Home</li><li>Programa de Pós-Graduação em Sociologia</li><li>Teses</li></ul>
</body></html>`

		rec := r.Extract(body, "https://acervodigital.ufpr.br/handle/1884/5")

		assert.Equal(t, "Sociologia", rec.ProgramName)
		assert.True(t, strings.HasPrefix(rec.InstitutionName, "Universidade Federal do Paraná"))
	})
}
