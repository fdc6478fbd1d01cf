package repometa_test

import (
	"testing"

	"github.com/fwojciec/repometa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want repometa.Family
	}{
		{"classic", repometa.FamilyClassic},
		{"JSPUI", repometa.FamilyClassic},
		{" xmlui ", repometa.FamilyClassic},
		{"spa", repometa.FamilySPA},
		{"dspace7", repometa.FamilySPA},
		{"generic", repometa.FamilyGeneric},
	}
	for _, tt := range tests {
		got, err := repometa.ParseFamily(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := repometa.ParseFamily("eprints")
	require.Error(t, err)
	assert.Equal(t, repometa.EINVALID, repometa.ErrorCode(err))
}

func TestSiteEntry_Matches(t *testing.T) {
	t.Parallel()

	e := repometa.SiteEntry{URL: "repositorio.ufsc.br", Family: repometa.FamilyClassic}

	assert.True(t, e.Matches("https://repositorio.ufsc.br/handle/123456789/1"))
	assert.True(t, e.Matches("HTTP://REPOSITORIO.UFSC.BR/xmlui"))
	assert.False(t, e.Matches("https://repositorio.ufpe.br/handle/1"))
	assert.False(t, (&repometa.SiteEntry{URL: " "}).Matches("https://example.com"))
}

func TestSiteEntry_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires url", func(t *testing.T) {
		t.Parallel()

		e := repometa.SiteEntry{Family: repometa.FamilySPA}
		err := e.Validate()
		assert.Equal(t, repometa.EINVALID, repometa.ErrorCode(err))
	})

	t.Run("requires known family", func(t *testing.T) {
		t.Parallel()

		e := repometa.SiteEntry{URL: "repo.example.br", Family: "eprints"}
		err := e.Validate()
		assert.Equal(t, repometa.EINVALID, repometa.ErrorCode(err))
	})

	t.Run("accepts valid entry", func(t *testing.T) {
		t.Parallel()

		e := repometa.SiteEntry{URL: "repo.example.br", Family: repometa.FamilySPA, Acronym: "UFX"}
		require.NoError(t, e.Validate())
		assert.Equal(t, repometa.Identity{Acronym: "UFX"}, e.Identity())
	})
}

func TestHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "repositorio.ufmg.br", repometa.Host("https://Repositorio.UFMG.br:8443/handle/1"))
	assert.Empty(t, repometa.Host("://bad"))
}
