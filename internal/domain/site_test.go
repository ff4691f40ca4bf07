package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
)

func TestParseSite(t *testing.T) {
	for _, raw := range []string{"CEDIS", "cedis", " Cedis "} {
		site, err := domain.ParseSite(raw)
		require.NoError(t, err, "%q debe ser un sitio válido", raw)
		assert.Equal(t, domain.SiteCedis, site)
	}
}

func TestParseSite_AliasAcunaSinEnie(t *testing.T) {
	// El alias sin eñe viene de clientes que no envían la Ñ.
	site, err := domain.ParseSite("ACUNA")
	require.NoError(t, err)
	assert.Equal(t, domain.SiteAcuna, site)

	site, err = domain.ParseSite("acuña")
	require.NoError(t, err)
	assert.Equal(t, domain.SiteAcuna, site)
}

func TestParseSite_Invalido(t *testing.T) {
	_, err := domain.ParseSite("TIJUANA")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseDestination(t *testing.T) {
	dest, err := domain.ParseDestination("Desecho")
	require.NoError(t, err)
	assert.True(t, dest.IsDiscard())

	dest, err = domain.ParseDestination("NLD")
	require.NoError(t, err)
	assert.False(t, dest.IsDiscard())
	assert.Equal(t, domain.SiteNLD, dest.Site())

	_, err = domain.ParseDestination("BODEGA-X")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
