package domain

import (
	"fmt"
	"strings"
)

// Site es uno de los tres almacenes físicos. El stock de cada sitio está
// completamente particionado; nunca se agrega entre sitios.
type Site string

const (
	SiteCedis Site = "CEDIS"
	SiteAcuna Site = "ACUÑA"
	SiteNLD   Site = "NLD"
)

// Sites lista los sitios válidos en orden estable.
func Sites() []Site {
	return []Site{SiteCedis, SiteAcuna, SiteNLD}
}

// ParseSite normaliza y valida un sitio. Acepta "ACUNA" sin eñe como alias de
// "ACUÑA", igual que el resto del sistema.
func ParseSite(s string) (Site, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if up == "ACUNA" {
		up = "ACUÑA"
	}
	switch Site(up) {
	case SiteCedis, SiteAcuna, SiteNLD:
		return Site(up), nil
	}
	return "", fmt.Errorf("%w: sitio inválido %q", ErrValidation, s)
}

// Destination es el destino de una línea de recuperación: un sitio o el
// sumidero terminal "Desecho", que saca el artículo del tracking sin acreditar
// stock en ningún sitio.
type Destination string

// DestDiscard destino terminal; nunca toca el ledger.
const DestDiscard Destination = "Desecho"

// ParseDestination valida un destino de recuperación.
func ParseDestination(s string) (Destination, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(DestDiscard)) {
		return DestDiscard, nil
	}
	site, err := ParseSite(s)
	if err != nil {
		return "", fmt.Errorf("%w: destino inválido %q", ErrValidation, s)
	}
	return Destination(site), nil
}

// IsDiscard indica si el destino es el sumidero de desecho.
func (d Destination) IsDiscard() bool { return d == DestDiscard }

// Site devuelve el sitio destino; solo es válido cuando !IsDiscard().
func (d Destination) Site() Site { return Site(d) }
