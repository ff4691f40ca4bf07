// Package movement implementa el motor de movimientos de stock: entradas,
// salidas y recuperaciones. Cada movimiento se aplica como una unidad atómica
// (cabecera, líneas y mutación del ledger en la misma transacción) y las
// correcciones siguen el esquema revertir-y-reaplicar.
package movement

import (
	"fmt"
	"strings"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
)

// validateLine reglas comunes a toda línea de movimiento.
func validateLine(i int, code, description string, qty int) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: la línea %d no tiene código", domain.ErrValidation, i+1)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: la línea %d no tiene descripción", domain.ErrValidation, i+1)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: la línea %d tiene cantidad inválida (%d)", domain.ErrValidation, i+1, qty)
	}
	return nil
}

func validateDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("%w: la fecha es obligatoria", domain.ErrValidation)
	}
	return nil
}

func toEntryItems(lines []dto.MovementLineRequest) ([]entity.EntryItem, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: el movimiento no tiene líneas", domain.ErrValidation)
	}
	items := make([]entity.EntryItem, 0, len(lines))
	for i, ln := range lines {
		if err := validateLine(i, ln.Code, ln.Description, ln.Qty); err != nil {
			return nil, err
		}
		items = append(items, entity.EntryItem{
			Code:        strings.TrimSpace(ln.Code),
			Description: strings.TrimSpace(ln.Description),
			Size:        ln.Size,
			Qty:         ln.Qty,
		})
	}
	return items, nil
}

func toDispatchItems(lines []dto.MovementLineRequest) ([]entity.DispatchItem, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: el movimiento no tiene líneas", domain.ErrValidation)
	}
	items := make([]entity.DispatchItem, 0, len(lines))
	for i, ln := range lines {
		if err := validateLine(i, ln.Code, ln.Description, ln.Qty); err != nil {
			return nil, err
		}
		items = append(items, entity.DispatchItem{
			Code:        strings.TrimSpace(ln.Code),
			Description: strings.TrimSpace(ln.Description),
			Size:        ln.Size,
			Qty:         ln.Qty,
		})
	}
	return items, nil
}

func toRecoveryItems(lines []dto.RecoveryLineRequest) ([]entity.RecoveryItem, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: el movimiento no tiene líneas", domain.ErrValidation)
	}
	items := make([]entity.RecoveryItem, 0, len(lines))
	for i, ln := range lines {
		if err := validateLine(i, ln.Code, ln.Description, ln.Qty); err != nil {
			return nil, err
		}
		dest, err := domain.ParseDestination(ln.Destination)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.RecoveryItem{
			Code:        strings.TrimSpace(ln.Code),
			Description: strings.TrimSpace(ln.Description),
			Size:        ln.Size,
			Qty:         ln.Qty,
			Destination: dest,
		})
	}
	return items, nil
}

// distinctSites deduplica los sitios afectados por un movimiento preservando el
// orden de aparición.
func distinctSites(sites ...domain.Site) []domain.Site {
	seen := make(map[domain.Site]bool, len(sites))
	out := make([]domain.Site, 0, len(sites))
	for _, s := range sites {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
