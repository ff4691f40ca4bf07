// Package auth login por código de acceso. Cada rol tiene su código; el login
// compara el código contra los hashes bcrypt de la tabla de usuarios (un
// puñado de filas) y emite un JWT con la identidad resuelta.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
	"github.com/SistemasTACTSUPP/tactical-inventory/pkg/config"
	"github.com/SistemasTACTSUPP/tactical-inventory/pkg/jwt"
)

// roleSites sitio de operación de cada rol de almacén; Admin no aparece porque
// opera sobre los tres.
var roleSites = map[string]domain.Site{
	entity.RoleAlmacenCedis: domain.SiteCedis,
	entity.RoleAlmacenAcuna: domain.SiteAcuna,
	entity.RoleAlmacenNld:   domain.SiteNLD,
}

// SiteForRole devuelve el sitio al que está restringido un rol; ok es false
// para Admin (acceso a todos los sitios).
func SiteForRole(role string) (domain.Site, bool) {
	s, ok := roleSites[role]
	return s, ok
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	users repository.UserRepository
	cfg   config.JWTConfig
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, cfg config.JWTConfig, log zerolog.Logger) *UseCase {
	return &UseCase{users: users, cfg: cfg, log: log}
}

// Login compara el código de acceso contra los usuarios registrados y emite un
// token. Un código desconocido devuelve ErrUnauthorized sin distinguir si
// existe o no.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	code := strings.TrimSpace(in.AccessCode)
	if code == "" {
		return nil, fmt.Errorf("%w: el código de acceso es obligatorio", domain.ErrValidation)
	}
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if bcrypt.CompareHashAndPassword([]byte(u.AccessCodeHash), []byte(code)) != nil {
			continue
		}
		token, err := jwt.Generate(uc.cfg.Secret, u.ID, u.Name, u.Role, uc.cfg.Issuer, uc.cfg.Expiration)
		if err != nil {
			return nil, err
		}
		resp := &dto.LoginResponse{Token: token, Name: u.Name, Role: u.Role}
		if site, ok := SiteForRole(u.Role); ok {
			resp.Site = string(site)
		}
		uc.log.Info().Str("role", u.Role).Msg("login exitoso")
		return resp, nil
	}
	uc.log.Warn().Msg("intento de login con código inválido")
	return nil, fmt.Errorf("%w: código de acceso inválido", domain.ErrUnauthorized)
}
