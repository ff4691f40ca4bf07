package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/auth"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/pkg/jwt"
)

// Locals keys para la identidad en Fiber.
const (
	LocalUserID = "user_id"
	LocalName   = "name"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, name, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalName, name)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole corta con 403 si el rol autenticado no está en la lista.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetName devuelve el nombre del usuario autenticado.
func GetName(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalName).(string)
	return v
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// scopedSite resuelve el filtro de sitio de un listado: los roles de almacén
// quedan forzados a su propio sitio; Admin puede filtrar con ?sitio= o ver
// todo si lo omite.
func scopedSite(c *fiber.Ctx) (*domain.Site, error) {
	if site, ok := auth.SiteForRole(GetRole(c)); ok {
		return &site, nil
	}
	q := strings.TrimSpace(c.Query("sitio"))
	if q == "" {
		return nil, nil
	}
	site, err := domain.ParseSite(q)
	if err != nil {
		return nil, err
	}
	return &site, nil
}

// authorizeSite verifica que el rol autenticado pueda operar sobre el sitio.
func authorizeSite(c *fiber.Ctx, site string) error {
	roleSite, ok := auth.SiteForRole(GetRole(c))
	if !ok {
		return nil // Admin
	}
	s, err := domain.ParseSite(site)
	if err != nil {
		return err
	}
	if s != roleSite {
		return domain.ErrForbidden
	}
	return nil
}
