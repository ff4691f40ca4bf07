package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository.
type UserRepo struct {
	q sqlx.ExtContext
	d Dialect
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q sqlx.ExtContext, d Dialect) *UserRepo {
	return &UserRepo{q: q, d: d}
}

// List devuelve todos los usuarios. La tabla tiene un puñado de filas (una por
// rol); el login compara el código de acceso contra cada hash.
func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	query := `SELECT id, access_code_hash, role, name, created_at FROM users ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.q, &users, query); err != nil {
		return nil, classifyErr(r.d, "list users", err)
	}
	return users, nil
}
