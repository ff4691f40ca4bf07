package repository

import (
	"context"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
)

// OrderRepository persistencia de pedidos a proveedor.
type OrderRepository interface {
	// LastID devuelve el último ID de pedido (0 si no hay), usado para foliar
	// PED-0001, PED-0002, ...
	LastID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, o *entity.Order) (int64, error)
	InsertItems(ctx context.Context, orderID int64, items []entity.OrderItem) error
	List(ctx context.Context) ([]entity.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error)
	// Suggestions artículos con total por debajo del mínimo, opcionalmente
	// filtrados por sitio.
	Suggestions(ctx context.Context, site *domain.Site) ([]entity.Suggestion, error)
}

// EmployeeRepository persistencia de colaboradores y registros pendientes.
type EmployeeRepository interface {
	List(ctx context.Context, status string) ([]entity.Employee, error)
	Get(ctx context.Context, id int64) (*entity.Employee, error)
	Insert(ctx context.Context, e *entity.Employee) (int64, error)
	Update(ctx context.Context, e *entity.Employee) error
	SetStatus(ctx context.Context, id int64, status string) error

	ListPending(ctx context.Context) ([]entity.PendingEmployee, error)
	InsertPending(ctx context.Context, p *entity.PendingEmployee) (int64, error)
	GetPending(ctx context.Context, id int64) (*entity.PendingEmployee, error)
	DeletePending(ctx context.Context, id int64) error
}

// UserRepository persistencia de usuarios. El login compara el código de
// acceso contra los hashes bcrypt de todos los usuarios (la tabla es de un
// puñado de filas, una por rol).
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
}
