package domain

import "errors"

// Errores de dominio (sin dependencias externas). El handler HTTP los mapea a
// códigos de estado; el núcleo solo expone la categoría.
var (
	// ErrValidation entrada malformada; el caller puede corregir la petición.
	ErrValidation = errors.New("entrada inválida")
	// ErrInvalidState la operación no es legal en el estado actual del
	// movimiento (ej. corregir una salida ya aprobada).
	ErrInvalidState = errors.New("operación no permitida en el estado actual")
	// ErrConstraint violación de clave única o referencial reportada por el
	// adaptador de persistencia.
	ErrConstraint = errors.New("violación de restricción")
	// ErrConnection fallo transitorio de infraestructura; es seguro reintentar
	// la operación completa.
	ErrConnection = errors.New("error de conexión a la base de datos")
	// ErrIncompleteCount la tarea de inventario cíclico tiene artículos sin
	// conteo físico registrado.
	ErrIncompleteCount = errors.New("conteo cíclico incompleto")

	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
