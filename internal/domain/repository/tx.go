package repository

import "context"

// Repos es el conjunto de repositorios atados a una misma transacción. El
// TxRunner lo construye sobre la tx activa y lo entrega al callback.
type Repos struct {
	Stock      StockRepository
	Entries    EntryRepository
	Dispatches DispatchRepository
	Recoveries RecoveryRepository
	Cyclic     CyclicTaskRepository
	Orders     OrderRepository
	Employees  EmployeeRepository
}

// TxRunner ejecuta fn dentro de exactamente una transacción: commit si fn
// devuelve nil, rollback en cualquier otro caso (incluido pánico del driver).
// El contrato transaccional es obligatorio en ambos backends; no existe modo
// "sin transacción". No se requiere anidamiento: cada movimiento abre a lo
// sumo una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
