// Package notify entrega eventos de cambio post-commit a suscriptores en
// proceso. La publicación es fire-and-forget: nunca falla ni bloquea, y un
// fallo de entrega jamás revierte la transacción ya confirmada.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
)

// Tipos de evento emitidos por el núcleo tras el commit.
const (
	KindEntryCreated     = "entry-created"
	KindEntryUpdated     = "entry-updated"
	KindEntryDeleted     = "entry-deleted"
	KindDispatchCreated  = "dispatch-created"
	KindDispatchUpdated  = "dispatch-updated"
	KindDispatchDeleted  = "dispatch-deleted"
	KindDispatchApproved = "dispatch-approved"
	KindRecoveryCreated  = "recovery-created"
	KindCyclicCreated    = "cyclic-task-created"
	KindCyclicCompleted  = "cyclic-task-completed"
	KindOrderCreated     = "order-created"
	KindInventoryChanged = "inventory-updated"
)

// Event evento de cambio: tipo, sitios afectados e identificador del
// movimiento o tarea. Oversell marca salidas con sobregiro clampado.
type Event struct {
	ID       string        `json:"id"`
	Kind     string        `json:"kind"`
	Sites    []domain.Site `json:"sites"`
	RefID    int64         `json:"refId"`
	Oversell bool          `json:"oversell,omitempty"`
	At       time.Time     `json:"at"`
}

// Publisher es lo único que el núcleo conoce del sistema de notificaciones.
type Publisher interface {
	Publish(ev Event)
}

// Hub fan-out en proceso hacia suscriptores (la capa de entrega en tiempo real
// se cuelga de Subscribe). Los suscriptores lentos pierden eventos en lugar de
// frenar al publicador.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
	log    zerolog.Logger
}

// NewHub construye el hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{subs: make(map[int]chan Event), log: log}
}

// Publish completa el evento (ID, timestamp) y lo reparte sin bloquear.
func (h *Hub) Publish(ev Event) {
	ev.ID = uuid.New().String()
	ev.At = time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Warn().
				Int("subscriber", id).
				Str("kind", ev.Kind).
				Msg("suscriptor lento, evento descartado")
		}
	}
	h.log.Debug().
		Str("kind", ev.Kind).
		Int64("ref_id", ev.RefID).
		Msg("evento publicado")
}

// Subscribe registra un suscriptor y devuelve su canal junto con la función de
// baja.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, 64)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
