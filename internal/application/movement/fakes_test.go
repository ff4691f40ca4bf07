package movement_test

import (
	"context"
	"fmt"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/notify"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los repositorios. El fakeTxRunner toma un snapshot del
// estado antes de cada callback y lo restaura si falla, imitando el rollback
// real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	items  map[string]*entity.StockItem // key: code|site
	nextID int64
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: make(map[string]*entity.StockItem)}
}

func stockKey(code string, site domain.Site) string { return code + "|" + string(site) }

func (f *fakeStockRepo) seed(code string, site domain.Site, stockNew, stockRecovered, stockMin int) {
	f.nextID++
	it := &entity.StockItem{
		ID: f.nextID, Code: code, Description: "art " + code,
		StockNew: stockNew, StockRecovered: stockRecovered, StockMin: stockMin, Site: site,
	}
	it.Recompute()
	f.items[stockKey(code, site)] = it
}

func (f *fakeStockRepo) Get(_ context.Context, code string, site domain.Site) (*entity.StockItem, error) {
	if it, ok := f.items[stockKey(code, site)]; ok {
		cp := *it
		return &cp, nil
	}
	return &entity.StockItem{Code: code, Site: site, Status: entity.StatusOutOfStock}, nil
}

func (f *fakeStockRepo) GetForUpdate(ctx context.Context, code string, site domain.Site) (*entity.StockItem, error) {
	return f.Get(ctx, code, site)
}

func (f *fakeStockRepo) Increment(_ context.Context, code, description string, size *string, site domain.Site, newDelta, recoveredDelta int) error {
	key := stockKey(code, site)
	it, ok := f.items[key]
	if !ok {
		f.nextID++
		it = &entity.StockItem{ID: f.nextID, Code: code, Description: description, Size: size, Site: site}
		f.items[key] = it
	}
	it.StockNew = maxInt(0, it.StockNew+newDelta)
	it.StockRecovered = maxInt(0, it.StockRecovered+recoveredDelta)
	it.Recompute()
	return nil
}

func (f *fakeStockRepo) Save(_ context.Context, item *entity.StockItem) error {
	cp := *item
	cp.Recompute()
	if cp.ID == 0 {
		f.nextID++
		cp.ID = f.nextID
	}
	f.items[stockKey(cp.Code, cp.Site)] = &cp
	return nil
}

func (f *fakeStockRepo) ListBySite(_ context.Context, site domain.Site) ([]entity.StockItem, error) {
	var out []entity.StockItem
	for _, it := range f.items {
		if it.Site == site {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) UpdateDetails(_ context.Context, id int64, site domain.Site, description string, size *string, stockMin int) error {
	for _, it := range f.items {
		if it.ID == id && it.Site == site {
			it.Description, it.Size, it.StockMin = description, size, stockMin
			it.Recompute()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStockRepo) Delete(_ context.Context, id int64, site domain.Site) error {
	for k, it := range f.items {
		if it.ID == id && it.Site == site {
			delete(f.items, k)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStockRepo) clone() map[string]*entity.StockItem {
	cp := make(map[string]*entity.StockItem, len(f.items))
	for k, v := range f.items {
		item := *v
		cp[k] = &item
	}
	return cp
}

// total devuelve nuevo+recuperado de un artículo (0 si no existe).
func (f *fakeStockRepo) total(code string, site domain.Site) int {
	if it, ok := f.items[stockKey(code, site)]; ok {
		return it.Total()
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ── Entradas ──────────────────────────────────────────────────────────────────

type fakeEntryRepo struct {
	headers    map[int64]*entity.Entry
	items      map[int64][]entity.EntryItem
	nextID     int64
	failInsert error // inyectable para probar rollback
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{headers: make(map[int64]*entity.Entry), items: make(map[int64][]entity.EntryItem)}
}

func (f *fakeEntryRepo) Insert(_ context.Context, e *entity.Entry) (int64, error) {
	f.nextID++
	cp := *e
	cp.ID = f.nextID
	f.headers[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeEntryRepo) InsertItems(_ context.Context, entryID int64, items []entity.EntryItem) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	f.items[entryID] = append([]entity.EntryItem(nil), items...)
	return nil
}

func (f *fakeEntryRepo) Get(_ context.Context, id int64) (*entity.Entry, error) {
	if e, ok := f.headers[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEntryRepo) ListItems(_ context.Context, entryID int64) ([]entity.EntryItem, error) {
	return append([]entity.EntryItem(nil), f.items[entryID]...), nil
}

func (f *fakeEntryRepo) DeleteItems(_ context.Context, entryID int64) error {
	delete(f.items, entryID)
	return nil
}

func (f *fakeEntryRepo) UpdateHeader(_ context.Context, e *entity.Entry) error {
	if _, ok := f.headers[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	f.headers[e.ID] = &cp
	return nil
}

func (f *fakeEntryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.headers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.headers, id)
	return nil
}

func (f *fakeEntryRepo) List(_ context.Context, site *domain.Site) ([]entity.Entry, error) {
	var out []entity.Entry
	for _, e := range f.headers {
		if site == nil || e.Site == *site {
			out = append(out, *e)
		}
	}
	return out, nil
}

// ── Salidas ───────────────────────────────────────────────────────────────────

type fakeDispatchRepo struct {
	headers map[int64]*entity.Dispatch
	items   map[int64][]entity.DispatchItem
	nextID  int64
}

func newFakeDispatchRepo() *fakeDispatchRepo {
	return &fakeDispatchRepo{headers: make(map[int64]*entity.Dispatch), items: make(map[int64][]entity.DispatchItem)}
}

func (f *fakeDispatchRepo) Insert(_ context.Context, d *entity.Dispatch) (int64, error) {
	f.nextID++
	cp := *d
	cp.ID = f.nextID
	f.headers[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeDispatchRepo) InsertItems(_ context.Context, dispatchID int64, items []entity.DispatchItem) error {
	f.items[dispatchID] = append([]entity.DispatchItem(nil), items...)
	return nil
}

func (f *fakeDispatchRepo) Get(_ context.Context, id int64) (*entity.Dispatch, error) {
	if d, ok := f.headers[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDispatchRepo) ListItems(_ context.Context, dispatchID int64) ([]entity.DispatchItem, error) {
	return append([]entity.DispatchItem(nil), f.items[dispatchID]...), nil
}

func (f *fakeDispatchRepo) DeleteItems(_ context.Context, dispatchID int64) error {
	delete(f.items, dispatchID)
	return nil
}

func (f *fakeDispatchRepo) UpdateHeader(_ context.Context, d *entity.Dispatch) error {
	if _, ok := f.headers[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	f.headers[d.ID] = &cp
	return nil
}

func (f *fakeDispatchRepo) UpdateStatus(_ context.Context, id int64, status, approvedBy string) error {
	d, ok := f.headers[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	d.ApprovedBy = &approvedBy
	return nil
}

func (f *fakeDispatchRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.headers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.headers, id)
	return nil
}

func (f *fakeDispatchRepo) List(_ context.Context, site *domain.Site) ([]entity.Dispatch, error) {
	var out []entity.Dispatch
	for _, d := range f.headers {
		if site == nil || d.Site == *site {
			out = append(out, *d)
		}
	}
	return out, nil
}

// ── Recuperaciones ────────────────────────────────────────────────────────────

type fakeRecoveryRepo struct {
	headers map[int64]*entity.Recovery
	items   map[int64][]entity.RecoveryItem
	nextID  int64
}

func newFakeRecoveryRepo() *fakeRecoveryRepo {
	return &fakeRecoveryRepo{headers: make(map[int64]*entity.Recovery), items: make(map[int64][]entity.RecoveryItem)}
}

func (f *fakeRecoveryRepo) Insert(_ context.Context, r *entity.Recovery) (int64, error) {
	f.nextID++
	cp := *r
	cp.ID = f.nextID
	f.headers[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeRecoveryRepo) InsertItems(_ context.Context, recoveryID int64, items []entity.RecoveryItem) error {
	f.items[recoveryID] = append([]entity.RecoveryItem(nil), items...)
	return nil
}

func (f *fakeRecoveryRepo) Get(_ context.Context, id int64) (*entity.Recovery, error) {
	if r, ok := f.headers[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRecoveryRepo) ListItems(_ context.Context, recoveryID int64) ([]entity.RecoveryItem, error) {
	return append([]entity.RecoveryItem(nil), f.items[recoveryID]...), nil
}

func (f *fakeRecoveryRepo) List(_ context.Context, site *domain.Site) ([]entity.Recovery, error) {
	var out []entity.Recovery
	for id, r := range f.headers {
		if site == nil {
			out = append(out, *r)
			continue
		}
		for _, it := range f.items[id] {
			if it.Destination.IsDiscard() || it.Destination.Site() == *site {
				out = append(out, *r)
				break
			}
		}
	}
	return out, nil
}

// ── TxRunner y publisher ──────────────────────────────────────────────────────

type fakeTxRunner struct {
	stock      *fakeStockRepo
	entries    *fakeEntryRepo
	dispatches *fakeDispatchRepo
	recoveries *fakeRecoveryRepo
	runs       int
}

func (f *fakeTxRunner) repos() repository.Repos {
	return repository.Repos{
		Stock:      f.stock,
		Entries:    f.entries,
		Dispatches: f.dispatches,
		Recoveries: f.recoveries,
	}
}

// Run imita el contrato transaccional: si el callback falla, el estado del
// ledger vuelve al snapshot previo.
func (f *fakeTxRunner) Run(_ context.Context, fn func(r repository.Repos) error) error {
	f.runs++
	stockSnap := f.stock.clone()
	entrySnap := cloneMap(f.entries.headers)
	entryItemsSnap := cloneSliceMap(f.entries.items)
	dispatchSnap := cloneMap(f.dispatches.headers)
	dispatchItemsSnap := cloneSliceMap(f.dispatches.items)
	if err := fn(f.repos()); err != nil {
		f.stock.items = stockSnap
		f.entries.headers = entrySnap
		f.entries.items = entryItemsSnap
		f.dispatches.headers = dispatchSnap
		f.dispatches.items = dispatchItemsSnap
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]*V) map[K]*V {
	cp := make(map[K]*V, len(m))
	for k, v := range m {
		val := *v
		cp[k] = &val
	}
	return cp
}

func cloneSliceMap[K comparable, V any](m map[K][]V) map[K][]V {
	cp := make(map[K][]V, len(m))
	for k, v := range m {
		cp[k] = append([]V(nil), v...)
	}
	return cp
}

type fakePublisher struct {
	events []notify.Event
}

func (f *fakePublisher) Publish(ev notify.Event) { f.events = append(f.events, ev) }

func (f *fakePublisher) last() (notify.Event, error) {
	if len(f.events) == 0 {
		return notify.Event{}, fmt.Errorf("no hay eventos publicados")
	}
	return f.events[len(f.events)-1], nil
}

// newEngine arma el conjunto de fakes listos para los tests.
func newEngine() (*fakeTxRunner, *fakePublisher) {
	return &fakeTxRunner{
		stock:      newFakeStockRepo(),
		entries:    newFakeEntryRepo(),
		dispatches: newFakeDispatchRepo(),
		recoveries: newFakeRecoveryRepo(),
	}, &fakePublisher{}
}
