package cyclic_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/cyclic"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/dto"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/repository"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/notify"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStock struct {
	totals map[string]int // code|site -> total
}

func (f *fakeStock) key(code string, site domain.Site) string { return code + "|" + string(site) }

func (f *fakeStock) Get(_ context.Context, code string, site domain.Site) (*entity.StockItem, error) {
	total := f.totals[f.key(code, site)]
	it := &entity.StockItem{Code: code, Site: site, StockNew: total}
	if total > 0 {
		it.ID = 1
	}
	it.Recompute()
	return it, nil
}

func (f *fakeStock) GetForUpdate(ctx context.Context, code string, site domain.Site) (*entity.StockItem, error) {
	return f.Get(ctx, code, site)
}
func (f *fakeStock) Increment(context.Context, string, string, *string, domain.Site, int, int) error {
	return nil
}
func (f *fakeStock) Save(context.Context, *entity.StockItem) error { return nil }
func (f *fakeStock) ListBySite(context.Context, domain.Site) ([]entity.StockItem, error) {
	return nil, nil
}
func (f *fakeStock) UpdateDetails(context.Context, int64, domain.Site, string, *string, int) error {
	return nil
}
func (f *fakeStock) Delete(context.Context, int64, domain.Site) error { return nil }

type fakeCyclicRepo struct {
	tasks      map[int64]*entity.CyclicTask
	items      map[int64][]entity.CyclicItem
	nextTaskID int64
	nextItemID int64
}

func newFakeCyclicRepo() *fakeCyclicRepo {
	return &fakeCyclicRepo{tasks: make(map[int64]*entity.CyclicTask), items: make(map[int64][]entity.CyclicItem)}
}

func (f *fakeCyclicRepo) Insert(_ context.Context, t *entity.CyclicTask) (int64, error) {
	f.nextTaskID++
	cp := *t
	cp.ID = f.nextTaskID
	f.tasks[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeCyclicRepo) InsertItems(_ context.Context, taskID int64, items []entity.CyclicItem) error {
	for _, it := range items {
		f.nextItemID++
		it.ID = f.nextItemID
		it.TaskID = taskID
		f.items[taskID] = append(f.items[taskID], it)
	}
	return nil
}

func (f *fakeCyclicRepo) Get(_ context.Context, id int64) (*entity.CyclicTask, error) {
	if t, ok := f.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCyclicRepo) List(_ context.Context, filter repository.CyclicTaskFilter) ([]entity.CyclicTask, error) {
	var out []entity.CyclicTask
	for _, t := range f.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.AssignedTo != "" && t.AssignedTo != filter.AssignedTo {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeCyclicRepo) ListItems(_ context.Context, taskID int64) ([]entity.CyclicItem, error) {
	return append([]entity.CyclicItem(nil), f.items[taskID]...), nil
}

func (f *fakeCyclicRepo) RecordCount(_ context.Context, taskID, itemID int64, physical, difference int) error {
	items := f.items[taskID]
	for i := range items {
		if items[i].ID == itemID {
			p, d := physical, difference
			items[i].PhysicalCount = &p
			items[i].Difference = &d
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeCyclicRepo) CountUncounted(_ context.Context, taskID int64) (int, error) {
	n := 0
	for _, it := range f.items[taskID] {
		if !it.Counted() {
			n++
		}
	}
	return n, nil
}

func (f *fakeCyclicRepo) Complete(_ context.Context, taskID int64, completedBy string) error {
	t, ok := f.tasks[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	t.Status = entity.TaskCompleted
	t.CompletedBy = &completedBy
	t.CompletedAt = &now
	return nil
}

func (f *fakeCyclicRepo) Stats(context.Context) (*entity.CyclicStats, error) {
	s := &entity.CyclicStats{TotalTasks: len(f.tasks)}
	for _, t := range f.tasks {
		if t.Status == entity.TaskPending {
			s.PendingTasks++
		} else {
			s.CompletedTasks++
		}
	}
	return s, nil
}

type fakeTx struct {
	repos repository.Repos
}

func (f *fakeTx) Run(_ context.Context, fn func(r repository.Repos) error) error {
	return fn(f.repos)
}

type nopPublisher struct{}

func (nopPublisher) Publish(notify.Event) {}

func newUseCase(stockTotals map[string]int) (*cyclic.UseCase, *fakeCyclicRepo) {
	stock := &fakeStock{totals: stockTotals}
	repo := newFakeCyclicRepo()
	repos := repository.Repos{Stock: stock, Cyclic: repo}
	tx := &fakeTx{repos: repos}
	return cyclic.NewUseCase(tx, repos, nopPublisher{}, zerolog.Nop()), repo
}

func taskRequest(items ...dto.CyclicLineRequest) dto.CreateCyclicTaskRequest {
	return dto.CreateCyclicTaskRequest{Date: "2026-03-10", Site: "CEDIS", AssignedTo: "Luis", Items: items}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTask_SnapshotTeoricoDelLedger(t *testing.T) {
	uc, _ := newUseCase(map[string]int{"BOT-01|CEDIS": 12, "CAS-02|CEDIS": 0})

	task, err := uc.CreateTask(context.Background(), taskRequest(
		dto.CyclicLineRequest{Code: "BOT-01", Description: "Botas"},
		dto.CyclicLineRequest{Code: "CAS-02", Description: "Casco"},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.TaskPending, task.Status)
	require.Len(t, task.Items, 2)
	assert.Equal(t, 12, task.Items[0].TheoreticalStock, "el teórico se toma del ledger, no del cliente")
	assert.Equal(t, 0, task.Items[1].TheoreticalStock, "un código sin registro cuenta con teórico cero")
}

func TestRecordCount_DiferenciaFirmada(t *testing.T) {
	uc, repo := newUseCase(map[string]int{"BOT-01|CEDIS": 10})
	task, err := uc.CreateTask(context.Background(), taskRequest(
		dto.CyclicLineRequest{Code: "BOT-01", Description: "Botas"}))
	require.NoError(t, err)

	err = uc.RecordCount(context.Background(), task.ID, dto.RecordCountRequest{
		ItemID: task.Items[0].ID, PhysicalCount: 7})
	require.NoError(t, err)

	items, _ := repo.ListItems(context.Background(), task.ID)
	require.NotNil(t, items[0].Difference)
	assert.Equal(t, -3, *items[0].Difference, "diferencia = físico - teórico, firmada")
}

func TestRecordCount_LineaAjena(t *testing.T) {
	uc, _ := newUseCase(map[string]int{"BOT-01|CEDIS": 10})
	task, err := uc.CreateTask(context.Background(), taskRequest(
		dto.CyclicLineRequest{Code: "BOT-01", Description: "Botas"}))
	require.NoError(t, err)

	err = uc.RecordCount(context.Background(), task.ID, dto.RecordCountRequest{ItemID: 999, PhysicalCount: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteTask_RechazaConteoIncompleto(t *testing.T) {
	uc, _ := newUseCase(map[string]int{"BOT-01|CEDIS": 10, "CAS-02|CEDIS": 5})
	task, err := uc.CreateTask(context.Background(), taskRequest(
		dto.CyclicLineRequest{Code: "BOT-01", Description: "Botas"},
		dto.CyclicLineRequest{Code: "CAS-02", Description: "Casco"},
	))
	require.NoError(t, err)

	err = uc.CompleteTask(context.Background(), task.ID, "Luis", dto.CompleteCyclicTaskRequest{})
	assert.ErrorIs(t, err, domain.ErrIncompleteCount)

	got, err := uc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskPending, got.Status, "el rechazo no cambia el estado")
}

func TestCompleteTask_ConConteosEnElMismoRequest(t *testing.T) {
	uc, _ := newUseCase(map[string]int{"BOT-01|CEDIS": 10})
	task, err := uc.CreateTask(context.Background(), taskRequest(
		dto.CyclicLineRequest{Code: "BOT-01", Description: "Botas"}))
	require.NoError(t, err)

	err = uc.CompleteTask(context.Background(), task.ID, "Luis", dto.CompleteCyclicTaskRequest{
		Counts: []dto.RecordCountRequest{{ItemID: task.Items[0].ID, PhysicalCount: 10}},
	})
	require.NoError(t, err)

	got, err := uc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCompleted, got.Status)
	require.NotNil(t, got.CompletedBy)
	assert.Equal(t, "Luis", *got.CompletedBy)
}

func TestCompleteTask_TransicionDeUnaSolaVia(t *testing.T) {
	uc, _ := newUseCase(map[string]int{"BOT-01|CEDIS": 10})
	task, err := uc.CreateTask(context.Background(), taskRequest(
		dto.CyclicLineRequest{Code: "BOT-01", Description: "Botas"}))
	require.NoError(t, err)

	complete := dto.CompleteCyclicTaskRequest{
		Counts: []dto.RecordCountRequest{{ItemID: task.Items[0].ID, PhysicalCount: 10}},
	}
	require.NoError(t, uc.CompleteTask(context.Background(), task.ID, "Luis", complete))

	err = uc.CompleteTask(context.Background(), task.ID, "Luis", complete)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "completar dos veces es inválido")

	err = uc.RecordCount(context.Background(), task.ID, dto.RecordCountRequest{
		ItemID: task.Items[0].ID, PhysicalCount: 4})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una tarea completada es inmutable")
}

func TestCreateTask_Validaciones(t *testing.T) {
	uc, _ := newUseCase(nil)

	_, err := uc.CreateTask(context.Background(), dto.CreateCyclicTaskRequest{
		Date: "2026-03-10", Site: "CEDIS", AssignedTo: "Luis"})
	assert.ErrorIs(t, err, domain.ErrValidation, "sin artículos")

	_, err = uc.CreateTask(context.Background(), dto.CreateCyclicTaskRequest{
		Date: "2026-03-10", Site: "OTRO", AssignedTo: "Luis",
		Items: []dto.CyclicLineRequest{{Code: "A"}}})
	assert.ErrorIs(t, err, domain.ErrValidation, "sitio inválido")

	_, err = uc.CreateTask(context.Background(), dto.CreateCyclicTaskRequest{
		Date: "2026-03-10", Site: "CEDIS",
		Items: []dto.CyclicLineRequest{{Code: "A"}}})
	assert.ErrorIs(t, err, domain.ErrValidation, "sin asignado")
}
