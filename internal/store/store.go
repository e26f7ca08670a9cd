// Package store holds the session snapshot: the last-known-good copy of every
// backend collection, plus the financial rollups and the show-values
// preference. Loaders are read-through (the backend stays the source of
// truth), local appends are optimistic patches, and every successful mutation
// is persisted to durable local storage as one JSON blob.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// snapshotKey is the single durable-storage key. The blob layout matches what
// the web console has always written, so an upgraded deployment restores the
// old snapshot as-is.
const snapshotKey = "appCache"

// Materiais groups the material list with the server-computed aggregates.
// Valor and Quantidade come from /Materiais/resumo and are never recomputed
// here: after a local append they go stale until the next LoadMateriais.
type Materiais struct {
	Materiais  []domain.Material `json:"materiais"`
	Valor      float64           `json:"valor"`
	Quantidade float64           `json:"quantidade"`
}

// Loaded tracks which slices have completed at least one successful load.
// An empty slice with a false flag means "not loaded yet"; with a true flag
// it means the tenant genuinely has no rows.
type Loaded struct {
	Atelie        bool `json:"atelie"`
	Materiais     bool `json:"materiais"`
	Resumo        bool `json:"resumo"`
	PecasProntas  bool `json:"pecasProntas"`
	Vendas        bool `json:"vendas"`
	Encomendas    bool `json:"encomendas"`
	Listas        bool `json:"listas"`
	Movimentacoes bool `json:"movimentacoes"`
}

// Snapshot is the persisted aggregate.
type Snapshot struct {
	Atelie        domain.Atelie                `json:"atelie"`
	Material      Materiais                    `json:"material"`
	Resumo        domain.ResumoFinanceiro      `json:"resumo"`
	PecasProntas  []domain.PecaPronta          `json:"pecasProntas"`
	Vendas        []domain.Venda               `json:"vendas"`
	Encomendas    []domain.Encomenda           `json:"encomendas"`
	Listas        []domain.TodoLista           `json:"listas"`
	Movimentacoes []domain.MovimentacaoEstoque `json:"movimentacoes"`
	MostrarValor  bool                         `json:"mostrarValor"`
	Carregado     Loaded                       `json:"carregado"`
}

// Store is the session snapshot with its loaders and mutators. All access
// goes through the mutex: unlike the browser original, this runs on a
// multi-threaded runtime and two handlers may touch the snapshot at once.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot

	api     port.BackendAPI
	storage port.SnapshotStorage
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// New creates an empty store. Call Restore to rehydrate the previous session
// before the first load.
func New(api port.BackendAPI, storage port.SnapshotStorage, metrics *observability.Metrics, logger *zap.Logger) *Store {
	return &Store{
		api:     api,
		storage: storage,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// ============================================================
// Persistence
// ============================================================

// Restore rehydrates the snapshot from durable storage, shallow-merging the
// blob over the in-memory defaults: top-level fields present in the blob
// overwrite wholesale, absent fields keep their defaults. A missing or
// corrupt blob leaves the defaults untouched — restore is best-effort and
// never fails the boot.
func (s *Store) Restore() {
	blob, err := s.storage.Read(snapshotKey)
	if err != nil {
		s.logger.Warn("store: failed to read snapshot", zap.Error(err))
		return
	}
	if blob == nil {
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(blob, &fields); err != nil {
		s.logger.Warn("store: corrupt snapshot, keeping defaults", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merge(fields, "atelie", &s.snap.Atelie, s.logger)
	merge(fields, "material", &s.snap.Material, s.logger)
	merge(fields, "resumo", &s.snap.Resumo, s.logger)
	merge(fields, "pecasProntas", &s.snap.PecasProntas, s.logger)
	merge(fields, "vendas", &s.snap.Vendas, s.logger)
	merge(fields, "encomendas", &s.snap.Encomendas, s.logger)
	merge(fields, "listas", &s.snap.Listas, s.logger)
	merge(fields, "movimentacoes", &s.snap.Movimentacoes, s.logger)
	merge(fields, "mostrarValor", &s.snap.MostrarValor, s.logger)
	merge(fields, "carregado", &s.snap.Carregado, s.logger)

	s.metrics.IncrSnapshotOp("restore")
	s.logger.Info("store: snapshot restored from local storage")
}

// merge replaces *dst wholesale when key is present in the blob. Replacing
// the whole field (rather than unmarshalling into the existing value) keeps
// the original shallow-merge semantics: a partially-shaped nested object
// zeroes the fields it omits instead of inheriting defaults.
func merge[T any](fields map[string]json.RawMessage, key string, dst *T, logger *zap.Logger) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("store: skipping unreadable snapshot field", zap.String("field", key), zap.Error(err))
		return
	}
	*dst = v
}

// Save serializes the whole aggregate to durable storage. A write failure is
// logged and counted but never surfaced: the in-memory state is already
// updated, it just is not durable.
func (s *Store) Save() {
	s.mu.RLock()
	blob, err := json.Marshal(s.snap)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Error("store: failed to serialize snapshot", zap.Error(err))
		s.metrics.IncrSnapshotOp("persist_error")
		return
	}

	if err := s.storage.Write(snapshotKey, blob); err != nil {
		s.logger.Error("store: failed to persist snapshot", zap.Error(err))
		s.metrics.IncrSnapshotOp("persist_error")
		return
	}
	s.metrics.IncrSnapshotOp("persist")
}

// Clear wipes durable storage only. The in-memory snapshot keeps its last
// value until the process restarts; callers that need an empty store after
// logout must recreate it.
func (s *Store) Clear() {
	if err := s.storage.Delete(snapshotKey); err != nil {
		s.logger.Error("store: failed to clear snapshot storage", zap.Error(err))
	}
}

// ============================================================
// Bulk load
// ============================================================

// LoadAll fetches every resource family in parallel and overwrites the whole
// aggregate at once. It is fail-fast and all-or-nothing: if any fetch fails,
// the error is returned and the snapshot is left exactly as it was — no
// partial merge. The financial rollups are loaded for the current month/year.
func (s *Store) LoadAll(ctx context.Context) error {
	now := s.now()
	ano, mes := now.Year(), int(now.Month())

	var (
		atelie        *domain.Atelie
		materiais     []domain.Material
		resumoEstoque *domain.ResumoEstoque
		pecas         []domain.PecaPronta
		vendas        []domain.Venda
		encomendas    []domain.Encomenda
		resumoMensal  []byte
		resumoAnual   *domain.ResumoAnual
		listas        []domain.TodoLista
		movimentacoes []domain.MovimentacaoEstoque
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { atelie, err = s.api.GetAtelie(gctx); return })
	g.Go(func() (err error) { materiais, err = s.api.ListMateriais(gctx); return })
	g.Go(func() (err error) { resumoEstoque, err = s.api.GetResumoEstoque(gctx); return })
	g.Go(func() (err error) { pecas, err = s.api.ListPecasProntas(gctx); return })
	g.Go(func() (err error) { vendas, err = s.api.ListVendas(gctx); return })
	g.Go(func() (err error) { encomendas, err = s.api.ListEncomendas(gctx); return })
	g.Go(func() (err error) { resumoMensal, err = s.api.GetResumoMensal(gctx, ano, mes); return })
	g.Go(func() (err error) { resumoAnual, err = s.api.GetResumoAnual(gctx, ano); return })
	g.Go(func() (err error) { listas, err = s.api.ListListas(gctx); return })
	g.Go(func() (err error) { movimentacoes, err = s.api.ListMovimentacoes(gctx, 0); return })

	if err := g.Wait(); err != nil {
		s.metrics.IncrSnapshotOp("load_error")
		s.logger.Error("store: bulk load failed, snapshot unchanged", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.snap.Atelie = *atelie
	s.snap.Material = Materiais{
		Materiais:  materiais,
		Valor:      resumoEstoque.ValorTotalEstoque,
		Quantidade: resumoEstoque.QuantidadeTotalPecas,
	}
	s.snap.Resumo = domain.ResumoFinanceiro{
		Mensal: resumoMensal,
		Anual:  mustRaw(resumoAnual),
	}
	s.snap.PecasProntas = pecas
	s.snap.Vendas = vendas
	s.snap.Encomendas = encomendas
	s.snap.Listas = listas
	s.snap.Movimentacoes = movimentacoes
	s.snap.Carregado = Loaded{
		Atelie: true, Materiais: true, Resumo: true, PecasProntas: true,
		Vendas: true, Encomendas: true, Listas: true, Movimentacoes: true,
	}
	s.mu.Unlock()

	s.metrics.IncrSnapshotOp("bulk_load")
	s.Save()
	return nil
}

func mustRaw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// ============================================================
// Per-category loads — wholesale overwrite of one slice, persist on success
// ============================================================

// LoadMateriais refreshes the material list and the server-side aggregates
// together, matching the original console behavior.
func (s *Store) LoadMateriais(ctx context.Context) error {
	materiais, err := s.api.ListMateriais(ctx)
	if err != nil {
		return s.loadFailed("materiais", err)
	}
	resumo, err := s.api.GetResumoEstoque(ctx)
	if err != nil {
		return s.loadFailed("materiais", err)
	}

	s.mu.Lock()
	s.snap.Material = Materiais{
		Materiais:  materiais,
		Valor:      resumo.ValorTotalEstoque,
		Quantidade: resumo.QuantidadeTotalPecas,
	}
	s.snap.Carregado.Materiais = true
	s.mu.Unlock()

	s.Save()
	return nil
}

func (s *Store) LoadMovimentacoes(ctx context.Context) error {
	rows, err := s.api.ListMovimentacoes(ctx, 0)
	if err != nil {
		return s.loadFailed("movimentacoes", err)
	}

	s.mu.Lock()
	s.snap.Movimentacoes = rows
	s.snap.Carregado.Movimentacoes = true
	s.mu.Unlock()

	s.Save()
	return nil
}

// LoadResumo refreshes both financial rollups. Zero ano/mes default to the
// current date.
func (s *Store) LoadResumo(ctx context.Context, ano, mes int) error {
	now := s.now()
	if ano == 0 {
		ano = now.Year()
	}
	if mes == 0 {
		mes = int(now.Month())
	}

	mensal, err := s.api.GetResumoMensal(ctx, ano, mes)
	if err != nil {
		return s.loadFailed("resumo", err)
	}
	anual, err := s.api.GetResumoAnual(ctx, ano)
	if err != nil {
		return s.loadFailed("resumo", err)
	}

	s.mu.Lock()
	s.snap.Resumo = domain.ResumoFinanceiro{Mensal: mensal, Anual: mustRaw(anual)}
	s.snap.Carregado.Resumo = true
	s.mu.Unlock()

	s.Save()
	return nil
}

func (s *Store) LoadPecasProntas(ctx context.Context) error {
	rows, err := s.api.ListPecasProntas(ctx)
	if err != nil {
		return s.loadFailed("pecasProntas", err)
	}

	s.mu.Lock()
	s.snap.PecasProntas = rows
	s.snap.Carregado.PecasProntas = true
	s.mu.Unlock()

	s.Save()
	return nil
}

func (s *Store) LoadVendas(ctx context.Context) error {
	rows, err := s.api.ListVendas(ctx)
	if err != nil {
		return s.loadFailed("vendas", err)
	}

	s.mu.Lock()
	s.snap.Vendas = rows
	s.snap.Carregado.Vendas = true
	s.mu.Unlock()

	s.Save()
	return nil
}

func (s *Store) LoadEncomendas(ctx context.Context) error {
	rows, err := s.api.ListEncomendas(ctx)
	if err != nil {
		return s.loadFailed("encomendas", err)
	}

	s.mu.Lock()
	s.snap.Encomendas = rows
	s.snap.Carregado.Encomendas = true
	s.mu.Unlock()

	s.Save()
	return nil
}

func (s *Store) LoadListas(ctx context.Context) error {
	rows, err := s.api.ListListas(ctx)
	if err != nil {
		return s.loadFailed("listas", err)
	}

	s.mu.Lock()
	s.snap.Listas = rows
	s.snap.Carregado.Listas = true
	s.mu.Unlock()

	s.Save()
	return nil
}

func (s *Store) LoadAtelie(ctx context.Context) error {
	a, err := s.api.GetAtelie(ctx)
	if err != nil {
		return s.loadFailed("atelie", err)
	}

	s.mu.Lock()
	s.snap.Atelie = *a
	s.snap.Carregado.Atelie = true
	s.mu.Unlock()

	s.Save()
	return nil
}

// loadFailed logs and counts a failed per-category load. The corresponding
// slice keeps its previous (stale-but-valid) value and nothing is persisted.
func (s *Store) loadFailed(slice string, err error) error {
	s.metrics.IncrSnapshotOp("load_error")
	s.logger.Warn("store: load failed, slice unchanged",
		zap.String("slice", slice),
		zap.Error(err),
	)
	return err
}

// ============================================================
// Local appends — optimistic patches after a create
// ============================================================

// AppendMaterial pushes a freshly created material onto the list without a
// refetch. The Valor/Quantidade aggregates are deliberately left untouched:
// they stay stale until the next LoadMateriais.
func (s *Store) AppendMaterial(m domain.Material) {
	s.mu.Lock()
	s.snap.Material.Materiais = append(s.snap.Material.Materiais, m)
	s.mu.Unlock()

	s.Save()
}

// AppendEncomenda pushes a freshly created order onto the list.
func (s *Store) AppendEncomenda(e domain.Encomenda) {
	s.mu.Lock()
	s.snap.Encomendas = append(s.snap.Encomendas, e)
	s.mu.Unlock()

	s.Save()
}

// SetMostrarValor flips the show-financial-values preference and persists.
func (s *Store) SetMostrarValor(v bool) {
	s.mu.Lock()
	s.snap.MostrarValor = v
	s.mu.Unlock()

	s.Save()
}

// ============================================================
// Read access — copy-out under the read lock
// ============================================================

// Snapshot returns a copy of the whole aggregate. Top-level slices are
// copied; nested slices are shared and must be treated as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	snap.Material.Materiais = copySlice(s.snap.Material.Materiais)
	snap.PecasProntas = copySlice(s.snap.PecasProntas)
	snap.Vendas = copySlice(s.snap.Vendas)
	snap.Encomendas = copySlice(s.snap.Encomendas)
	snap.Listas = copySlice(s.snap.Listas)
	snap.Movimentacoes = copySlice(s.snap.Movimentacoes)
	return snap
}

func (s *Store) Atelie() domain.Atelie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Atelie
}

func (s *Store) Materiais() Materiais {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.snap.Material
	m.Materiais = copySlice(m.Materiais)
	return m
}

func (s *Store) Resumo() domain.ResumoFinanceiro {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Resumo
}

func (s *Store) PecasProntas() []domain.PecaPronta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.snap.PecasProntas)
}

func (s *Store) Vendas() []domain.Venda {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.snap.Vendas)
}

func (s *Store) Encomendas() []domain.Encomenda {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.snap.Encomendas)
}

func (s *Store) Listas() []domain.TodoLista {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.snap.Listas)
}

func (s *Store) Movimentacoes() []domain.MovimentacaoEstoque {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.snap.Movimentacoes)
}

func (s *Store) MostrarValor() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.MostrarValor
}

// Carregado reports which slices have completed at least one load.
func (s *Store) Carregado() Loaded {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Carregado
}

func copySlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
