// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service and
// store layers from the concrete HTTP accessors and storage.
package port

import (
	"context"
	"io"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// TokenSource supplies the current session bearer token. Implementations may
// refresh lazily; an empty token with nil error means "no session", and the
// gateway sends the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SnapshotStorage is the durable local storage holding the serialized
// session snapshot as one blob under one fixed key. Read is best-effort:
// a missing key returns (nil, nil).
type SnapshotStorage interface {
	Read(key string) ([]byte, error)
	Write(key string, blob []byte) error
	Delete(key string) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// MateriaisAPI maps 1:1 to the /Materiais endpoints.
type MateriaisAPI interface {
	ListMateriais(ctx context.Context) ([]domain.Material, error)
	GetMaterial(ctx context.Context, id int) (*domain.Material, error)
	ListMateriaisByCategoria(ctx context.Context, c domain.CategoriaMaterial) ([]domain.Material, error)
	GetResumoEstoque(ctx context.Context) (*domain.ResumoEstoque, error)
	CreateMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error)
	UpdateMaterial(ctx context.Context, id int, m *domain.Material) (*domain.Material, error)
	DeleteMaterial(ctx context.Context, id int) error
}

// EstoqueAPI maps 1:1 to the /Estoque endpoints.
type EstoqueAPI interface {
	RegistrarEntrada(ctx context.Context, req *domain.RegistrarMovimentacaoRequest) (*domain.MovimentacaoEstoque, error)
	RegistrarSaida(ctx context.Context, req *domain.RegistrarMovimentacaoRequest) (*domain.MovimentacaoEstoque, error)
	ListMovimentacoes(ctx context.Context, materialID int) ([]domain.MovimentacaoEstoque, error)
	ListMovimentacoesPeriodo(ctx context.Context, dataInicio, dataFim string) ([]domain.MovimentacaoEstoque, error)
}

// FinanceiroAPI maps 1:1 to the /Financeiro endpoints.
type FinanceiroAPI interface {
	GetResumoAnual(ctx context.Context, ano int) (*domain.ResumoAnual, error)
	GetResumoMensal(ctx context.Context, ano, mes int) ([]byte, error)
	ListMovimentacoesFinanceiras(ctx context.Context, ano, mes int) ([]domain.MovimentacaoFinanceira, error)
	CreateMovimentacaoFinanceira(ctx context.Context, m *domain.MovimentacaoFinanceira) (*domain.MovimentacaoFinanceira, error)
	UpdateMovimentacaoFinanceira(ctx context.Context, id int, m *domain.MovimentacaoFinanceira) (*domain.MovimentacaoFinanceira, error)
	DeleteMovimentacaoFinanceira(ctx context.Context, id int) error
	ImportarCSV(ctx context.Context, ano, mes int, filename string, file io.Reader) (*domain.ImportacaoCSVResult, error)
}

// VendasAPI maps 1:1 to the /Vendas endpoints.
type VendasAPI interface {
	RegistrarVenda(ctx context.Context, v *domain.Venda) (*domain.Venda, error)
	ListVendas(ctx context.Context) ([]domain.Venda, error)
	ListVendasPeriodo(ctx context.Context, dataInicio, dataFim string) ([]domain.Venda, error)
	GetTotalVendas(ctx context.Context, dataInicio, dataFim string) (*domain.TotalVendas, error)
	DeleteVenda(ctx context.Context, id int) error
}

// EncomendasAPI maps 1:1 to the /Encomendas endpoints.
type EncomendasAPI interface {
	CreateEncomenda(ctx context.Context, e *domain.Encomenda) (*domain.Encomenda, error)
	ListEncomendas(ctx context.Context) ([]domain.Encomenda, error)
	GetEncomenda(ctx context.Context, id int) (*domain.Encomenda, error)
	UpdateStatusEncomenda(ctx context.Context, id int, status domain.StatusEncomenda) (*domain.Encomenda, error)
	DeleteEncomenda(ctx context.Context, id int) error
}

// PecasProntasAPI maps 1:1 to the /PecasProntas endpoints.
type PecasProntasAPI interface {
	CreatePecaPronta(ctx context.Context, req *domain.CriarPecaProntaRequest) (*domain.PecaPronta, error)
	ListPecasProntas(ctx context.Context) ([]domain.PecaPronta, error)
	ListPecasNaoVendidas(ctx context.Context) ([]domain.PecaPronta, error)
	ListPecasByTipo(ctx context.Context, tipo domain.TipoPecaPronta) ([]domain.PecaPronta, error)
	GetPecaPronta(ctx context.Context, id int) (*domain.PecaPronta, error)
	UpdatePecaPronta(ctx context.Context, id int, req *domain.AtualizarPecaProntaRequest) (*domain.PecaPronta, error)
	MarcarComoVendida(ctx context.Context, id int) (*domain.PecaPronta, error)
	AdicionarMaterial(ctx context.Context, pecaID int, req *domain.AdicionarMaterialRequest) (*domain.PecaPronta, error)
	RemoverMaterial(ctx context.Context, pecaID, materialID int) error
	DeletePecaPronta(ctx context.Context, id int) error
}

// TodoAPI maps 1:1 to the /TodoList endpoints.
type TodoAPI interface {
	CreateLista(ctx context.Context, titulo string) (*domain.TodoLista, error)
	ListListas(ctx context.Context) ([]domain.TodoLista, error)
	GetLista(ctx context.Context, id int) (*domain.TodoLista, error)
	AdicionarTarefa(ctx context.Context, listaID int, descricao string) (*domain.Tarefa, error)
	ConcluirTarefa(ctx context.Context, tarefaID int) error
	DesmarcarTarefa(ctx context.Context, tarefaID int) error
	UpdateTarefa(ctx context.Context, tarefaID int, descricao string) error
	DeleteTarefa(ctx context.Context, tarefaID int) error
	DeleteLista(ctx context.Context, id int) error
}

// AtelieAPI maps 1:1 to the /Atelie endpoints.
type AtelieAPI interface {
	GetAtelie(ctx context.Context) (*domain.Atelie, error)
	UpdateAtelie(ctx context.Context, upd *domain.AtelieUpdate) (*domain.Atelie, error)
	AssinaturaAtiva(ctx context.Context) (*domain.AssinaturaAtiva, error)
	RegistrarAtelie(ctx context.Context, req *domain.RegistrarAtelieRequest) error
	IniciarAssinatura(ctx context.Context, periodicidade string) (*domain.IniciarAssinaturaResponse, error)
}

// BackendAPI aggregates every resource accessor. Implemented by the api
// package against the real ateliê backend; mocked in service and store tests.
type BackendAPI interface {
	MateriaisAPI
	EstoqueAPI
	FinanceiroAPI
	VendasAPI
	EncomendasAPI
	PecasProntasAPI
	TodoAPI
	AtelieAPI
}
