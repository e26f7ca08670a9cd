package domain

import "encoding/json"

// ============================================================
// Financeiro (finance entries and server-side rollups)
// ============================================================

// ContextoFinanceiro tags an entry as business or personal.
type ContextoFinanceiro int

const (
	ContextoLoja    ContextoFinanceiro = 1
	ContextoPessoal ContextoFinanceiro = 2
)

// MeioPagamento is the payment method enum.
type MeioPagamento int

const (
	MeioCartaoCredito MeioPagamento = 1
	MeioCartaoDebito  MeioPagamento = 2
	MeioPix           MeioPagamento = 3
)

// MovimentacaoFinanceira is a dated monetary transaction.
type MovimentacaoFinanceira struct {
	ID            int                `json:"id,omitempty"`
	Data          string             `json:"data"`
	Descricao     string             `json:"descricao"`
	Valor         float64            `json:"valor"`
	Contexto      ContextoFinanceiro `json:"contexto"`
	MeioPagamento MeioPagamento      `json:"meioPagamento"`
}

// ResumoAnual is the yearly rollup computed by the backend.
type ResumoAnual struct {
	TotalEntradas        float64 `json:"totalEntradas"`
	TotalSaidas          float64 `json:"totalSaidas"`
	TotalEntradasLoja    float64 `json:"totalEntradasLoja"`
	TotalSaidasLoja      float64 `json:"totalSaidasLoja"`
	TotalLoja            float64 `json:"totalLoja"`
	TotalEntradasPessoal float64 `json:"totalEntradasPessoal"`
	TotalSaidasPessoal   float64 `json:"totalSaidasPessoal"`
	TotalPessoal         float64 `json:"totalPessoal"`
	TotalDebito          float64 `json:"totalDebito"`
	TotalCredito         float64 `json:"totalCredito"`
}

// ResumoFinanceiro holds the precomputed monthly and yearly rollups.
// Both are opaque to the snapshot store: the monthly shape changed more than
// once on the backend, so it is carried as raw JSON and never interpreted here.
type ResumoFinanceiro struct {
	Mensal json.RawMessage `json:"mensal,omitempty"`
	Anual  json.RawMessage `json:"anual,omitempty"`
}

// ImportacaoCSVResult reports the outcome of a multipart CSV import.
type ImportacaoCSVResult struct {
	Importadas int    `json:"importadas"`
	Ignoradas  int    `json:"ignoradas"`
	Mensagem   string `json:"mensagem,omitempty"`
}
