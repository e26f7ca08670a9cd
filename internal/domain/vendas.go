package domain

// ============================================================
// Vendas (sales of finished goods)
// ============================================================

// Venda records a sale of a finished good to a customer.
type Venda struct {
	ID           int         `json:"id,omitempty"`
	PecaProntaID int         `json:"pecaProntaId"`
	PecaPronta   *PecaPronta `json:"pecaPronta,omitempty"`
	ValorVenda   float64     `json:"valorVenda"`
	Cliente      string      `json:"cliente"`
	Observacao   string      `json:"observacao,omitempty"`
}

// TotalVendas is the server-side sales total for an optional period.
type TotalVendas struct {
	Total float64 `json:"total"`
}
