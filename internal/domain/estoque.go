package domain

// ============================================================
// Estoque (stock movements)
// ============================================================

// TipoMovimentacao distinguishes stock entries from exits.
type TipoMovimentacao int

const (
	MovimentacaoEntrada TipoMovimentacao = 1
	MovimentacaoSaida   TipoMovimentacao = 2
)

// MovimentacaoEstoque is one recorded entry or exit against a material.
type MovimentacaoEstoque struct {
	ID         int              `json:"id,omitempty"`
	MaterialID int              `json:"materialId"`
	Quantidade float64          `json:"quantidade"`
	Tipo       TipoMovimentacao `json:"tipo"`
	Observacao string           `json:"observacao,omitempty"`
	Data       string           `json:"data,omitempty"`
}

// RegistrarMovimentacaoRequest is the body for POST /Estoque/entrada and /Estoque/saida.
type RegistrarMovimentacaoRequest struct {
	MaterialID int     `json:"materialId"`
	Quantidade float64 `json:"quantidade"`
	Observacao string  `json:"observacao,omitempty"`
}
