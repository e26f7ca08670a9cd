package domain

// ============================================================
// Encomendas (customer commissions)
// ============================================================

// StatusEncomenda is the order lifecycle enum.
type StatusEncomenda int

const (
	EncomendaPendente   StatusEncomenda = 1
	EncomendaEmProducao StatusEncomenda = 2
	EncomendaFinalizada StatusEncomenda = 3
	EncomendaCancelada  StatusEncomenda = 4
)

// ValidStatusEncomenda reports whether s is a known lifecycle status.
func ValidStatusEncomenda(s StatusEncomenda) bool {
	return s >= EncomendaPendente && s <= EncomendaCancelada
}

// Encomenda is a customer commission with a lifecycle status.
type Encomenda struct {
	ID          int             `json:"id,omitempty"`
	Descricao   string          `json:"descricao"`
	MaterialID  int             `json:"materialId"`
	ValorOrcado float64         `json:"valorOrcado"`
	Cliente     string          `json:"cliente"`
	Observacao  string          `json:"observacao,omitempty"`
	Status      StatusEncomenda `json:"status"`
	DataCriacao string          `json:"dataCriacao,omitempty"`
}
