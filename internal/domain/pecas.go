package domain

// ============================================================
// Peças Prontas (finished goods)
// ============================================================

// TipoPecaPronta distinguishes produced items from maintenance work.
type TipoPecaPronta int

const (
	PecaProduzida  TipoPecaPronta = 0
	PecaManutencao TipoPecaPronta = 1
)

// PecaProntaMaterial is the consumption of one material by a finished good.
type PecaProntaMaterial struct {
	ID              int     `json:"id,omitempty"`
	PecaProntaID    int     `json:"pecaProntaId,omitempty"`
	MaterialID      int     `json:"materialId"`
	QuantidadeUsada float64 `json:"quantidadeUsada"`
	Material        *struct {
		ID         int     `json:"id"`
		Nome       string  `json:"nome"`
		Quantidade float64 `json:"quantidade"`
	} `json:"material,omitempty"`
}

// PecaPronta is a produced or maintained item, optionally composed of
// consumed materials, sellable.
type PecaPronta struct {
	ID          int                  `json:"id,omitempty"`
	Titulo      string               `json:"titulo"`
	Descricao   string               `json:"descricao,omitempty"`
	Valor       float64              `json:"valor"`
	FotoURL     string               `json:"fotoUrl,omitempty"`
	Tipo        TipoPecaPronta       `json:"tipo"`
	Vendida     bool                 `json:"vendida"`
	DataCriacao string               `json:"dataCriacao,omitempty"`
	Materiais   []PecaProntaMaterial `json:"materiais,omitempty"`
}

// CriarPecaProntaRequest is the creation payload.
type CriarPecaProntaRequest struct {
	Titulo    string         `json:"titulo"`
	Valor     float64        `json:"valor"`
	Descricao string         `json:"descricao,omitempty"`
	Tipo      TipoPecaPronta `json:"tipo"`
	FotoURL   string         `json:"fotoUrl,omitempty"`
}

// AtualizarPecaProntaRequest is the full-update payload.
type AtualizarPecaProntaRequest struct {
	Titulo    string         `json:"titulo"`
	Valor     float64        `json:"valor"`
	Descricao string         `json:"descricao,omitempty"`
	FotoURL   string         `json:"fotoUrl,omitempty"`
	Vendida   bool           `json:"vendida"`
	Tipo      TipoPecaPronta `json:"tipo"`
}

// AdicionarMaterialRequest attaches a consumed material to a finished good.
type AdicionarMaterialRequest struct {
	MaterialID      int     `json:"materialId"`
	QuantidadeUsada float64 `json:"quantidadeUsada"`
}
