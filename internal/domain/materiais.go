package domain

// ============================================================
// Materiais (inventory line items)
// ============================================================

// CategoriaMaterial mirrors the backend enum.
type CategoriaMaterial int

const (
	CategoriaPeca      CategoriaMaterial = 1
	CategoriaFerragem  CategoriaMaterial = 2
	CategoriaPintura   CategoriaMaterial = 3
	CategoriaPapelaria CategoriaMaterial = 4
	CategoriaTesoura   CategoriaMaterial = 5
	CategoriaOutro     CategoriaMaterial = 6
)

// Material is a raw material or part with quantity and unit value.
// IDs are assigned by the backend; this module never generates them.
type Material struct {
	ID         int               `json:"id,omitempty"`
	AtelieID   int               `json:"atelieId,omitempty"`
	Nome       string            `json:"nome"`
	Categoria  CategoriaMaterial `json:"categoria"`
	Tamanho    string            `json:"tamanho,omitempty"`
	Quantidade float64           `json:"quantidade"`
	Valor      float64           `json:"valor"`
}

// ResumoEstoque is the server-computed stock aggregate from GET /Materiais/resumo.
// Never recomputed client-side.
type ResumoEstoque struct {
	QuantidadeTotalPecas float64 `json:"quantidadeTotalPecas"`
	ValorTotalEstoque    float64 `json:"valorTotalEstoque"`
}
