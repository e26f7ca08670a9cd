package domain

// ============================================================
// Ateliê (tenant) profile & subscription
// ============================================================

// Atelie is the studio profile row. The backend returns exactly one per
// authenticated tenant; the snapshot store overwrites it wholesale on reload.
type Atelie struct {
	NomeAtelie     string `json:"nomeAtelie"`
	NomeDono       string `json:"nomeDono"`
	Plano          string `json:"plano"`  // free, mensal, anual
	Status         string `json:"status"` // ativo, cancelado, expirado, ...
	DataVencimento string `json:"dataVencimento"`
}

// AtelieUpdate carries the editable profile fields for PUT /Atelie.
// Zero-valued fields are omitted so partial updates stay partial.
type AtelieUpdate struct {
	NomeAtelie string `json:"nomeAtelie,omitempty"`
	NomeDono   string `json:"nomeDono,omitempty"`
}

// RegistrarAtelieRequest is the payload for POST /Atelie/registrar.
// Registration creates the identity-provider user and the tenant row in one
// backend transaction; the password never touches this module beyond passthrough.
type RegistrarAtelieRequest struct {
	Email      string `json:"email"`
	Senha      string `json:"senha"`
	NomeDono   string `json:"nomeDono"`
	NomeAtelie string `json:"nomeAtelie"`
	Telefone   string `json:"telefone,omitempty"`
	CPFCNPJ    string `json:"cpfCnpj,omitempty"`
}

// AssinaturaAtiva is the answer of GET /Atelie/assinatura-ativa.
type AssinaturaAtiva struct {
	Ativa bool `json:"ativa"`
}

// IniciarAssinaturaRequest starts a subscription checkout.
type IniciarAssinaturaRequest struct {
	Periodicidade string `json:"periodicidade"` // mensal, anual
}

// IniciarAssinaturaResponse carries the checkout URL the frontend redirects to.
type IniciarAssinaturaResponse struct {
	URL string `json:"url"`
}
