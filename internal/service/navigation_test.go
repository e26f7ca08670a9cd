package service

import "testing"

func TestResolvePage(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"inicial", "inicial"},
		{"financeiro", "financeiro"},
		{"#/estoque", "estoque"},
		{"#vendas", "vendas"},
		{"/pecasProntas", "pecasProntas"},
		{"perfil", "perfil"},
		{"", "inicial"},
		{"admin", "inicial"},
		{"#/segredos", "inicial"},
		{"PecasProntas", "inicial"},
	}

	for _, tt := range tests {
		if got := ResolvePage(tt.raw); got != tt.want {
			t.Errorf("ResolvePage(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
