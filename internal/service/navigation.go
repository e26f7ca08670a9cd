package service

import "strings"

// pages is the navigation allow-list. Page identifiers are the console's
// historical hash fragments.
var pages = map[string]struct{}{
	"inicial":      {},
	"financeiro":   {},
	"estoque":      {},
	"todo":         {},
	"vendas":       {},
	"encomendas":   {},
	"pecasProntas": {},
	"perfil":       {},
}

// ResolvePage normalizes a requested page identifier or hash fragment.
// Anything outside the allow-list lands on the initial page.
func ResolvePage(raw string) string {
	page := strings.TrimPrefix(strings.TrimPrefix(raw, "#"), "/")
	if _, ok := pages[page]; ok {
		return page
	}
	return "inicial"
}
