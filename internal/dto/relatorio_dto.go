package dto

import "github.com/shopspring/decimal"

// PeriodoFilter delimita os relatórios por data (YYYY-MM-DD, inclusivo).
type PeriodoFilter struct {
	De  string
	Ate string
}

type ReceitaResponse struct {
	De    string          `json:"de,omitempty"`
	Ate   string          `json:"ate,omitempty"`
	Total decimal.Decimal `json:"total"`
}

type CategoriaTotalResponse struct {
	Categoria string          `json:"categoria"`
	Total     decimal.Decimal `json:"total"`
}

type TopDescricaoResponse struct {
	Descricao string          `json:"descricao"`
	Qtd       int64           `json:"qtd"`
	Total     decimal.Decimal `json:"total"`
}
