package dto

import "github.com/shopspring/decimal"

// TransacaoFilter filtra a listagem do livro-caixa.
// De/Ate no formato YYYY-MM-DD; vazios = sem limite.
type TransacaoFilter struct {
	De        string
	Ate       string
	Categoria string
	SessaoID  string
	Page      int
	Limit     int
}

type TransacaoResponse struct {
	ID           string          `json:"id"`
	Tipo         string          `json:"tipo"`
	Categoria    string          `json:"categoria"`
	Descricao    string          `json:"descricao"`
	Valor        decimal.Decimal `json:"valor"`
	SessaoID     *string         `json:"sessao_id"`
	ReferenciaID *string         `json:"referencia_id"`
	OcorridaEm   string          `json:"ocorrida_em"`
}

type TransacaoListResponse struct {
	Data  []TransacaoResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
