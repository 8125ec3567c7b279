package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	ValorInicial decimal.Decimal `json:"valor_inicial" validate:"min=0"`
}

type MovimentoRequest struct {
	Tipo      string          `json:"tipo"      validate:"required,oneof=entrada saida"`
	Categoria string          `json:"categoria" validate:"required,oneof=venda servico servico_digital reforco sangria estoque manutencao outro"`
	Valor     decimal.Decimal `json:"valor"     validate:"min=0"`
	Descricao string          `json:"descricao" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ResumoCaixaResponse struct {
	TotalVendas decimal.Decimal `json:"total_vendas"`
	QtdVendas   int64           `json:"qtd_vendas"`
	Reforcos    decimal.Decimal `json:"reforcos"`
	Sangrias    decimal.Decimal `json:"sangrias"`
	EmCaixa     decimal.Decimal `json:"em_caixa"`
}

type SessaoCaixaResponse struct {
	ID           string               `json:"id"`
	Operador     string               `json:"operador"`
	ValorInicial decimal.Decimal      `json:"valor_inicial"`
	SaldoFinal   decimal.Decimal      `json:"saldo_final"`
	Status       string               `json:"status"`
	AbertaEm     string               `json:"aberta_em"`
	FechadaEm    *string              `json:"fechada_em"`
	Resumo       *ResumoCaixaResponse `json:"resumo,omitempty"`
}
