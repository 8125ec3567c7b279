package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarVendaRequest struct {
	Cliente   *string         `json:"cliente"   validate:"omitempty,min=2,max=100"`
	Categoria string          `json:"categoria" validate:"required,oneof=venda servico servico_digital"`
	Descricao string          `json:"descricao" validate:"required,min=3"`
	Total     decimal.Decimal `json:"total"     validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VendaResponse struct {
	ID           string          `json:"id"`
	NumeroTicket int             `json:"numero_ticket"`
	Cliente      *string         `json:"cliente"`
	Categoria    string          `json:"categoria"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	SessaoID     *string         `json:"sessao_id"`
	CriadaEm     string          `json:"criada_em"`
}
