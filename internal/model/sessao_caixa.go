package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de sessão de caixa. "fechada" e "cancelada" são terminais entre si:
// uma sessão nunca volta para "aberta", mas uma fechada ainda pode ser
// cancelada (anulação de turno).
const (
	CaixaAberto    = "aberta"
	CaixaFechado   = "fechada"
	CaixaCancelado = "cancelada"
)

// SessaoCaixa representa um turno contínuo de operador no caixa.
// Invariante central: no máximo UMA sessão aberta por vez — garantida pelo
// índice único parcial em schema patches além da checagem no service.
type SessaoCaixa struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Operador     string          `gorm:"not null"`
	ValorInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SaldoFinal recebe ValorInicial na abertura e um snapshot do resumo
	// (em caixa) no fechamento, para que relatórios históricos não dependam
	// de reprocessar o livro.
	SaldoFinal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'aberta';index"`
	AbertaEm   time.Time       `gorm:"autoCreateTime"`
	FechadaEm  *time.Time

	Transacoes []Transacao `gorm:"foreignKey:SessaoID"`
}

func (SessaoCaixa) TableName() string { return "sessoes_caixa" }

// ResumoSessao é derivado sob demanda do livro-caixa; nunca é persistido.
type ResumoSessao struct {
	TotalVendas decimal.Decimal
	QtdVendas   int64
	Reforcos    decimal.Decimal
	Sangrias    decimal.Decimal
	// EmCaixa = ValorInicial + TotalVendas + Reforcos - Sangrias
	EmCaixa decimal.Decimal
}
