package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de venda.
const (
	VendaConcluida = "concluida"
	VendaCancelada = "cancelada"
)

// Venda é o documento de origem de um lançamento de receita no livro.
// O cancelamento muda apenas Status; o lançamento permanece no livro e é
// excluído dos agregados pelo JOIN de status no repositório.
type Venda struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroTicket int      `gorm:"uniqueIndex;not null"`
	Cliente     *string
	Categoria   string          `gorm:"type:varchar(20);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'concluida'"`
	SessaoID    *uuid.UUID      `gorm:"type:uuid;index"`
	CriadaEm    time.Time       `gorm:"autoCreateTime"`
}

func (Venda) TableName() string { return "vendas" }
