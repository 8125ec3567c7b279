package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de transação. A direção do dinheiro é carregada pelo tipo,
// nunca pelo sinal do valor: Valor é sempre >= 0.
const (
	TipoEntrada = "entrada"
	TipoSaida   = "saida"
)

// Categorias de transação.
// venda | servico | servico_digital são sempre entrada;
// reforco é sempre entrada; sangria é sempre saída.
const (
	CategoriaVenda          = "venda"
	CategoriaServico        = "servico"
	CategoriaServicoDigital = "servico_digital"
	CategoriaReforco        = "reforco"
	CategoriaSangria        = "sangria"
	CategoriaEstoque        = "estoque"
	CategoriaManutencao     = "manutencao"
	CategoriaOutro          = "outro"
)

// Transacao é um lançamento imutável no livro-caixa.
// Lançamentos nunca são alterados ou excluídos — o cancelamento de uma venda
// muda apenas o status da venda; o resumo exclui as referências canceladas.
type Transacao struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo      string    `gorm:"type:varchar(10);not null"`
	Categoria string    `gorm:"type:varchar(20);not null;index"`
	Descricao string    `gorm:"not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SessaoID aponta para o caixa aberto no momento do lançamento;
	// nil para vendas registradas sem caixa aberto.
	SessaoID *uuid.UUID `gorm:"type:uuid;index"`
	// ReferenciaID liga o lançamento à venda de origem (rastreabilidade;
	// não é chave estrangeira obrigatória).
	ReferenciaID *uuid.UUID `gorm:"type:uuid;index"`
	OcorridaEm   time.Time  `gorm:"autoCreateTime;index"`
}

func (Transacao) TableName() string { return "transacoes" }

// CategoriaDeVenda diz se a categoria conta no total de vendas do resumo.
func CategoriaDeVenda(categoria string) bool {
	switch categoria {
	case CategoriaVenda, CategoriaServico, CategoriaServicoDigital:
		return true
	}
	return false
}

// TipoEsperado devolve o tipo obrigatório para categorias com direção fixa,
// ou "" quando a categoria aceita ambos (estoque, manutencao, outro).
func TipoEsperado(categoria string) string {
	switch categoria {
	case CategoriaVenda, CategoriaServico, CategoriaServicoDigital, CategoriaReforco:
		return TipoEntrada
	case CategoriaSangria:
		return TipoSaida
	}
	return ""
}
