package repository

import (
	"context"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/dto"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoriaAgregado é o resultado do GROUP BY por categoria de uma sessão.
type CategoriaAgregado struct {
	Total decimal.Decimal
	Qtd   int64
}

// LivroRepository persiste o livro-caixa. O livro é append-only: não existe
// Update nem Delete na interface, de propósito.
type LivroRepository interface {
	Create(ctx context.Context, t *model.Transacao) error
	CreateTx(tx *gorm.DB, t *model.Transacao) error
	ListBySessao(ctx context.Context, sessaoID uuid.UUID) ([]model.Transacao, error)
	List(ctx context.Context, filter dto.TransacaoFilter) ([]model.Transacao, int64, error)
	// SumBySessao agrega valor e quantidade por categoria, já excluindo
	// lançamentos cuja venda de origem foi cancelada.
	SumBySessao(ctx context.Context, sessaoID uuid.UUID) (map[string]CategoriaAgregado, error)
	Receita(ctx context.Context, periodo dto.PeriodoFilter) (decimal.Decimal, error)
	TotaisPorCategoria(ctx context.Context, periodo dto.PeriodoFilter) ([]dto.CategoriaTotalResponse, error)
	TopDescricoes(ctx context.Context, periodo dto.PeriodoFilter, n int) ([]dto.TopDescricaoResponse, error)
}

type livroRepo struct{ db *gorm.DB }

func NewLivroRepository(db *gorm.DB) LivroRepository { return &livroRepo{db: db} }

func (r *livroRepo) Create(ctx context.Context, t *model.Transacao) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *livroRepo) CreateTx(tx *gorm.DB, t *model.Transacao) error {
	return tx.Create(t).Error
}

func (r *livroRepo) ListBySessao(ctx context.Context, sessaoID uuid.UUID) ([]model.Transacao, error) {
	var ts []model.Transacao
	err := r.db.WithContext(ctx).
		Where("sessao_id = ?", sessaoID).
		Order("ocorrida_em ASC").
		Find(&ts).Error
	return ts, err
}

func (r *livroRepo) List(ctx context.Context, filter dto.TransacaoFilter) ([]model.Transacao, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Transacao{})
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if filter.SessaoID != "" {
		q = q.Where("sessao_id = ?", filter.SessaoID)
	}
	if filter.De != "" {
		q = q.Where("DATE(ocorrida_em) >= ?", filter.De)
	}
	if filter.Ate != "" {
		q = q.Where("DATE(ocorrida_em) <= ?", filter.Ate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ts []model.Transacao
	err := q.Order("ocorrida_em ASC").Offset(offset).Limit(filter.Limit).Find(&ts).Error
	return ts, total, err
}

// vendaAtivaJoin exclui do agregado os lançamentos cuja venda de origem foi
// cancelada. Lançamentos sem referência (reforço, sangria, etc.) passam direto.
const vendaAtivaJoin = "LEFT JOIN vendas v ON v.id = t.referencia_id"
const vendaAtivaCond = "(v.id IS NULL OR v.status <> 'cancelada')"

func (r *livroRepo) SumBySessao(ctx context.Context, sessaoID uuid.UUID) (map[string]CategoriaAgregado, error) {
	var rows []struct {
		Categoria string
		Qtd       int64
		Total     decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("transacoes t").
		Select("t.categoria AS categoria, COUNT(*) AS qtd, COALESCE(SUM(t.valor), 0) AS total").
		Joins(vendaAtivaJoin).
		Where("t.sessao_id = ?", sessaoID).
		Where(vendaAtivaCond).
		Group("t.categoria").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[string]CategoriaAgregado, len(rows))
	for _, row := range rows {
		sums[row.Categoria] = CategoriaAgregado{Total: row.Total, Qtd: row.Qtd}
	}
	return sums, nil
}

func (r *livroRepo) periodo(q *gorm.DB, p dto.PeriodoFilter) *gorm.DB {
	if p.De != "" {
		q = q.Where("DATE(t.ocorrida_em) >= ?", p.De)
	}
	if p.Ate != "" {
		q = q.Where("DATE(t.ocorrida_em) <= ?", p.Ate)
	}
	return q
}

func (r *livroRepo) Receita(ctx context.Context, periodo dto.PeriodoFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := r.db.WithContext(ctx).
		Table("transacoes t").
		Select("COALESCE(SUM(t.valor), 0)").
		Joins(vendaAtivaJoin).
		Where("t.tipo = ?", model.TipoEntrada).
		Where(vendaAtivaCond)
	err := r.periodo(q, periodo).Scan(&total).Error
	return total, err
}

func (r *livroRepo) TotaisPorCategoria(ctx context.Context, periodo dto.PeriodoFilter) ([]dto.CategoriaTotalResponse, error) {
	var rows []dto.CategoriaTotalResponse
	q := r.db.WithContext(ctx).
		Table("transacoes t").
		Select("t.categoria AS categoria, COALESCE(SUM(t.valor), 0) AS total").
		Joins(vendaAtivaJoin).
		Where(vendaAtivaCond).
		Group("t.categoria").
		Order("total DESC")
	err := r.periodo(q, periodo).Scan(&rows).Error
	return rows, err
}

func (r *livroRepo) TopDescricoes(ctx context.Context, periodo dto.PeriodoFilter, n int) ([]dto.TopDescricaoResponse, error) {
	if n < 1 {
		n = 10
	}
	var rows []dto.TopDescricaoResponse
	q := r.db.WithContext(ctx).
		Table("transacoes t").
		Select("t.descricao AS descricao, COUNT(*) AS qtd, COALESCE(SUM(t.valor), 0) AS total").
		Joins(vendaAtivaJoin).
		Where("t.tipo = ?", model.TipoEntrada).
		Where(vendaAtivaCond).
		Group("t.descricao").
		Order("total DESC").
		Limit(n)
	err := r.periodo(q, periodo).Scan(&rows).Error
	return rows, err
}
