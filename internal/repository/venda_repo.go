package repository

import (
	"context"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, page, limit int) ([]model.Venda, int64, error)
	DB() *gorm.DB // expõe o DB para criação de transação no service
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) DB() *gorm.DB { return r.db }

func (r *vendaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *vendaRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Venda{}).Where("id = ?", id).Update("status", status).Error
}

func (r *vendaRepo) NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Sequence do PostgreSQL para numeração atômica de ticket
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('vendas_numero_ticket_seq')").Scan(&num).Error
	return num, err
}

func (r *vendaRepo) List(ctx context.Context, page, limit int) ([]model.Venda, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Venda{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var vs []model.Venda
	err := r.db.WithContext(ctx).
		Order("criada_em DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&vs).Error
	return vs, total, err
}
