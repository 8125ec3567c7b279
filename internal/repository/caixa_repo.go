package repository

import (
	"context"
	"errors"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	CreateSessao(ctx context.Context, s *model.SessaoCaixa) error
	// FindSessaoAberta devolve (nil, nil) quando não há caixa aberto.
	FindSessaoAberta(ctx context.Context) (*model.SessaoCaixa, error)
	FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error)
	UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error
	ListSessoes(ctx context.Context, page, limit int) ([]model.SessaoCaixa, int64, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) CreateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *caixaRepo) FindSessaoAberta(ctx context.Context) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).Where("status = ?", model.CaixaAberto).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *caixaRepo) FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *caixaRepo) UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *caixaRepo) ListSessoes(ctx context.Context, page, limit int) ([]model.SessaoCaixa, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.SessaoCaixa{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ss []model.SessaoCaixa
	err := r.db.WithContext(ctx).
		Order("aberta_em DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&ss).Error
	return ss, total, err
}
