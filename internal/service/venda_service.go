package service

import (
	"context"
	"errors"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/dto"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendaService interface {
	Registrar(ctx context.Context, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, page, limit int) ([]dto.VendaResponse, int64, error)
}

type vendaService struct {
	repo  repository.VendaRepository
	livro repository.LivroRepository
	caixa repository.CaixaRepository
}

func NewVendaService(repo repository.VendaRepository, livro repository.LivroRepository, caixa repository.CaixaRepository) VendaService {
	return &vendaService{repo: repo, livro: livro, caixa: caixa}
}

// runTx executa fn dentro de uma transação GORM quando o db existe, ou chama
// fn(nil) direto quando db é nil (modo teste unitário).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Venda e lançamento de receita no livro nascem na mesma transação: ou os dois
// persistem, ou nenhum. A venda leva a tag da sessão aberta quando houver.

func (s *vendaService) Registrar(ctx context.Context, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	if req.Total.IsNegative() {
		return nil, model.ErrValorInvalido
	}

	aberta, err := s.caixa.FindSessaoAberta(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	var sessaoID *uuid.UUID
	if aberta != nil {
		id := aberta.ID
		sessaoID = &id
	}

	var venda model.Venda
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ticket, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}

		venda = model.Venda{
			NumeroTicket: ticket,
			Cliente:      req.Cliente,
			Categoria:    req.Categoria,
			Total:        req.Total,
			Status:       model.VendaConcluida,
			SessaoID:     sessaoID,
		}
		if err := s.repo.Create(ctx, tx, &venda); err != nil {
			return err
		}

		t := &model.Transacao{
			Tipo:         model.TipoEntrada,
			Categoria:    req.Categoria,
			Descricao:    req.Descricao,
			Valor:        req.Total,
			SessaoID:     sessaoID,
			ReferenciaID: &venda.ID,
		}
		return s.livro.CreateTx(tx, t)
	})
	if txErr != nil {
		return nil, storageErr(txErr)
	}

	return vendaToResponse(&venda), nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────
// Muda só o status da venda. O lançamento de origem permanece no livro
// (append-only); os agregados passam a excluí-lo pelo JOIN de status.

func (s *vendaService) Cancelar(ctx context.Context, id uuid.UUID) error {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrNaoEncontrado
		}
		return storageErr(err)
	}
	if venda.Status == model.VendaCancelada {
		return model.ErrTransicaoInvalida
	}
	if err := s.repo.UpdateStatus(ctx, id, model.VendaCancelada); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *vendaService) Listar(ctx context.Context, page, limit int) ([]dto.VendaResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	vendas, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	resp := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		resp = append(resp, *vendaToResponse(&vendas[i]))
	}
	return resp, total, nil
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	resp := &dto.VendaResponse{
		ID:           v.ID.String(),
		NumeroTicket: v.NumeroTicket,
		Cliente:      v.Cliente,
		Categoria:    v.Categoria,
		Total:        v.Total,
		Status:       v.Status,
		CriadaEm:     formatTime(v.CriadaEm),
	}
	if v.SessaoID != nil {
		id := v.SessaoID.String()
		resp.SessaoID = &id
	}
	return resp
}
