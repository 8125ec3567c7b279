package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/dto"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/repository"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CaixaService controla o ciclo de vida da sessão de caixa e o roteamento de
// movimentos para o livro. Regras que ele garante:
//   - no máximo uma sessão aberta por vez;
//   - reforço/sangria só com caixa aberto;
//   - valores nunca negativos (direção vem do tipo, não do sinal);
//   - fechamento grava um snapshot do "em caixa" em SaldoFinal.
type CaixaService interface {
	Abrir(ctx context.Context, operador string, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error)
	Fechar(ctx context.Context, sessaoID uuid.UUID) (*dto.SessaoCaixaResponse, error)
	Cancelar(ctx context.Context, sessaoID uuid.UUID) (*dto.SessaoCaixaResponse, error)
	RegistrarMovimento(ctx context.Context, req dto.MovimentoRequest) (*dto.TransacaoResponse, error)
	Resumo(ctx context.Context, sessaoID uuid.UUID) (*dto.ResumoCaixaResponse, error)
	// Extrato lista os lançamentos da sessão em ordem de inserção (auditoria).
	Extrato(ctx context.Context, sessaoID uuid.UUID) ([]dto.TransacaoResponse, error)
	// Atual devolve (nil, nil) quando não há caixa aberto.
	Atual(ctx context.Context) (*dto.SessaoCaixaResponse, error)
	Historico(ctx context.Context, page, limit int) ([]dto.SessaoCaixaResponse, int64, error)
}

type caixaService struct {
	repo       repository.CaixaRepository
	livro      repository.LivroRepository
	dispatcher *worker.Dispatcher
}

func NewCaixaService(repo repository.CaixaRepository, livro repository.LivroRepository, dispatcher *worker.Dispatcher) CaixaService {
	return &caixaService{repo: repo, livro: livro, dispatcher: dispatcher}
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", model.ErrArmazenamento, err)
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *caixaService) Abrir(ctx context.Context, operador string, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error) {
	if req.ValorInicial.IsNegative() {
		return nil, model.ErrValorInvalido
	}

	// Pré-checagem para erro amigável; a corrida de verdade é fechada pelo
	// índice único parcial em sessoes_caixa (status = 'aberta').
	aberta, err := s.repo.FindSessaoAberta(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	if aberta != nil {
		return nil, model.ErrCaixaJaAberto
	}

	sessao := &model.SessaoCaixa{
		Operador:     operador,
		ValorInicial: req.ValorInicial,
		SaldoFinal:   req.ValorInicial,
		Status:       model.CaixaAberto,
	}
	if err := s.repo.CreateSessao(ctx, sessao); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, model.ErrCaixaJaAberto
		}
		return nil, storageErr(err)
	}

	return sessaoToResponse(sessao, nil), nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────
// Só de "aberta". Grava FechadaEm e o snapshot do resumo em SaldoFinal para
// que relatórios históricos não dependam de reprocessar o livro.

func (s *caixaService) Fechar(ctx context.Context, sessaoID uuid.UUID) (*dto.SessaoCaixaResponse, error) {
	sessao, err := s.findSessao(ctx, sessaoID)
	if err != nil {
		return nil, err
	}
	if sessao.Status != model.CaixaAberto {
		return nil, model.ErrTransicaoInvalida
	}

	resumo, err := s.resumoSessao(ctx, sessao)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sessao.Status = model.CaixaFechado
	sessao.FechadaEm = &now
	sessao.SaldoFinal = resumo.EmCaixa

	if err := s.repo.UpdateSessao(ctx, sessao); err != nil {
		return nil, storageErr(err)
	}

	// Relatório de fechamento é melhor-esforço: falha no enfileiramento
	// nunca desfaz o fechamento já persistido.
	if s.dispatcher != nil {
		payload := worker.FechamentoJobPayload{
			SessaoID:     sessao.ID.String(),
			Operador:     sessao.Operador,
			ValorInicial: sessao.ValorInicial,
			TotalVendas:  resumo.TotalVendas,
			QtdVendas:    resumo.QtdVendas,
			Reforcos:     resumo.Reforcos,
			Sangrias:     resumo.Sangrias,
			EmCaixa:      resumo.EmCaixa,
			AbertaEm:     formatTime(sessao.AbertaEm),
			FechadaEm:    formatTime(now),
		}
		_ = s.dispatcher.EnqueueFechamento(ctx, payload)
	}

	return sessaoToResponse(sessao, resumo), nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────
// Permitido de "aberta" e também de "fechada" (anulação de turno). Os
// lançamentos já feitos permanecem no livro, presos à sessão cancelada.

func (s *caixaService) Cancelar(ctx context.Context, sessaoID uuid.UUID) (*dto.SessaoCaixaResponse, error) {
	sessao, err := s.findSessao(ctx, sessaoID)
	if err != nil {
		return nil, err
	}
	if sessao.Status == model.CaixaCancelado {
		return nil, model.ErrTransicaoInvalida
	}

	sessao.Status = model.CaixaCancelado
	if err := s.repo.UpdateSessao(ctx, sessao); err != nil {
		return nil, storageErr(err)
	}
	return sessaoToResponse(sessao, nil), nil
}

// ── RegistrarMovimento ────────────────────────────────────────────────────────
// Reforço/sangria exigem caixa aberto. Vendas e demais categorias são aceitas
// sem caixa, mas recebem a tag da sessão aberta quando houver uma.

func (s *caixaService) RegistrarMovimento(ctx context.Context, req dto.MovimentoRequest) (*dto.TransacaoResponse, error) {
	if req.Valor.IsNegative() {
		return nil, model.ErrValorInvalido
	}
	if esperado := model.TipoEsperado(req.Categoria); esperado != "" && esperado != req.Tipo {
		return nil, model.ErrCategoriaInvalida
	}

	aberta, err := s.repo.FindSessaoAberta(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	switch req.Categoria {
	case model.CategoriaReforco, model.CategoriaSangria:
		if aberta == nil {
			return nil, model.ErrSemCaixaAberto
		}
	}

	var sessaoID *uuid.UUID
	if aberta != nil {
		id := aberta.ID
		sessaoID = &id
	}

	t := &model.Transacao{
		Tipo:      req.Tipo,
		Categoria: req.Categoria,
		Descricao: req.Descricao,
		Valor:     req.Valor,
		SessaoID:  sessaoID,
	}
	if err := s.livro.Create(ctx, t); err != nil {
		return nil, storageErr(err)
	}
	return transacaoToResponse(t), nil
}

// ── Resumo ────────────────────────────────────────────────────────────────────
// Leitura pura: recomputa os totais a partir do livro a cada chamada. Sessão
// sem lançamentos devolve tudo zerado com EmCaixa = ValorInicial; id
// desconhecido devolve ErrNaoEncontrado (o resultado depende do ValorInicial,
// então a sessão precisa existir).

func (s *caixaService) Resumo(ctx context.Context, sessaoID uuid.UUID) (*dto.ResumoCaixaResponse, error) {
	sessao, err := s.findSessao(ctx, sessaoID)
	if err != nil {
		return nil, err
	}
	return s.resumoSessao(ctx, sessao)
}

func (s *caixaService) resumoSessao(ctx context.Context, sessao *model.SessaoCaixa) (*dto.ResumoCaixaResponse, error) {
	sums, err := s.livro.SumBySessao(ctx, sessao.ID)
	if err != nil {
		return nil, storageErr(err)
	}

	totalVendas := decimal.Zero
	var qtdVendas int64
	for _, cat := range []string{model.CategoriaVenda, model.CategoriaServico, model.CategoriaServicoDigital} {
		ag := sums[cat]
		totalVendas = totalVendas.Add(ag.Total)
		qtdVendas += ag.Qtd
	}
	reforcos := sums[model.CategoriaReforco].Total
	sangrias := sums[model.CategoriaSangria].Total

	return &dto.ResumoCaixaResponse{
		TotalVendas: totalVendas,
		QtdVendas:   qtdVendas,
		Reforcos:    reforcos,
		Sangrias:    sangrias,
		EmCaixa:     sessao.ValorInicial.Add(totalVendas).Add(reforcos).Sub(sangrias),
	}, nil
}

// ── Extrato ───────────────────────────────────────────────────────────────────
// Lista bruta dos lançamentos da sessão, inclusive os de vendas canceladas:
// o extrato é trilha de auditoria, não agregado — nada é filtrado aqui.

func (s *caixaService) Extrato(ctx context.Context, sessaoID uuid.UUID) ([]dto.TransacaoResponse, error) {
	sessao, err := s.findSessao(ctx, sessaoID)
	if err != nil {
		return nil, err
	}
	ts, err := s.livro.ListBySessao(ctx, sessao.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	resp := make([]dto.TransacaoResponse, 0, len(ts))
	for i := range ts {
		resp = append(resp, *transacaoToResponse(&ts[i]))
	}
	return resp, nil
}

// ── Atual / Historico ─────────────────────────────────────────────────────────

func (s *caixaService) Atual(ctx context.Context) (*dto.SessaoCaixaResponse, error) {
	aberta, err := s.repo.FindSessaoAberta(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	if aberta == nil {
		return nil, nil
	}
	resumo, err := s.resumoSessao(ctx, aberta)
	if err != nil {
		return nil, err
	}
	return sessaoToResponse(aberta, resumo), nil
}

func (s *caixaService) Historico(ctx context.Context, page, limit int) ([]dto.SessaoCaixaResponse, int64, error) {
	sessoes, total, err := s.repo.ListSessoes(ctx, page, limit)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	resp := make([]dto.SessaoCaixaResponse, 0, len(sessoes))
	for i := range sessoes {
		resp = append(resp, *sessaoToResponse(&sessoes[i], nil))
	}
	return resp, total, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *caixaService) findSessao(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	sessao, err := s.repo.FindSessaoByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNaoEncontrado
		}
		return nil, storageErr(err)
	}
	return sessao, nil
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05Z")
}

func sessaoToResponse(s *model.SessaoCaixa, resumo *dto.ResumoCaixaResponse) *dto.SessaoCaixaResponse {
	resp := &dto.SessaoCaixaResponse{
		ID:           s.ID.String(),
		Operador:     s.Operador,
		ValorInicial: s.ValorInicial,
		SaldoFinal:   s.SaldoFinal,
		Status:       s.Status,
		AbertaEm:     formatTime(s.AbertaEm),
		Resumo:       resumo,
	}
	if s.FechadaEm != nil {
		t := formatTime(*s.FechadaEm)
		resp.FechadaEm = &t
	}
	return resp
}

func transacaoToResponse(t *model.Transacao) *dto.TransacaoResponse {
	resp := &dto.TransacaoResponse{
		ID:         t.ID.String(),
		Tipo:       t.Tipo,
		Categoria:  t.Categoria,
		Descricao:  t.Descricao,
		Valor:      t.Valor,
		OcorridaEm: formatTime(t.OcorridaEm),
	}
	if t.SessaoID != nil {
		id := t.SessaoID.String()
		resp.SessaoID = &id
	}
	if t.ReferenciaID != nil {
		id := t.ReferenciaID.String()
		resp.ReferenciaID = &id
	}
	return resp
}
