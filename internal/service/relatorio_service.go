package service

import (
	"context"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/dto"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/repository"
)

// RelatorioService é a camada de leitura dos painéis (dashboard, livro-caixa,
// aba financeira). Só consulta: nenhuma operação aqui muta o livro.
type RelatorioService interface {
	Receita(ctx context.Context, periodo dto.PeriodoFilter) (*dto.ReceitaResponse, error)
	TotaisPorCategoria(ctx context.Context, periodo dto.PeriodoFilter) ([]dto.CategoriaTotalResponse, error)
	TopDescricoes(ctx context.Context, periodo dto.PeriodoFilter, n int) ([]dto.TopDescricaoResponse, error)
	ListarTransacoes(ctx context.Context, filter dto.TransacaoFilter) (*dto.TransacaoListResponse, error)
}

type relatorioService struct {
	livro repository.LivroRepository
}

func NewRelatorioService(livro repository.LivroRepository) RelatorioService {
	return &relatorioService{livro: livro}
}

func (s *relatorioService) Receita(ctx context.Context, periodo dto.PeriodoFilter) (*dto.ReceitaResponse, error) {
	total, err := s.livro.Receita(ctx, periodo)
	if err != nil {
		return nil, storageErr(err)
	}
	return &dto.ReceitaResponse{De: periodo.De, Ate: periodo.Ate, Total: total}, nil
}

func (s *relatorioService) TotaisPorCategoria(ctx context.Context, periodo dto.PeriodoFilter) ([]dto.CategoriaTotalResponse, error) {
	rows, err := s.livro.TotaisPorCategoria(ctx, periodo)
	if err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func (s *relatorioService) TopDescricoes(ctx context.Context, periodo dto.PeriodoFilter, n int) ([]dto.TopDescricaoResponse, error) {
	rows, err := s.livro.TopDescricoes(ctx, periodo, n)
	if err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func (s *relatorioService) ListarTransacoes(ctx context.Context, filter dto.TransacaoFilter) (*dto.TransacaoListResponse, error) {
	ts, total, err := s.livro.List(ctx, filter)
	if err != nil {
		return nil, storageErr(err)
	}
	data := make([]dto.TransacaoResponse, 0, len(ts))
	for i := range ts {
		data = append(data, *transacaoToResponse(&ts[i]))
	}
	return &dto.TransacaoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
