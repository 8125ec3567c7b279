package tests

import (
	"context"
	"testing"
	"time"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/dto"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceitaIgnoraSaidas(t *testing.T) {
	livroRepo := newMemLivroRepo()
	svc := service.NewRelatorioService(livroRepo)
	ctx := context.Background()

	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda, Descricao: "Venda", Valor: dec(500),
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaServico, Descricao: "Reparo", Valor: dec(120),
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoSaida, Categoria: model.CategoriaEstoque, Descricao: "Compra de peças", Valor: dec(300),
	}))

	resp, err := svc.Receita(ctx, dto.PeriodoFilter{})
	require.NoError(t, err)
	assert.Equal(t, "620", resp.Total.String())
}

func TestReceitaExcluiVendaCancelada(t *testing.T) {
	livroRepo := newMemLivroRepo()
	svc := service.NewRelatorioService(livroRepo)
	ctx := context.Background()

	vendaID := uuid.New()
	livroRepo.vendas[vendaID] = &model.Venda{ID: vendaID, Status: model.VendaCancelada}

	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda,
		Descricao: "Venda cancelada", Valor: dec(1000), ReferenciaID: &vendaID,
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda, Descricao: "Venda válida", Valor: dec(80),
	}))

	resp, err := svc.Receita(ctx, dto.PeriodoFilter{})
	require.NoError(t, err)
	assert.Equal(t, "80", resp.Total.String())
}

func TestReceitaFiltraPorPeriodo(t *testing.T) {
	livroRepo := newMemLivroRepo()
	svc := service.NewRelatorioService(livroRepo)
	ctx := context.Background()

	dentro := time.Date(2026, 8, 10, 14, 0, 0, 0, time.UTC)
	antes := time.Date(2026, 7, 31, 23, 59, 0, 0, time.UTC)
	depois := time.Date(2026, 9, 1, 0, 1, 0, 0, time.UTC)

	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda,
		Descricao: "Venda de agosto", Valor: dec(200), OcorridaEm: dentro,
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda,
		Descricao: "Venda de julho", Valor: dec(500), OcorridaEm: antes,
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda,
		Descricao: "Venda de setembro", Valor: dec(900), OcorridaEm: depois,
	}))

	resp, err := svc.Receita(ctx, dto.PeriodoFilter{De: "2026-08-01", Ate: "2026-08-31"})
	require.NoError(t, err)
	assert.Equal(t, "200", resp.Total.String())

	// Limites inclusivos: o próprio dia da borda conta
	resp, err = svc.Receita(ctx, dto.PeriodoFilter{De: "2026-07-31", Ate: "2026-08-31"})
	require.NoError(t, err)
	assert.Equal(t, "700", resp.Total.String())

	// Sem limites = livro inteiro
	resp, err = svc.Receita(ctx, dto.PeriodoFilter{})
	require.NoError(t, err)
	assert.Equal(t, "1600", resp.Total.String())
}

func TestListarTransacoesFiltraPorPeriodo(t *testing.T) {
	livroRepo := newMemLivroRepo()
	svc := service.NewRelatorioService(livroRepo)
	ctx := context.Background()

	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda,
		Descricao: "Dentro do período", Valor: dec(50),
		OcorridaEm: time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoSaida, Categoria: model.CategoriaEstoque,
		Descricao: "Fora do período", Valor: dec(30),
		OcorridaEm: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}))

	resp, err := svc.ListarTransacoes(ctx, dto.TransacaoFilter{
		De: "2026-08-01", Ate: "2026-08-31", Page: 1, Limit: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Dentro do período", resp.Data[0].Descricao)
}

func TestTotaisPorCategoria(t *testing.T) {
	livroRepo := newMemLivroRepo()
	svc := service.NewRelatorioService(livroRepo)
	ctx := context.Background()

	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda, Descricao: "Venda", Valor: dec(200),
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda, Descricao: "Venda", Valor: dec(300),
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoSaida, Categoria: model.CategoriaManutencao, Descricao: "Aluguel", Valor: dec(900),
	}))

	rows, err := svc.TotaisPorCategoria(ctx, dto.PeriodoFilter{})
	require.NoError(t, err)

	byCat := make(map[string]string)
	for _, row := range rows {
		byCat[row.Categoria] = row.Total.String()
	}
	assert.Equal(t, "500", byCat[model.CategoriaVenda])
	assert.Equal(t, "900", byCat[model.CategoriaManutencao])
}

func TestTopDescricoes(t *testing.T) {
	livroRepo := newMemLivroRepo()
	svc := service.NewRelatorioService(livroRepo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
			Tipo: model.TipoEntrada, Categoria: model.CategoriaServico, Descricao: "Formatação", Valor: dec(100),
		}))
	}
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda, Descricao: "Cabo HDMI", Valor: dec(25),
	}))

	rows, err := svc.TopDescricoes(ctx, dto.PeriodoFilter{}, 10)
	require.NoError(t, err)

	var formatacao *dto.TopDescricaoResponse
	for i := range rows {
		if rows[i].Descricao == "Formatação" {
			formatacao = &rows[i]
		}
	}
	require.NotNil(t, formatacao)
	assert.Equal(t, int64(3), formatacao.Qtd)
	assert.Equal(t, "300", formatacao.Total.String())
}

func TestListarTransacoesComFiltro(t *testing.T) {
	livroRepo := newMemLivroRepo()
	svc := service.NewRelatorioService(livroRepo)
	ctx := context.Background()

	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoEntrada, Categoria: model.CategoriaVenda, Descricao: "Venda", Valor: dec(50),
	}))
	require.NoError(t, livroRepo.Create(ctx, &model.Transacao{
		Tipo: model.TipoSaida, Categoria: model.CategoriaSangria, Descricao: "Depósito", Valor: dec(30),
	}))

	resp, err := svc.ListarTransacoes(ctx, dto.TransacaoFilter{Categoria: model.CategoriaSangria, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, model.CategoriaSangria, resp.Data[0].Categoria)
}
