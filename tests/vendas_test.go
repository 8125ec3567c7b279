package tests

import (
	"context"
	"testing"
	"time"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/dto"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/repository"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── VendaRepository em memória ───────────────────────────────────────────────
// Compartilha o mapa de vendas com o memLivroRepo para que a exclusão de
// vendas canceladas funcione nos agregados, como o JOIN faz no Postgres.

type memVendaRepo struct {
	vendas     map[uuid.UUID]*model.Venda
	nextTicket int
}

func newMemVendaRepo(livro *memLivroRepo) *memVendaRepo {
	return &memVendaRepo{vendas: livro.vendas}
}

func (r *memVendaRepo) DB() *gorm.DB { return nil }

func (r *memVendaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CriadaEm = time.Now()
	r.vendas[v.ID] = v
	return nil
}

func (r *memVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *memVendaRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	if v, ok := r.vendas[id]; ok {
		v.Status = status
	}
	return nil
}

func (r *memVendaRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.nextTicket++
	return r.nextTicket, nil
}

func (r *memVendaRepo) List(_ context.Context, page, limit int) ([]model.Venda, int64, error) {
	all := make([]model.Venda, 0, len(r.vendas))
	for _, v := range r.vendas {
		all = append(all, *v)
	}
	return all, int64(len(all)), nil
}

var _ repository.VendaRepository = (*memVendaRepo)(nil)

func newVendaFixture() (service.VendaService, service.CaixaService, *memVendaRepo, *memLivroRepo) {
	caixaRepo := newMemCaixaRepo()
	livroRepo := newMemLivroRepo()
	vendaRepo := newMemVendaRepo(livroRepo)
	vendaSvc := service.NewVendaService(vendaRepo, livroRepo, caixaRepo)
	caixaSvc := service.NewCaixaService(caixaRepo, livroRepo, nil)
	return vendaSvc, caixaSvc, vendaRepo, livroRepo
}

// ── Registro ─────────────────────────────────────────────────────────────────

func TestRegistrarVendaCriaLancamento(t *testing.T) {
	vendaSvc, _, vendaRepo, livroRepo := newVendaFixture()

	cliente := "Carlos Andrade"
	resp, err := vendaSvc.Registrar(context.Background(), dto.RegistrarVendaRequest{
		Cliente:   &cliente,
		Categoria: model.CategoriaServico,
		Descricao: "Troca de tela",
		Total:     dec(180),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.NumeroTicket)
	assert.Equal(t, model.VendaConcluida, resp.Status)

	// Venda e lançamento nasceram juntos
	assert.Len(t, vendaRepo.vendas, 1)
	require.Len(t, livroRepo.transacoes, 1)
	lanc := livroRepo.transacoes[0]
	assert.Equal(t, model.TipoEntrada, lanc.Tipo)
	assert.Equal(t, model.CategoriaServico, lanc.Categoria)
	assert.Equal(t, "180", lanc.Valor.String())
	require.NotNil(t, lanc.ReferenciaID)
	assert.Equal(t, resp.ID, lanc.ReferenciaID.String())
}

func TestRegistrarVendaTotalNegativo(t *testing.T) {
	vendaSvc, _, vendaRepo, livroRepo := newVendaFixture()

	_, err := vendaSvc.Registrar(context.Background(), dto.RegistrarVendaRequest{
		Categoria: model.CategoriaVenda,
		Descricao: "inválida",
		Total:     dec(-1),
	})
	assert.ErrorIs(t, err, model.ErrValorInvalido)
	assert.Empty(t, vendaRepo.vendas)
	assert.Empty(t, livroRepo.transacoes)
}

func TestRegistrarVendaSemCaixaAberto(t *testing.T) {
	// Vendas não exigem caixa; sem sessão aberta o lançamento fica sem tag.
	vendaSvc, _, _, livroRepo := newVendaFixture()

	resp, err := vendaSvc.Registrar(context.Background(), dto.RegistrarVendaRequest{
		Categoria: model.CategoriaVenda,
		Descricao: "Mouse sem fio",
		Total:     dec(45),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.SessaoID)
	require.Len(t, livroRepo.transacoes, 1)
	assert.Nil(t, livroRepo.transacoes[0].SessaoID)
}

func TestRegistrarVendaComCaixaAberto(t *testing.T) {
	vendaSvc, caixaSvc, _, _ := newVendaFixture()

	aberto, err := caixaSvc.Abrir(context.Background(), "maria", dto.AbrirCaixaRequest{ValorInicial: dec(100)})
	require.NoError(t, err)

	resp, err := vendaSvc.Registrar(context.Background(), dto.RegistrarVendaRequest{
		Categoria: model.CategoriaVenda,
		Descricao: "Teclado mecânico",
		Total:     dec(220),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.SessaoID)
	assert.Equal(t, aberto.ID, *resp.SessaoID)
}

func TestNumeroTicketSequencial(t *testing.T) {
	vendaSvc, _, _, _ := newVendaFixture()

	for i := 1; i <= 3; i++ {
		resp, err := vendaSvc.Registrar(context.Background(), dto.RegistrarVendaRequest{
			Categoria: model.CategoriaVenda,
			Descricao: "Venda",
			Total:     dec(10),
		})
		require.NoError(t, err)
		assert.Equal(t, i, resp.NumeroTicket)
	}
}

// ── Cancelamento ─────────────────────────────────────────────────────────────

func TestCancelarVendaSaiDosTotais(t *testing.T) {
	vendaSvc, caixaSvc, _, livroRepo := newVendaFixture()
	ctx := context.Background()

	aberto, err := caixaSvc.Abrir(ctx, "maria", dto.AbrirCaixaRequest{ValorInicial: dec(100)})
	require.NoError(t, err)
	sessaoID := uuid.MustParse(aberto.ID)

	v1, err := vendaSvc.Registrar(ctx, dto.RegistrarVendaRequest{
		Categoria: model.CategoriaVenda, Descricao: "Notebook", Total: dec(2000),
	})
	require.NoError(t, err)
	_, err = vendaSvc.Registrar(ctx, dto.RegistrarVendaRequest{
		Categoria: model.CategoriaServico, Descricao: "Limpeza interna", Total: dec(90),
	})
	require.NoError(t, err)

	resumo, err := caixaSvc.Resumo(ctx, sessaoID)
	require.NoError(t, err)
	assert.Equal(t, "2090", resumo.TotalVendas.String())
	assert.Equal(t, int64(2), resumo.QtdVendas)

	require.NoError(t, vendaSvc.Cancelar(ctx, uuid.MustParse(v1.ID)))

	// O lançamento continua no livro (append-only)...
	assert.Len(t, livroRepo.transacoes, 2)

	// ...mas sai dos agregados
	resumo, err = caixaSvc.Resumo(ctx, sessaoID)
	require.NoError(t, err)
	assert.Equal(t, "90", resumo.TotalVendas.String())
	assert.Equal(t, int64(1), resumo.QtdVendas)
	assert.Equal(t, "190", resumo.EmCaixa.String())
}

func TestCancelarVendaDuasVezes(t *testing.T) {
	vendaSvc, _, _, _ := newVendaFixture()
	ctx := context.Background()

	v, err := vendaSvc.Registrar(ctx, dto.RegistrarVendaRequest{
		Categoria: model.CategoriaVenda, Descricao: "Monitor", Total: dec(700),
	})
	require.NoError(t, err)
	id := uuid.MustParse(v.ID)

	require.NoError(t, vendaSvc.Cancelar(ctx, id))
	assert.ErrorIs(t, vendaSvc.Cancelar(ctx, id), model.ErrTransicaoInvalida)
}

func TestCancelarVendaInexistente(t *testing.T) {
	vendaSvc, _, _, _ := newVendaFixture()

	err := vendaSvc.Cancelar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrNaoEncontrado)
}

func TestListarVendas(t *testing.T) {
	vendaSvc, _, _, _ := newVendaFixture()

	for i := 0; i < 2; i++ {
		_, err := vendaSvc.Registrar(context.Background(), dto.RegistrarVendaRequest{
			Categoria: model.CategoriaVenda, Descricao: "Venda", Total: dec(10),
		})
		require.NoError(t, err)
	}

	vendas, total, err := vendaSvc.Listar(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, vendas, 2)
}
