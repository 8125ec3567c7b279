package handler

import (
	"net/http"
	"strconv"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/dto"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatorioHandler struct{ svc service.RelatorioService }

func NewRelatorioHandler(svc service.RelatorioService) *RelatorioHandler {
	return &RelatorioHandler{svc: svc}
}

func periodoFromQuery(c *gin.Context) dto.PeriodoFilter {
	return dto.PeriodoFilter{De: c.Query("de"), Ate: c.Query("ate")}
}

// Receita godoc
// @Summary Receita total do período (vendas ativas + serviços)
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param de query string false "Data inicial (YYYY-MM-DD)"
// @Param ate query string false "Data final (YYYY-MM-DD)"
// @Success 200 {object} dto.ReceitaResponse
// @Router /v1/relatorios/receita [get]
func (h *RelatorioHandler) Receita(c *gin.Context) {
	resp, err := h.svc.Receita(c.Request.Context(), periodoFromQuery(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TotaisPorCategoria godoc
// @Summary Totais do livro agrupados por categoria
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoriaTotalResponse
// @Router /v1/relatorios/categorias [get]
func (h *RelatorioHandler) TotaisPorCategoria(c *gin.Context) {
	resp, err := h.svc.TotaisPorCategoria(c.Request.Context(), periodoFromQuery(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopDescricoes godoc
// @Summary Descrições mais frequentes do livro no período
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param n query int false "Quantidade (padrão 10)"
// @Success 200 {array} dto.TopDescricaoResponse
// @Router /v1/relatorios/top [get]
func (h *RelatorioHandler) TopDescricoes(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))
	if n < 1 || n > 50 {
		n = 10
	}
	resp, err := h.svc.TopDescricoes(c.Request.Context(), periodoFromQuery(c), n)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarTransacoes godoc
// @Summary Lista o livro-caixa com filtros de data, categoria e sessão
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TransacaoListResponse
// @Router /v1/relatorios/livro [get]
func (h *RelatorioHandler) ListarTransacoes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	filter := dto.TransacaoFilter{
		De:        c.Query("de"),
		Ate:       c.Query("ate"),
		Categoria: c.Query("categoria"),
		SessaoID:  c.Query("sessao_id"),
		Page:      page,
		Limit:     limit,
	}
	resp, err := h.svc.ListarTransacoes(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
