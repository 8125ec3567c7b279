package handler

import (
	"net/http"
	"strconv"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/apierror"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/dto"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendaHandler struct{ svc service.VendaService }

func NewVendaHandler(svc service.VendaService) *VendaHandler { return &VendaHandler{svc: svc} }

// Registrar godoc
// @Summary Registra uma venda ou serviço e lança a entrada correspondente no livro
// @Tags vendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarVendaRequest true "Venda"
// @Success 201 {object} dto.VendaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/vendas [post]
func (h *VendaHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancelar godoc
// @Summary Cancela uma venda; os lançamentos ligados a ela deixam de contar nos totais
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da venda"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/vendas/{id}/cancelar [post]
func (h *VendaHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Listar devolve as vendas registradas, paginado.
func (h *VendaHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, total, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "total": total, "page": page, "limit": limit})
}
