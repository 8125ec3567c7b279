package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/apierror"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Registra decimal.Decimal como tipo numérico para que tags como
	// min=0, gt=0 funcionem sem panic ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate faz o bind do JSON e roda as tags do validator.
// Devolve false já tendo escrito a resposta de erro; o caller deve apenas
// retornar.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// statusFor mapeia os erros de domínio para status HTTP. Erros desconhecidos
// (inclusive ErrArmazenamento) viram 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, model.ErrCaixaJaAberto),
		errors.Is(err, model.ErrSemCaixaAberto),
		errors.Is(err, model.ErrTransicaoInvalida):
		return http.StatusConflict
	case errors.Is(err, model.ErrValorInvalido),
		errors.Is(err, model.ErrCategoriaInvalida):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNaoAutorizado):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError escreve o envelope de erro com o status mapeado. Erros de
// armazenamento são logados aqui e o cliente recebe um único envelope 500
// sem o detalhe interno.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Err(err).
			Msg("erro interno")
		c.JSON(status, apierror.New("Erro interno do servidor"))
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}
