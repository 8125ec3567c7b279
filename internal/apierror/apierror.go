// Package apierror padroniza as respostas de erro da API. Todo 4xx/5xx passa
// por aqui para não vazar detalhe interno (stack trace, erro de banco, etc.).
package apierror

// APIError é o envelope canônico de erro para respostas HTTP.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrupa múltiplos erros de campo.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}
