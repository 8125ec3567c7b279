package model

import "errors"

// Erros de domínio do núcleo de caixa/livro-caixa. Os handlers mapeiam cada
// um para o status HTTP correspondente via errors.Is; os services nunca
// devolvem erros de storage crus sem envolvê-los em ErrArmazenamento.
var (
	// ErrValorInvalido: valor monetário negativo ou não numérico.
	ErrValorInvalido = errors.New("valor inválido: deve ser maior ou igual a zero")

	// ErrCaixaJaAberto: tentativa de abrir caixa com outro já aberto.
	ErrCaixaJaAberto = errors.New("já existe um caixa aberto")

	// ErrSemCaixaAberto: reforço/sangria exigem um caixa aberto.
	ErrSemCaixaAberto = errors.New("não há caixa aberto")

	// ErrTransicaoInvalida: fechamento/cancelamento fora do estado permitido.
	ErrTransicaoInvalida = errors.New("transição de estado inválida")

	// ErrNaoEncontrado: sessão, transação ou venda inexistente.
	ErrNaoEncontrado = errors.New("registro não encontrado")

	// ErrCategoriaInvalida: combinação tipo/categoria incoerente
	// (ex.: sangria como entrada).
	ErrCategoriaInvalida = errors.New("categoria incompatível com o tipo de transação")

	// ErrArmazenamento: falha do banco/rede. Nunca é re-tentado pelo núcleo;
	// a decisão de retry é do chamador.
	ErrArmazenamento = errors.New("falha de armazenamento")

	// ErrNaoAutorizado: credenciais ou token inválidos.
	ErrNaoAutorizado = errors.New("credenciais inválidas")
)
