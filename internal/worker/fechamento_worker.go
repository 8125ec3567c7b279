package worker

// fechamento_worker.go
// Processa jobs da QueueFechamento: gera o PDF de fechamento de caixa e,
// quando configurado, agenda o envio por e-mail ao gerente. Relatório é
// melhor-esforço: falha aqui nunca desfaz o fechamento já persistido.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// FechamentoJobPayload carrega o snapshot completo do fechamento. O worker
// não volta ao banco: tudo que o PDF precisa vem no payload, gravado no
// momento do fechamento.
type FechamentoJobPayload struct {
	SessaoID     string          `json:"sessao_id"`
	Operador     string          `json:"operador"`
	ValorInicial decimal.Decimal `json:"valor_inicial"`
	TotalVendas  decimal.Decimal `json:"total_vendas"`
	QtdVendas    int64           `json:"qtd_vendas"`
	Reforcos     decimal.Decimal `json:"reforcos"`
	Sangrias     decimal.Decimal `json:"sangrias"`
	EmCaixa      decimal.Decimal `json:"em_caixa"`
	AbertaEm     string          `json:"aberta_em"`
	FechadaEm    string          `json:"fechada_em"`
}

type FechamentoWorker struct {
	dispatcher  *Dispatcher
	storagePath string
	notifyEmail string
}

func NewFechamentoWorker(dispatcher *Dispatcher, storagePath, notifyEmail string) *FechamentoWorker {
	return &FechamentoWorker{dispatcher: dispatcher, storagePath: storagePath, notifyEmail: notifyEmail}
}

// Process gera o PDF e agenda o e-mail de notificação.
func (w *FechamentoWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload FechamentoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("fechamento_worker: payload inválido")
		return
	}

	rel := infra.RelatorioFechamento{
		SessaoID:     payload.SessaoID,
		Operador:     payload.Operador,
		ValorInicial: payload.ValorInicial,
		TotalVendas:  payload.TotalVendas,
		QtdVendas:    payload.QtdVendas,
		Reforcos:     payload.Reforcos,
		Sangrias:     payload.Sangrias,
		EmCaixa:      payload.EmCaixa,
		AbertaEm:     payload.AbertaEm,
		FechadaEm:    payload.FechadaEm,
	}

	pdfPath, err := infra.GerarFechamentoPDF(rel, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("sessao_id", payload.SessaoID).Msg("fechamento_worker: falha ao gerar PDF")
		return
	}
	log.Info().Str("sessao_id", payload.SessaoID).Str("pdf", pdfPath).Msg("fechamento_worker: relatório gerado")

	if w.notifyEmail == "" || w.dispatcher == nil {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: w.notifyEmail,
		Subject: fmt.Sprintf("Fechamento de caixa — %s", payload.Operador),
		Body: fmt.Sprintf("Caixa fechado em %s.\nOperador: %s\nEm caixa: R$ %s",
			payload.FechadaEm, payload.Operador, payload.EmCaixa.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Error().Err(err).Msg("fechamento_worker: falha ao enfileirar e-mail")
	}
}
