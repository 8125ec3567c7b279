package worker

// email_worker.go
// Processa jobs da QueueEmail: envia relatórios em PDF por SMTP.

import (
	"context"
	"encoding/json"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload é o envelope de job enviado para a QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process envia o e-mail com o PDF anexado.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: payload inválido")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: to_email vazio, job ignorado")
		return
	}

	if err := w.mailer.SendRelatorio(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: falha ao enviar e-mail")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: relatório enviado")
}
