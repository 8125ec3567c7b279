package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueFechamento = "jobs:fechamento"
	QueueEmail      = "jobs:email"
)

// Job é o envelope genérico de toda tarefa assíncrona.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enfileira jobs assíncronos em listas do Redis.
// O pool de workers consome via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueFechamento agenda a geração do relatório de fechamento de caixa.
func (d *Dispatcher) EnqueueFechamento(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueFechamento, "fechamento", payload)
}

// EnqueueEmail agenda o envio de um e-mail com anexo.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers agrupa os processadores de cada fila. São injetados na raiz
// de composição para que o pool tenha acesso a toda a infraestrutura.
type WorkerHandlers struct {
	Fechamento *FechamentoWorker
	Email      *EmailWorker
}

// StartWorkerPool lança numWorkers goroutines consumindo as duas filas.
// Cada goroutine bloqueia em BRPOP — zero CPU quando ociosa.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool iniciado com %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueFechamento, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d encerrando", id)
			return
		default:
			// Pop bloqueante — espera até 5s e volta a checar o ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout ou contexto cancelado
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("falha ao decodificar job")
		return
	}
	switch queue {
	case QueueFechamento:
		if handlers.Fechamento != nil {
			handlers.Fechamento.Process(ctx, job.Payload)
		}
	case QueueEmail:
		if handlers.Email != nil {
			handlers.Email.Process(ctx, job.Payload)
		}
	default:
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("fila desconhecida")
	}
}
