package infra

import (
	"fmt"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre a conexão GORM (pgx por baixo), roda AutoMigrate e aplica
// os patches SQL idempotentes que o GORM não expressa (índice único parcial,
// sequence de ticket).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// TranslateError permite detectar violação de unique como
		// gorm.ErrDuplicatedKey no service (corrida de abertura de caixa).
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.SessaoCaixa{},
		&model.Transacao{},
		&model.Venda{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches roda DDL idempotente que o AutoMigrate não cobre.
// Cada statement usa IF NOT EXISTS, então re-executar é seguro.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Invariante central: no máximo UMA sessão de caixa aberta.
		// O índice único parcial serializa o check-and-set da abertura:
		// dois INSERTs concorrentes com status='aberta' não passam os dois.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_sessoes_caixa_aberta') THEN
		    CREATE UNIQUE INDEX uni_sessoes_caixa_aberta
		        ON sessoes_caixa ((status))
		        WHERE status = 'aberta';
		  END IF;
		END $$`,
		// Sequence para numeração atômica de ticket de venda
		`CREATE SEQUENCE IF NOT EXISTS vendas_numero_ticket_seq START 1`,
		// Ordem de inserção do livro para exibição de auditoria
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_transacoes_sessao_ocorrida') THEN
		    CREATE INDEX idx_transacoes_sessao_ocorrida
		        ON transacoes (sessao_id, ocorrida_em);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
