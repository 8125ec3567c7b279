package infra

// pdf.go — Relatório de fechamento de caixa em PDF via go-pdf/fpdf.
// Formato cupom térmico (74mm), com:
//   - Cabeçalho com nome da loja
//   - Identificação da sessão, operador e horários
//   - Linhas de totais (vendas, reforços, sangrias)
//   - "EM CAIXA" em negrito
//
// O arquivo é gravado em storagePath/fechamento_{sessao}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// RelatorioFechamento é o snapshot renderizado no PDF. Os valores chegam
// prontos do fechamento; nada é recalculado aqui.
type RelatorioFechamento struct {
	SessaoID     string
	Operador     string
	ValorInicial decimal.Decimal
	TotalVendas  decimal.Decimal
	QtdVendas    int64
	Reforcos     decimal.Decimal
	Sangrias     decimal.Decimal
	EmCaixa      decimal.Decimal
	AbertaEm     string
	FechadaEm    string
}

// GerarFechamentoPDF grava o relatório e devolve o caminho absoluto do arquivo.
func GerarFechamentoPDF(rel RelatorioFechamento, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: criar diretório: %w", err)
	}

	fileName := fmt.Sprintf("fechamento_%s.pdf", rel.SessaoID)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 105mm — próximo do papel térmico de cupom
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // margens somam 8mm

	// ── Cabeçalho ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "CR Informática", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Fechamento de Caixa", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Identificação da sessão ───────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Operador: "+rel.Operador, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Abertura:   "+rel.AbertaEm, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Fechamento: "+rel.FechadaEm, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totais ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.62
	col2 := contentW * 0.38

	linha := func(label, valor string) {
		pdf.CellFormat(col1, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, valor, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 7)
	linha("Valor inicial:", "R$ "+rel.ValorInicial.StringFixed(2))
	linha(fmt.Sprintf("Vendas (%d):", rel.QtdVendas), "R$ "+rel.TotalVendas.StringFixed(2))
	linha("Reforços:", "R$ "+rel.Reforcos.StringFixed(2))
	linha("Sangrias:", "-R$ "+rel.Sangrias.StringFixed(2))

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "EM CAIXA:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "R$ "+rel.EmCaixa.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Rodapé ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.CellFormat(contentW, 4, "Sessão "+rel.SessaoID, "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: gravar arquivo: %w", err)
	}

	return filePath, nil
}
