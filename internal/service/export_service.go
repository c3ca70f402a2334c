package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"
)

// ErrExportGenerateFail is returned when the workbook cannot be produced.
var ErrExportGenerateFail = errors.New("failed to generate export file")

// ExportService renders a worker report as an Excel workbook.
type ExportService interface {
	ExportReportXlsx(ctx context.Context, req *dto.ReportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	report ReportService
	logger *zap.Logger
}

// NewExportService creates the ExportService on top of the report service so
// both outputs always agree on the numbers.
func NewExportService(report ReportService, logger *zap.Logger) ExportService {
	return &exportService{report: report, logger: logger}
}

var tipoLabels = map[string]string{
	model.TipoFerie:             "Ferie",
	model.TipoPermesso:          "Permesso",
	model.TipoCassaIntegrazione: "Cassa integrazione",
	model.TipoMutua:             "Mutua",
	model.TipoPaternita:         "Paternità",
}

func (s *exportService) ExportReportXlsx(ctx context.Context, req *dto.ReportRequest) (*bytes.Buffer, string, error) {
	report, err := s.report.GetReport(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Report"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 26)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Rapporto attività — %s", report.User.Nome))
	f.MergeCell(sheetName, "A1", "C1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Periodo: %s — %s", report.Range.StartDate, report.Range.EndDate))
	f.MergeCell(sheetName, "A2", "C2")

	row := 4
	f.SetCellValue(sheetName, cell("A", row), "Categoria")
	f.SetCellValue(sheetName, cell("B", row), "Ore")
	f.SetCellValue(sheetName, cell("C", row), "Millisecondi")
	f.SetCellStyle(sheetName, cell("A", row), cell("C", row), headerStyle)
	row++

	writeTotal := func(label string, total durata.Millis) {
		ore, minuti := total.OreMinuti()
		f.SetCellValue(sheetName, cell("A", row), label)
		f.SetCellValue(sheetName, cell("B", row), fmt.Sprintf("%d:%02d", ore, minuti))
		f.SetCellValue(sheetName, cell("C", row), total.String())
		row++
	}

	writeTotal("Interazioni", report.Totals.Interazioni)
	writeTotal("Trasporti", report.Totals.Trasporti)
	writeTotal("Assenze", report.Totals.Assenze)
	writeTotal("Totale", report.Totals.Overall)

	row++
	f.SetCellValue(sheetName, cell("A", row), "Assenze per tipo")
	f.SetCellStyle(sheetName, cell("A", row), cell("C", row), headerStyle)
	row++
	for _, tipo := range model.TipiAssenza {
		writeTotal(tipoLabels[tipo], report.AssenzeByTipo[tipo])
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("xlsx write failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("rapporto_%s_%s.xlsx", report.Range.StartDate, report.Range.EndDate)
	return buf, filename, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
