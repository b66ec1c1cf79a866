package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bikerental/internal/repository"
)

// ReportKind identifies one of the exportable reports.
type ReportKind string

const (
	ReportRentalsInPeriod ReportKind = "rentals_in_period"
	ReportBikeUsage       ReportKind = "bike_usage"
	ReportIncomeByDay     ReportKind = "income_by_day"
	ReportClientSpend     ReportKind = "client_spend"
	ReportTypePopularity  ReportKind = "type_popularity"
)

// ReportFormat identifies the export file format.
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatText ReportFormat = "text"
)

// textPageRows is how many data rows fit on one page of a text export.
const textPageRows = 40

var reportTitles = map[ReportKind]string{
	ReportRentalsInPeriod: "Rentals in period",
	ReportBikeUsage:       "Bike usage",
	ReportIncomeByDay:     "Income by day",
	ReportClientSpend:     "Client spend",
	ReportTypePopularity:  "Type popularity",
}

// ReportService builds report tables from aggregate queries and exports
// them as CSV or paginated text files.
type ReportService struct {
	reportRepo repository.ReportRepository
	outputDir  string
}

// NewReportService creates a new ReportService writing files to outputDir.
func NewReportService(reportRepo repository.ReportRepository, outputDir string) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		outputDir:  outputDir,
	}
}

// ReportResult describes a finished export.
type ReportResult struct {
	Kind     ReportKind
	Format   ReportFormat
	FilePath string
	RowCount int
	Message  string
}

// Generate runs the report query for the inclusive [start, end] date range
// and writes the export file. An empty result produces no file, only a
// message.
func (s *ReportService) Generate(ctx context.Context, kind ReportKind, format ReportFormat, start, end time.Time) (*ReportResult, error) {
	if _, ok := reportTitles[kind]; !ok {
		return nil, ErrUnknownReportKind
	}
	if format != ReportFormatCSV && format != ReportFormatText {
		return nil, ErrUnknownReportFormat
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	header, rows, err := s.table(ctx, kind, start, end)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{
		Kind:     kind,
		Format:   format,
		RowCount: len(rows),
	}

	if len(rows) == 0 {
		result.Message = "No data for the selected period"
		return result, nil
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("Report_%s_%s_%s", kind, start.Format("2006-01-02"), end.Format("2006-01-02"))

	switch format {
	case ReportFormatCSV:
		result.FilePath = filepath.Join(s.outputDir, name+".csv")
		err = writeCSV(result.FilePath, header, rows)
	case ReportFormatText:
		result.FilePath = filepath.Join(s.outputDir, name+".txt")
		err = writeText(result.FilePath, reportTitles[kind], start, end, header, rows)
	}
	if err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Report saved to %s (%d rows)", result.FilePath, len(rows))
	return result, nil
}

// table runs the query for one report kind and flattens it into a header
// plus string rows shared by both export formats.
func (s *ReportService) table(ctx context.Context, kind ReportKind, start, end time.Time) ([]string, [][]string, error) {
	switch kind {
	case ReportRentalsInPeriod:
		data, err := s.reportRepo.RentalsInPeriod(ctx, start, end)
		if err != nil {
			return nil, nil, err
		}
		header := []string{"Rental ID", "Client", "Bike", "Start", "Duration (h)", "Cost", "Status"}
		rows := make([][]string, 0, len(data))
		for _, r := range data {
			rows = append(rows, []string{
				r.RentalID,
				r.ClientName,
				r.BikeModel,
				r.StartTime.Format("2006-01-02 15:04:05"),
				strconv.Itoa(r.DurationHours),
				money(r.TotalCost),
				r.Status,
			})
		}
		return header, rows, nil

	case ReportBikeUsage:
		data, err := s.reportRepo.BikeUsage(ctx, start, end)
		if err != nil {
			return nil, nil, err
		}
		header := []string{"Model", "Rentals", "Average cost"}
		rows := make([][]string, 0, len(data))
		for _, r := range data {
			rows = append(rows, []string{r.Model, strconv.Itoa(r.RentalCount), money(r.AverageCost)})
		}
		return header, rows, nil

	case ReportIncomeByDay:
		data, err := s.reportRepo.IncomeByDay(ctx, start, end)
		if err != nil {
			return nil, nil, err
		}
		header := []string{"Day", "Income"}
		rows := make([][]string, 0, len(data))
		for _, r := range data {
			rows = append(rows, []string{r.Day, money(r.Income)})
		}
		return header, rows, nil

	case ReportClientSpend:
		data, err := s.reportRepo.ClientSpend(ctx, start, end)
		if err != nil {
			return nil, nil, err
		}
		header := []string{"Client", "Rentals", "Total spent"}
		rows := make([][]string, 0, len(data))
		for _, r := range data {
			rows = append(rows, []string{r.ClientName, strconv.Itoa(r.RentalCount), money(r.TotalSpent)})
		}
		return header, rows, nil

	case ReportTypePopularity:
		data, err := s.reportRepo.TypePopularity(ctx, start, end)
		if err != nil {
			return nil, nil, err
		}
		header := []string{"Type", "Rentals"}
		rows := make([][]string, 0, len(data))
		for _, r := range data {
			rows = append(rows, []string{r.Type, strconv.Itoa(r.RentalCount)})
		}
		return header, rows, nil
	}

	return nil, nil, ErrUnknownReportKind
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return f.Close()
}

// writeText renders the table as a fixed-width paginated document with a
// title block and per-page headers.
func writeText(path, title string, start, end time.Time, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	pages := (len(rows) + textPageRows - 1) / textPageRows

	for page := 0; page < pages; page++ {
		if page > 0 {
			b.WriteString("\f")
		}
		fmt.Fprintf(&b, "%s\n", title)
		fmt.Fprintf(&b, "Period: %s - %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
		fmt.Fprintf(&b, "Page %d of %d\n\n", page+1, pages)

		writeRow(&b, header, widths)
		writeRule(&b, widths)

		lo := page * textPageRows
		hi := lo + textPageRows
		if hi > len(rows) {
			hi = len(rows)
		}
		for _, row := range rows[lo:hi] {
			writeRow(&b, row, widths)
		}
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(b, "%-*s", widths[i], cell)
	}
	b.WriteString("\n")
}

func writeRule(b *strings.Builder, widths []int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(widths) - 1)
	b.WriteString(strings.Repeat("-", total))
	b.WriteString("\n")
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
