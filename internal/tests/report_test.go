package tests

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/service"
)

// ──────────────────────────────────────────────
// 6. REPORT EXPORT
// ──────────────────────────────────────────────

var (
	reportStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	reportEnd   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

func TestGenerateReport_CSV(t *testing.T) {
	t.Parallel()

	reportRepo := NewMockReportRepository()
	reportRepo.IncomeRows = []*domain.DailyIncomeRow{
		{Day: "2025-06-01", Income: 450.00},
		{Day: "2025-06-02", Income: 210.50},
	}

	reports := service.NewReportService(reportRepo, t.TempDir())

	result, err := reports.Generate(context.Background(), service.ReportIncomeByDay, service.ReportFormatCSV, reportStart, reportEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RowCount != 2 {
		t.Errorf("row count = %d, want 2", result.RowCount)
	}
	if !strings.HasSuffix(result.FilePath, "Report_income_by_day_2025-06-01_2025-06-30.csv") {
		t.Errorf("unexpected file name: %s", result.FilePath)
	}

	f, err := os.Open(result.FilePath)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Day" || records[0][1] != "Income" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "450.00" {
		t.Errorf("income cell = %q, want 450.00", records[1][1])
	}
}

func TestGenerateReport_TextPagination(t *testing.T) {
	t.Parallel()

	reportRepo := NewMockReportRepository()
	for i := 0; i < 85; i++ {
		reportRepo.SpendRows = append(reportRepo.SpendRows, &domain.ClientSpendRow{
			ClientName:  fmt.Sprintf("Client %02d", i),
			RentalCount: i,
			TotalSpent:  float64(i) * 10,
		})
	}

	reports := service.NewReportService(reportRepo, t.TempDir())

	result, err := reports.Generate(context.Background(), service.ReportClientSpend, service.ReportFormatText, reportStart, reportEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	text := string(data)

	// 85 rows at 40 per page is 3 pages.
	if pages := strings.Count(text, "\f") + 1; pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	if !strings.Contains(text, "Page 1 of 3") || !strings.Contains(text, "Page 3 of 3") {
		t.Error("expected page headers on each page")
	}
	if !strings.Contains(text, "Client spend") {
		t.Error("expected report title")
	}
	if !strings.Contains(text, "Period: 2025-06-01 - 2025-06-30") {
		t.Error("expected period line")
	}
}

func TestGenerateReport_EmptyResult(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reports := service.NewReportService(NewMockReportRepository(), dir)

	result, err := reports.Generate(context.Background(), service.ReportBikeUsage, service.ReportFormatCSV, reportStart, reportEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FilePath != "" {
		t.Errorf("expected no file for empty report, got %s", result.FilePath)
	}
	if result.Message != "No data for the selected period" {
		t.Errorf("unexpected message: %q", result.Message)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Error("empty report must not create files")
	}
}

func TestGenerateReport_Rejections(t *testing.T) {
	t.Parallel()

	reports := service.NewReportService(NewMockReportRepository(), t.TempDir())
	ctx := context.Background()

	if _, err := reports.Generate(ctx, "velocity", service.ReportFormatCSV, reportStart, reportEnd); err != service.ErrUnknownReportKind {
		t.Errorf("unknown kind: got %v", err)
	}
	if _, err := reports.Generate(ctx, service.ReportBikeUsage, "xlsx", reportStart, reportEnd); err != service.ErrUnknownReportFormat {
		t.Errorf("unknown format: got %v", err)
	}
	if _, err := reports.Generate(ctx, service.ReportBikeUsage, service.ReportFormatCSV, reportEnd, reportStart); err != service.ErrInvalidDateRange {
		t.Errorf("inverted range: got %v", err)
	}
}

// ──────────────────────────────────────────────
// 7. DASHBOARD
// ──────────────────────────────────────────────

func TestDashboard_RefreshComputesAndCaches(t *testing.T) {
	t.Parallel()

	bikeRepo := NewMockBikeRepository()
	clientRepo := NewMockClientRepository()
	rentalRepo := NewMockRentalRepository()
	cache := NewMockStatsCache()

	bikeRepo.AddBike(&domain.Bike{ID: "bike-1", Status: domain.BikeStatusAvailable})
	bikeRepo.AddBike(&domain.Bike{ID: "bike-2", Status: domain.BikeStatusRented})
	clientRepo.AddClient(&domain.Client{ID: "client-1"})
	rentalRepo.AddRental(&domain.Rental{ID: "rental-1", Status: domain.RentalStatusActive})
	rentalRepo.AddRental(&domain.Rental{
		ID:        "rental-2",
		Status:    domain.RentalStatusCompleted,
		EndTime:   time.Now(),
		TotalCost: 75.00,
	})

	dashboard := service.NewDashboardService(bikeRepo, clientRepo, rentalRepo, cache)

	stats, err := dashboard.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.AvailableBikes != 1 {
		t.Errorf("available bikes = %d, want 1", stats.AvailableBikes)
	}
	if stats.ActiveRentals != 1 {
		t.Errorf("active rentals = %d, want 1", stats.ActiveRentals)
	}
	if stats.Clients != 1 {
		t.Errorf("clients = %d, want 1", stats.Clients)
	}
	if stats.IncomeToday != 75.00 {
		t.Errorf("income today = %v, want 75.00", stats.IncomeToday)
	}
	if cache.SetCallCount != 1 {
		t.Error("refresh must store stats in the cache")
	}
}

func TestDashboard_StatsServedFromCache(t *testing.T) {
	t.Parallel()

	bikeRepo := NewMockBikeRepository()
	cache := NewMockStatsCache()
	_ = cache.Set(context.Background(), &domain.DashboardStats{AvailableBikes: 7})

	dashboard := service.NewDashboardService(bikeRepo, NewMockClientRepository(), NewMockRentalRepository(), cache)

	stats, err := dashboard.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.AvailableBikes != 7 {
		t.Errorf("available bikes = %d, want cached 7", stats.AvailableBikes)
	}
}
