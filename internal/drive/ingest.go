package drive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Client is the slice of the Drive surface the ingest pipeline needs.
// *Service satisfies it.
type Client interface {
	ListFiles(ctx context.Context, folderID string) ([]*File, error)
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
	FindFolderByPath(ctx context.Context, path string) (string, error)
}

// InventoryUpdater applies ingested cost prices to the inventory.
type InventoryUpdater interface {
	UpdateCostPrice(ctx context.Context, name string, costPrice float64) (int64, error)
}

// IngestResult summarizes one price-list ingestion run.
type IngestResult struct {
	RowsProcessed int      `json:"rows_processed"`
	RowsApplied   int      `json:"rows_applied"`
	Unmatched     []string `json:"unmatched,omitempty"`
}

// FolderIngestResult aggregates a batch run over every CSV in a folder.
type FolderIngestResult struct {
	FilesIngested int                      `json:"files_ingested"`
	FilesSkipped  int                      `json:"files_skipped"`
	Files         map[string]*IngestResult `json:"files"`
}

// IngestService pulls supplier price-list CSVs from Drive and applies the
// cost prices to matching inventory items. Price changes affect future
// reports only; placed orders keep the totals they were costed with.
type IngestService struct {
	drive     Client
	inventory InventoryUpdater
}

func NewIngestService(drive Client, inventory InventoryUpdater) *IngestService {
	return &IngestService{
		drive:     drive,
		inventory: inventory,
	}
}

// IngestFile downloads a price-list CSV by Drive file id and applies it.
// Expected columns: item, cost_price (extra columns ignored).
func (s *IngestService) IngestFile(ctx context.Context, fileID string) (*IngestResult, error) {
	pr, pw := io.Pipe()
	go func() {
		err := s.drive.DownloadFile(ctx, fileID, pw)
		pw.CloseWithError(err)
	}()

	reader := csv.NewReader(pr)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"item", "cost_price"} {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	result := &IngestResult{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		name := strings.TrimSpace(record[colMap["item"]])
		if name == "" {
			continue
		}

		costPrice, err := strconv.ParseFloat(strings.TrimSpace(record[colMap["cost_price"]]), 64)
		if err != nil || costPrice < 0 {
			log.Warn().Str("item", name).Msg("price list: skipping row with invalid cost price")
			continue
		}

		result.RowsProcessed++

		rows, err := s.inventory.UpdateCostPrice(ctx, name, costPrice)
		if err != nil {
			return nil, fmt.Errorf("apply cost price for %q: %w", name, err)
		}
		if rows == 0 {
			result.Unmatched = append(result.Unmatched, name)
			continue
		}
		result.RowsApplied++
	}

	log.Info().
		Int("processed", result.RowsProcessed).
		Int("applied", result.RowsApplied).
		Int("unmatched", len(result.Unmatched)).
		Msg("price list ingested")

	return result, nil
}

// IngestFolder resolves a slash-separated folder path and ingests every
// CSV file in it. Non-CSV files are counted as skipped, and a file that
// fails to parse aborts the batch so a half-applied folder is visible.
func (s *IngestService) IngestFolder(ctx context.Context, folderPath string) (*FolderIngestResult, error) {
	folderID, err := s.drive.FindFolderByPath(ctx, folderPath)
	if err != nil {
		return nil, fmt.Errorf("resolve folder %q: %w", folderPath, err)
	}

	files, err := s.drive.ListFiles(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list folder %q: %w", folderPath, err)
	}

	result := &FolderIngestResult{Files: make(map[string]*IngestResult)}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if strings.ToLower(filepath.Ext(f.Name)) != ".csv" {
			result.FilesSkipped++
			continue
		}

		fileResult, err := s.IngestFile(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", f.Name, err)
		}
		result.Files[f.Name] = fileResult
		result.FilesIngested++
	}

	log.Info().
		Str("folder", folderPath).
		Int("ingested", result.FilesIngested).
		Int("skipped", result.FilesSkipped).
		Msg("price list folder ingested")

	return result, nil
}
