package drive

import (
	"context"
	"io"
	"testing"
)

type fakeDrive struct {
	files     map[string][]*File // folderID -> files
	contents  map[string]string  // fileID -> CSV body
	folderIDs map[string]string  // path -> folderID
}

func (f *fakeDrive) ListFiles(_ context.Context, folderID string) ([]*File, error) {
	return f.files[folderID], nil
}

func (f *fakeDrive) DownloadFile(_ context.Context, fileID string, w io.Writer) error {
	_, err := io.WriteString(w, f.contents[fileID])
	return err
}

func (f *fakeDrive) FindFolderByPath(_ context.Context, path string) (string, error) {
	return f.folderIDs[path], nil
}

type fakeInventory struct {
	known   map[string]bool
	applied map[string]float64
}

func (f *fakeInventory) UpdateCostPrice(_ context.Context, name string, costPrice float64) (int64, error) {
	if !f.known[name] {
		return 0, nil
	}
	if f.applied == nil {
		f.applied = make(map[string]float64)
	}
	f.applied[name] = costPrice
	return 1, nil
}

func TestIngestFileAppliesAndSkips(t *testing.T) {
	dr := &fakeDrive{
		contents: map[string]string{
			"file-1": "supplier,item,cost_price\n" +
				"Acme,Paneer,420\n" +
				"Acme,Unknown Thing,50\n" +
				"Acme,Gin,not-a-number\n" +
				"Acme,Lime,-5\n" +
				"Acme,,10\n",
		},
	}
	inv := &fakeInventory{known: map[string]bool{"Paneer": true}}
	svc := NewIngestService(dr, inv)

	result, err := svc.IngestFile(context.Background(), "file-1")
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}

	// Invalid price, negative price, and blank name rows never count as
	// processed; the unknown item counts as processed but unmatched.
	if result.RowsProcessed != 2 || result.RowsApplied != 1 {
		t.Fatalf("result = %+v, want 2 processed / 1 applied", result)
	}
	if len(result.Unmatched) != 1 || result.Unmatched[0] != "Unknown Thing" {
		t.Fatalf("Unmatched = %v", result.Unmatched)
	}
	if inv.applied["Paneer"] != 420 {
		t.Fatalf("applied = %v, want Paneer at 420", inv.applied)
	}
}

func TestIngestFileRequiresColumns(t *testing.T) {
	dr := &fakeDrive{contents: map[string]string{"file-1": "name,price\nPaneer,420\n"}}
	svc := NewIngestService(dr, &fakeInventory{})

	if _, err := svc.IngestFile(context.Background(), "file-1"); err == nil {
		t.Fatal("expected error for missing item/cost_price columns")
	}
}

func TestIngestFolderFiltersToCSV(t *testing.T) {
	dr := &fakeDrive{
		folderIDs: map[string]string{"hotelops/price_lists": "folder-1"},
		files: map[string][]*File{
			"folder-1": {
				{ID: "file-a", Name: "acme.csv"},
				{ID: "file-b", Name: "Bulk.CSV"},
				{ID: "file-c", Name: "notes.xlsx"},
				{ID: "file-d", Name: "readme.txt"},
			},
		},
		contents: map[string]string{
			"file-a": "item,cost_price\nPaneer,420\n",
			"file-b": "item,cost_price\nGin,1150\n",
		},
	}
	inv := &fakeInventory{known: map[string]bool{"Paneer": true, "Gin": true}}
	svc := NewIngestService(dr, inv)

	result, err := svc.IngestFolder(context.Background(), "hotelops/price_lists")
	if err != nil {
		t.Fatalf("IngestFolder: %v", err)
	}

	if result.FilesIngested != 2 || result.FilesSkipped != 2 {
		t.Fatalf("result = %+v, want 2 ingested / 2 skipped", result)
	}
	if inv.applied["Paneer"] != 420 || inv.applied["Gin"] != 1150 {
		t.Fatalf("applied = %v", inv.applied)
	}
	if result.Files["acme.csv"] == nil || result.Files["acme.csv"].RowsApplied != 1 {
		t.Fatalf("per-file results = %+v", result.Files)
	}
}

func TestIngestFolderHonorsCancellation(t *testing.T) {
	dr := &fakeDrive{
		folderIDs: map[string]string{"p": "folder-1"},
		files:     map[string][]*File{"folder-1": {{ID: "file-a", Name: "acme.csv"}}},
		contents:  map[string]string{"file-a": "item,cost_price\nPaneer,420\n"},
	}
	svc := NewIngestService(dr, &fakeInventory{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.IngestFolder(ctx, "p"); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
