package store

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/lox/statemod/internal/ts"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func testSeries(t *testing.T) *ts.TimeSeries {
	t.Helper()
	s := ts.New(ts.IntervalMonth)
	s.ID = "640511"
	s.Description = "Big ditch"
	s.DataType = "Demand"
	s.Units = "ACFT"
	s.InputName = "test.ddm"
	s.Start = ts.Date{Year: 1978, Month: 1}
	s.End = ts.Date{Year: 1978, Month: 12}
	if err := s.AllocateDataSpace(); err != nil {
		t.Fatalf("AllocateDataSpace: %v", err)
	}
	for m := 1; m <= 12; m++ {
		if m == 6 {
			continue // one missing month
		}
		s.SetValue(ts.Date{Year: 1978, Month: m}, 100.0+float64(m))
	}
	return s
}

func TestUpsertDataset(t *testing.T) {
	store := setupTestStore(t)

	id1, err := store.UpsertDataset(Dataset{BaseName: "gunnison", ResponseFile: "gm2015.rsp", Dir: "/data/gm"})
	if err != nil {
		t.Fatalf("UpsertDataset: %v", err)
	}
	id2, err := store.UpsertDataset(Dataset{BaseName: "gunnison", ResponseFile: "gm2015.rsp", Dir: "/data/gm2"})
	if err != nil {
		t.Fatalf("UpsertDataset update: %v", err)
	}
	if id1 != id2 {
		t.Errorf("upsert changed id: %d then %d", id1, id2)
	}

	datasets, err := store.ListDatasets()
	if err != nil {
		t.Fatalf("ListDatasets: %v", err)
	}
	if len(datasets) != 1 {
		t.Fatalf("len(datasets) = %d, want 1", len(datasets))
	}
	if datasets[0].Dir != "/data/gm2" {
		t.Errorf("Dir = %q, want /data/gm2", datasets[0].Dir)
	}
}

func TestInsertAndGetSeries(t *testing.T) {
	store := setupTestStore(t)
	datasetID, err := store.UpsertDataset(Dataset{BaseName: "gunnison", ResponseFile: "gm2015.rsp"})
	if err != nil {
		t.Fatalf("UpsertDataset: %v", err)
	}

	orig := testSeries(t)
	if err := store.InsertSeries(datasetID, orig); err != nil {
		t.Fatalf("InsertSeries: %v", err)
	}

	got, err := store.GetSeries(datasetID, "640511", "Demand", ts.IntervalMonth)
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if got == nil {
		t.Fatal("GetSeries returned nil for archived series")
	}
	if got.Description != "Big ditch" || got.Units != "ACFT" {
		t.Errorf("metadata = %q/%q, want Big ditch/ACFT", got.Description, got.Units)
	}
	if got.Start != orig.Start || got.End != orig.End {
		t.Errorf("period = %s to %s, want %s to %s", got.Start, got.End, orig.Start, orig.End)
	}
	for m := 1; m <= 12; m++ {
		d := ts.Date{Year: 1978, Month: m}
		gv, ov := got.Value(d), orig.Value(d)
		if ts.IsMissing(ov) {
			if !ts.IsMissing(gv) {
				t.Errorf("%s = %v, want missing", d, gv)
			}
			continue
		}
		if gv != ov {
			t.Errorf("%s = %v, want %v", d, gv, ov)
		}
	}
}

func TestInsertSeriesReplaces(t *testing.T) {
	store := setupTestStore(t)
	datasetID, err := store.UpsertDataset(Dataset{BaseName: "gunnison", ResponseFile: "gm2015.rsp"})
	if err != nil {
		t.Fatalf("UpsertDataset: %v", err)
	}

	orig := testSeries(t)
	if err := store.InsertSeries(datasetID, orig); err != nil {
		t.Fatalf("InsertSeries: %v", err)
	}

	orig.SetValue(ts.Date{Year: 1978, Month: 1}, 999.5)
	if err := store.InsertSeries(datasetID, orig); err != nil {
		t.Fatalf("InsertSeries replace: %v", err)
	}

	got, err := store.GetSeries(datasetID, "640511", "Demand", ts.IntervalMonth)
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if v := got.Value(ts.Date{Year: 1978, Month: 1}); v != 999.5 {
		t.Errorf("replaced value = %v, want 999.5", v)
	}

	list, err := store.ListSeries(datasetID)
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d after replace, want 1", len(list))
	}
}

func TestGetSeriesNotFound(t *testing.T) {
	store := setupTestStore(t)
	datasetID, err := store.UpsertDataset(Dataset{BaseName: "gunnison", ResponseFile: "gm2015.rsp"})
	if err != nil {
		t.Fatalf("UpsertDataset: %v", err)
	}

	got, err := store.GetSeries(datasetID, "NOPE", "Demand", ts.IntervalMonth)
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if got != nil {
		t.Errorf("GetSeries for unknown station = %+v, want nil", got)
	}
}

func TestListSeries(t *testing.T) {
	store := setupTestStore(t)
	datasetID, err := store.UpsertDataset(Dataset{BaseName: "gunnison", ResponseFile: "gm2015.rsp"})
	if err != nil {
		t.Fatalf("UpsertDataset: %v", err)
	}

	s1 := testSeries(t)
	s2 := testSeries(t)
	s2.ID = "640522"
	for _, s := range []*ts.TimeSeries{s1, s2} {
		if err := store.InsertSeries(datasetID, s); err != nil {
			t.Fatalf("InsertSeries %s: %v", s.ID, err)
		}
	}

	list, err := store.ListSeries(datasetID)
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].ID != "640511" || list[1].ID != "640522" {
		t.Errorf("order = %q, %q, want 640511, 640522", list[0].ID, list[1].ID)
	}
	if list[0].Interval != ts.IntervalMonth {
		t.Errorf("Interval = %v, want Month", list[0].Interval)
	}
	if list[0].HasData() {
		t.Error("ListSeries returned values, want metadata only")
	}
}

func TestFetchLog(t *testing.T) {
	store := setupTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.LogFetch(FetchRecord{
			Host:       "ftp.dnr.state.co.us:21",
			RemotePath: "/models/gunnison",
			LocalPath:  "/data/gm/file.ddm",
			Bytes:      int64(1000 + i),
		}); err != nil {
			t.Fatalf("LogFetch: %v", err)
		}
	}

	records, err := store.RecentFetches(2)
	if err != nil {
		t.Fatalf("RecentFetches: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Host != "ftp.dnr.state.co.us:21" {
		t.Errorf("Host = %q, want ftp.dnr.state.co.us:21", records[0].Host)
	}
}

func TestMigrationVersion(t *testing.T) {
	store := setupTestStore(t)
	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("MigrationVersion: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("version = %d, want %d", version, len(migrations))
	}
}
