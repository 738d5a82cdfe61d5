package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brafe/qc/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Initialize(t.TempDir())
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitialize(t *testing.T) {
	dir := t.TempDir()

	db, err := Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, ".qc", "records.db")); os.IsNotExist(err) {
		t.Error("database file not created")
	}

	version, err := db.GetSchemaVersion()
	if err != nil {
		t.Fatalf("GetSchemaVersion failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("schema version = %d, want %d", version, SchemaVersion)
	}

	has, err := db.columnExists("loi_tests", "notes")
	if err != nil {
		t.Fatalf("columnExists failed: %v", err)
	}
	if !has {
		t.Error("notes column missing after migrations")
	}
}

func TestOpenWithoutInit(t *testing.T) {
	_, err := Open(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "qc init") {
		t.Fatalf("Open on empty dir: got %v, want hint to run qc init", err)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	db, err := Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	c := &models.DimensionalCheck{Operator: "ana", XMeasured: 172, YMeasured: 22.4, ZMeasured: 22.4, Status: models.StatusPass}
	if err := db.CreateDimensionalCheck(c); err != nil {
		t.Fatalf("CreateDimensionalCheck failed: %v", err)
	}
	db.Close()

	db, err = Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	if _, err := db.GetDimensionalCheck(c.ID); err != nil {
		t.Errorf("record lost after reopen: %v", err)
	}
}

func TestCreateAndGetDimensionalCheck(t *testing.T) {
	db := newTestDB(t)

	c := &models.DimensionalCheck{
		Operator:   "ana",
		PartID:     "P-100",
		XMeasured:  172.6,
		YMeasured:  22.4,
		ZMeasured:  21.8,
		XNominal:   172,
		YNominal:   22.4,
		ZNominal:   22.4,
		Tolerance:  0.45,
		Status:     models.StatusFail,
		FailedAxes: []string{"x", "z"},
	}
	if err := db.CreateDimensionalCheck(c); err != nil {
		t.Fatalf("CreateDimensionalCheck failed: %v", err)
	}
	if !strings.HasPrefix(c.ID, "dc-") || len(c.ID) != 9 {
		t.Errorf("unexpected ID %q", c.ID)
	}

	got, err := db.GetDimensionalCheck(c.ID)
	if err != nil {
		t.Fatalf("GetDimensionalCheck failed: %v", err)
	}
	if got.PartID != "P-100" || got.ZMeasured != 21.8 || got.Status != models.StatusFail {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if strings.Join(got.FailedAxes, ",") != "x,z" {
		t.Errorf("FailedAxes = %v, want [x z]", got.FailedAxes)
	}
	if got.CreatedAt.Sub(c.CreatedAt).Abs() > time.Millisecond {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, c.CreatedAt)
	}
}

func TestCreateBendTestStoresSamples(t *testing.T) {
	db := newTestDB(t)

	bt := &models.BendTest{
		Operator:     "ben",
		SourceFile:   "20240506_101112_PART1234(567).csv",
		PartID:       "PART1234",
		JobNo:        "56",
		Format:       "machine",
		SupportSpan:  100,
		Width:        22.4,
		Height:       22.4,
		MinStrength:  260,
		ForceUnit:    "kN",
		MaxForceN:    900,
		StrengthNcm2: 1200,
		Status:       models.StatusPass,
		Samples: []models.BendSample{
			{Seq: 1, Time: 0.1, Displacement: 0.01, ForceN: 100, StressNcm2: 130},
			{Seq: 2, Time: 0.2, Displacement: 0.02, ForceN: 900, StressNcm2: 1200},
		},
	}
	if err := db.CreateBendTest(bt); err != nil {
		t.Fatalf("CreateBendTest failed: %v", err)
	}
	if bt.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", bt.SampleCount)
	}

	got, err := db.GetBendTest(bt.ID)
	if err != nil {
		t.Fatalf("GetBendTest failed: %v", err)
	}
	if len(got.Samples) != 2 || got.Samples[1].ForceN != 900 {
		t.Errorf("samples = %+v", got.Samples)
	}
	if got.JobNo != "56" || got.ForceUnit != "kN" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	list, err := db.ListBendTests(ListOptions{})
	if err != nil {
		t.Fatalf("ListBendTests failed: %v", err)
	}
	if len(list) != 1 || list[0].Samples != nil {
		t.Errorf("ListBendTests should return one test without samples, got %+v", list)
	}
}

func TestCreateAndGetLOITest(t *testing.T) {
	db := newTestDB(t)

	lt := &models.LOITest{
		Operator: "lin", Method: "bunsen",
		T1: -44.904, W1: 30.023, T2: -74.422,
		MassLoss: 0.505, LOIPercent: 1.682, Band: "optimal", Status: models.StatusPass,
	}
	if err := db.CreateLOITest(lt); err != nil {
		t.Fatalf("CreateLOITest failed: %v", err)
	}

	got, err := db.GetLOITest(lt.ID)
	if err != nil {
		t.Fatalf("GetLOITest failed: %v", err)
	}
	if got.T1 != -44.904 || got.Band != "optimal" || got.Method != "bunsen" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetUnknownReturnsNotFound(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetDimensionalCheck("dc-000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDimensionalCheck: got %v, want ErrNotFound", err)
	}
	if _, err := db.GetBendTest("bt-000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBendTest: got %v, want ErrNotFound", err)
	}
	if _, err := db.GetLOITest("lo-000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLOITest: got %v, want ErrNotFound", err)
	}
	if err := db.DeleteRecord("zz-123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteRecord with unknown prefix: got %v, want ErrNotFound", err)
	}
}

func TestDeleteRecordHidesIt(t *testing.T) {
	db := newTestDB(t)

	lt := &models.LOITest{Method: "oven", W1: 30, LOIPercent: 1, Band: "optimal", Status: models.StatusPass}
	if err := db.CreateLOITest(lt); err != nil {
		t.Fatalf("CreateLOITest failed: %v", err)
	}
	if err := db.DeleteRecord(lt.ID); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}

	if _, err := db.GetLOITest(lt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted record still visible: %v", err)
	}
	if err := db.DeleteRecord(lt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}

	all, err := db.ListLOITests(ListOptions{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("ListLOITests failed: %v", err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Errorf("IncludeDeleted listing = %+v", all)
	}

	if err := db.RestoreRecord(lt.ID); err != nil {
		t.Fatalf("RestoreRecord failed: %v", err)
	}
	if _, err := db.GetLOITest(lt.ID); err != nil {
		t.Errorf("restored record not visible: %v", err)
	}
	if err := db.RestoreRecord(lt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("restoring a live record: got %v, want ErrNotFound", err)
	}
}

func TestAddNoteAppends(t *testing.T) {
	db := newTestDB(t)

	c := &models.DimensionalCheck{Status: models.StatusPass}
	if err := db.CreateDimensionalCheck(c); err != nil {
		t.Fatalf("CreateDimensionalCheck failed: %v", err)
	}
	if err := db.AddNote(c.ID, "first"); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if err := db.AddNote(c.ID, "  second "); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if err := db.AddNote(c.ID, "   "); !errors.Is(err, ErrEmptyNote) {
		t.Errorf("empty note: got %v, want ErrEmptyNote", err)
	}

	got, err := db.GetDimensionalCheck(c.ID)
	if err != nil {
		t.Fatalf("GetDimensionalCheck failed: %v", err)
	}
	if got.Notes != "first\nsecond" {
		t.Errorf("Notes = %q, want %q", got.Notes, "first\nsecond")
	}
}

func seedRecords(t *testing.T, db *DB) {
	t.Helper()
	base := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	checks := []*models.DimensionalCheck{
		{Status: models.StatusPass, CreatedAt: base},
		{Status: models.StatusFail, CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, c := range checks {
		if err := db.CreateDimensionalCheck(c); err != nil {
			t.Fatalf("CreateDimensionalCheck failed: %v", err)
		}
	}
	bt := &models.BendTest{Format: "machine", ForceUnit: "kN", PartID: "P1", StrengthNcm2: 300, Status: models.StatusPass, CreatedAt: base.Add(time.Minute)}
	if err := db.CreateBendTest(bt); err != nil {
		t.Fatalf("CreateBendTest failed: %v", err)
	}
	lt := &models.LOITest{Method: "bunsen", LOIPercent: 3.1, Band: "excessive", Status: models.StatusFail, CreatedAt: base.Add(2 * time.Minute)}
	if err := db.CreateLOITest(lt); err != nil {
		t.Fatalf("CreateLOITest failed: %v", err)
	}
}

func TestListRecordsAcrossKinds(t *testing.T) {
	db := newTestDB(t)
	seedRecords(t, db)

	all, err := db.ListRecords(RecordFilter{})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	wantKinds := []models.Kind{models.KindDimensional, models.KindLOI, models.KindBend, models.KindDimensional}
	if len(all) != len(wantKinds) {
		t.Fatalf("got %d records, want %d", len(all), len(wantKinds))
	}
	for i, k := range wantKinds {
		if all[i].Kind != k {
			t.Errorf("record %d kind = %s, want %s", i, all[i].Kind, k)
		}
	}
	if all[1].Summary != "3.10% binder (bunsen)" {
		t.Errorf("LOI summary = %q", all[1].Summary)
	}

	failed, err := db.ListRecords(RecordFilter{Status: models.StatusFail})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(failed) != 2 {
		t.Errorf("failed records = %d, want 2", len(failed))
	}

	bends, err := db.ListRecords(RecordFilter{Kind: models.KindBend, Limit: 5})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(bends) != 1 || bends[0].Summary != "P1  300.0 N/cm2" {
		t.Errorf("bend records = %+v", bends)
	}

	limited, err := db.ListRecords(RecordFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d", len(limited))
	}
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	seedRecords(t, db)

	stats, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d kinds, want 3", len(stats))
	}
	dim := stats[0]
	if dim.Kind != models.KindDimensional || dim.Total != 2 || dim.Passed != 1 || dim.Failed != 1 {
		t.Errorf("dim stats = %+v", dim)
	}
	if stats[2].PassRate() != 0 {
		t.Errorf("loi pass rate = %v, want 0", stats[2].PassRate())
	}
}

func TestKindOf(t *testing.T) {
	tests := map[string]models.Kind{"dc-abc123": models.KindDimensional, "bt-abc123": models.KindBend, "lo-abc123": models.KindLOI}
	for id, want := range tests {
		got, ok := KindOf(id)
		if !ok || got != want {
			t.Errorf("KindOf(%q) = %s, %v; want %s", id, got, ok, want)
		}
	}
	if _, ok := KindOf("zz-123"); ok {
		t.Error("KindOf should reject unknown prefixes")
	}
}
