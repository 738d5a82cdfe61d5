package db

// SchemaVersion is the current database schema version
const SchemaVersion = 3

const schema = `
CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Dimensional checks
CREATE TABLE IF NOT EXISTS dimensional_checks (
    id TEXT PRIMARY KEY,
    operator TEXT NOT NULL DEFAULT '',
    part_id TEXT DEFAULT '',
    x_measured REAL NOT NULL,
    y_measured REAL NOT NULL,
    z_measured REAL NOT NULL,
    x_nominal REAL NOT NULL,
    y_nominal REAL NOT NULL,
    z_nominal REAL NOT NULL,
    tolerance REAL NOT NULL,
    failed_axes TEXT DEFAULT '',
    status TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    deleted_at DATETIME
);

-- Bend tests
CREATE TABLE IF NOT EXISTS bend_tests (
    id TEXT PRIMARY KEY,
    operator TEXT NOT NULL DEFAULT '',
    source_file TEXT NOT NULL DEFAULT '',
    part_id TEXT DEFAULT '',
    job_no TEXT DEFAULT '',
    format TEXT NOT NULL,
    support_span REAL NOT NULL,
    width REAL NOT NULL,
    height REAL NOT NULL,
    min_strength REAL NOT NULL,
    force_unit TEXT NOT NULL,
    sample_count INTEGER NOT NULL DEFAULT 0,
    max_force_n REAL NOT NULL,
    strength_ncm2 REAL NOT NULL,
    slope REAL NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    deleted_at DATETIME
);

-- Bend curve samples
CREATE TABLE IF NOT EXISTS bend_samples (
    test_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    time REAL NOT NULL,
    displacement REAL NOT NULL,
    force_n REAL NOT NULL,
    stress_ncm2 REAL NOT NULL,
    PRIMARY KEY (test_id, seq),
    FOREIGN KEY (test_id) REFERENCES bend_tests(id)
);

-- Loss on ignition tests
CREATE TABLE IF NOT EXISTS loi_tests (
    id TEXT PRIMARY KEY,
    operator TEXT NOT NULL DEFAULT '',
    part_id TEXT DEFAULT '',
    method TEXT NOT NULL,
    t1 REAL NOT NULL,
    w1 REAL NOT NULL,
    t2 REAL NOT NULL,
    mass_loss REAL NOT NULL,
    loi_percent REAL NOT NULL,
    band TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    deleted_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_dimensional_created ON dimensional_checks(created_at);
CREATE INDEX IF NOT EXISTS idx_bend_created ON bend_tests(created_at);
CREATE INDEX IF NOT EXISTS idx_loi_created ON loi_tests(created_at);
`

// Migration defines a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrations is the list of all migrations in order
var Migrations = []Migration{
	{
		Version:     2,
		Description: "Add notes to test records",
		SQL: `ALTER TABLE dimensional_checks ADD COLUMN notes TEXT DEFAULT '';
ALTER TABLE bend_tests ADD COLUMN notes TEXT DEFAULT '';
ALTER TABLE loi_tests ADD COLUMN notes TEXT DEFAULT '';`,
	},
	{
		Version:     3,
		Description: "Add audit log",
		SQL: `CREATE TABLE IF NOT EXISTS action_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action TEXT NOT NULL,
    record_id TEXT NOT NULL,
    detail TEXT DEFAULT '',
    timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_action_log_record ON action_log(record_id);`,
	},
}
