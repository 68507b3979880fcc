package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS rpp_snapshot (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    source_url           TEXT NOT NULL,
    fetched_at           TEXT NOT NULL,
    row_count            INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS rpp_entries (
    code                 TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    rpp_index            REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rpp_entries_name ON rpp_entries(name);
`
