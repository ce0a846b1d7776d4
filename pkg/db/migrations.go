package db

// migrationsSQL is the embedded schema. Statements are idempotent so InitDB
// can run on every start.
const migrationsSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    weighting TEXT NOT NULL,
    min_unlock INTEGER NOT NULL,
    tiers TEXT NOT NULL,
    levels INTEGER NOT NULL,
    overflow_hanzi INTEGER NOT NULL DEFAULT 0,
    overflow_words INTEGER NOT NULL DEFAULT 0,
    skipped_no_definition INTEGER NOT NULL DEFAULT 0,
    skipped_no_decomposition INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS components (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    key TEXT NOT NULL,
    meaning TEXT NOT NULL DEFAULT '',
    usage_count INTEGER NOT NULL DEFAULT 0,
    score REAL NOT NULL DEFAULT 0,
    level INTEGER NOT NULL,
    PRIMARY KEY (run_id, key)
);

CREATE INDEX IF NOT EXISTS idx_components_run_level ON components(run_id, level);

CREATE TABLE IF NOT EXISTS hanzi (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    hanzi TEXT NOT NULL,
    pinyin TEXT NOT NULL DEFAULT '',
    meaning TEXT NOT NULL DEFAULT '',
    components TEXT NOT NULL DEFAULT '',
    tier INTEGER NOT NULL DEFAULT 0,
    is_surname INTEGER NOT NULL DEFAULT 0,
    level INTEGER NOT NULL,
    PRIMARY KEY (run_id, hanzi)
);

CREATE INDEX IF NOT EXISTS idx_hanzi_run_level ON hanzi(run_id, level);

CREATE TABLE IF NOT EXISTS vocabulary (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    word TEXT NOT NULL,
    pinyin TEXT NOT NULL DEFAULT '',
    meaning TEXT NOT NULL DEFAULT '',
    tier INTEGER NOT NULL DEFAULT 0,
    rank INTEGER NOT NULL DEFAULT 0,
    is_surname INTEGER NOT NULL DEFAULT 0,
    level INTEGER NOT NULL,
    PRIMARY KEY (run_id, word)
);

CREATE INDEX IF NOT EXISTS idx_vocabulary_run_level ON vocabulary(run_id, level);
`
