package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS replies (
    reply_key            TEXT PRIMARY KEY,
    scope                TEXT NOT NULL,
    reply_text           TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    hits                 INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_replies_created ON replies(created_at);
CREATE INDEX IF NOT EXISTS idx_replies_scope ON replies(scope);
`
