package infrastructure

import "database/sql"

// The unique index on identity_key is the storage-level backstop for
// concurrent uploads of overlapping rows: two batches cannot both insert the
// same logical transaction even if both passed the lookup stage.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		transaction_date DATE,
		post_date DATE,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		auto_category TEXT NOT NULL,
		manual_category TEXT,
		transaction_type TEXT NOT NULL DEFAULT '',
		amount NUMERIC(14,2) NOT NULL,
		memo TEXT,
		balance NUMERIC(14,2),
		check_number TEXT,
		csv_format TEXT NOT NULL,
		identity_key TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS transactions_identity_key_idx ON transactions (identity_key)`,
	`CREATE TABLE IF NOT EXISTS category_rules (
		id SERIAL PRIMARY KEY,
		category_name TEXT NOT NULL,
		regex_pattern TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables and indexes on startup when missing.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
