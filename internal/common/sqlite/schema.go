package sqlite

import (
	"context"
	"fmt"
)

// tables holds the DDL for every entity table, keyed by table name.
// Monetary columns are INTEGER cents; business dates are TEXT in
// YYYY-MM-DD form; audit stamps are INTEGER unix seconds.
var tables = []struct {
	name string
	ddl  string
}{
	{
		name: "accounts",
		ddl: `
			CREATE TABLE IF NOT EXISTS accounts (
				account_id INTEGER PRIMARY KEY AUTOINCREMENT,
				account_name_owner TEXT NOT NULL UNIQUE,
				account_type TEXT NOT NULL,
				moniker TEXT NOT NULL DEFAULT '0000',
				active INTEGER NOT NULL DEFAULT 1,
				cleared INTEGER NOT NULL DEFAULT 0,
				outstanding INTEGER NOT NULL DEFAULT 0,
				future INTEGER NOT NULL DEFAULT 0,
				date_closed TEXT,
				date_added INTEGER NOT NULL,
				date_updated INTEGER NOT NULL
			)
		`,
	},
	{
		name: "categories",
		ddl: `
			CREATE TABLE IF NOT EXISTS categories (
				category_id INTEGER PRIMARY KEY AUTOINCREMENT,
				category_name TEXT NOT NULL UNIQUE,
				active INTEGER NOT NULL DEFAULT 1,
				date_added INTEGER NOT NULL,
				date_updated INTEGER NOT NULL
			)
		`,
	},
	{
		name: "descriptions",
		ddl: `
			CREATE TABLE IF NOT EXISTS descriptions (
				description_id INTEGER PRIMARY KEY AUTOINCREMENT,
				description_name TEXT NOT NULL UNIQUE,
				active INTEGER NOT NULL DEFAULT 1,
				date_added INTEGER NOT NULL,
				date_updated INTEGER NOT NULL
			)
		`,
	},
	{
		name: "parameters",
		ddl: `
			CREATE TABLE IF NOT EXISTS parameters (
				parameter_id INTEGER PRIMARY KEY AUTOINCREMENT,
				parameter_name TEXT NOT NULL UNIQUE,
				parameter_value TEXT NOT NULL,
				active INTEGER NOT NULL DEFAULT 1,
				date_added INTEGER NOT NULL,
				date_updated INTEGER NOT NULL
			)
		`,
	},
	{
		name: "transactions",
		ddl: `
			CREATE TABLE IF NOT EXISTS transactions (
				transaction_id INTEGER PRIMARY KEY AUTOINCREMENT,
				guid TEXT NOT NULL UNIQUE,
				account_name_owner TEXT NOT NULL REFERENCES accounts(account_name_owner),
				transaction_date TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				amount INTEGER NOT NULL DEFAULT 0,
				transaction_state TEXT NOT NULL CHECK (transaction_state IN ('cleared', 'outstanding', 'future')),
				transaction_type TEXT NOT NULL DEFAULT 'undefined',
				reoccurring_type TEXT NOT NULL DEFAULT 'onetime',
				notes TEXT NOT NULL DEFAULT '',
				active INTEGER NOT NULL DEFAULT 1,
				date_added INTEGER NOT NULL,
				date_updated INTEGER NOT NULL
			)
		`,
	},
	{
		name: "payments",
		ddl: `
			CREATE TABLE IF NOT EXISTS payments (
				payment_id INTEGER PRIMARY KEY AUTOINCREMENT,
				source_account TEXT NOT NULL,
				destination_account TEXT NOT NULL,
				transaction_date TEXT NOT NULL,
				amount INTEGER NOT NULL,
				guid_source TEXT,
				guid_destination TEXT,
				active INTEGER NOT NULL DEFAULT 1,
				date_added INTEGER NOT NULL,
				date_updated INTEGER NOT NULL,
				UNIQUE (destination_account, transaction_date, amount)
			)
		`,
	},
	{
		name: "transfers",
		ddl: `
			CREATE TABLE IF NOT EXISTS transfers (
				transfer_id INTEGER PRIMARY KEY AUTOINCREMENT,
				source_account TEXT NOT NULL,
				destination_account TEXT NOT NULL,
				transaction_date TEXT NOT NULL,
				amount INTEGER NOT NULL,
				guid_source TEXT,
				guid_destination TEXT,
				active INTEGER NOT NULL DEFAULT 1,
				date_added INTEGER NOT NULL,
				date_updated INTEGER NOT NULL
			)
		`,
	},
	{
		name: "medical_expenses",
		ddl: `
			CREATE TABLE IF NOT EXISTS medical_expenses (
				medical_expense_id INTEGER PRIMARY KEY AUTOINCREMENT,
				transaction_id INTEGER REFERENCES transactions(transaction_id),
				provider_id INTEGER,
				family_member_id INTEGER,
				service_date TEXT NOT NULL,
				service_description TEXT NOT NULL DEFAULT '',
				procedure_code TEXT NOT NULL DEFAULT '',
				diagnosis_code TEXT NOT NULL DEFAULT '',
				billed_amount INTEGER NOT NULL DEFAULT 0,
				insurance_discount INTEGER NOT NULL DEFAULT 0,
				insurance_paid INTEGER NOT NULL DEFAULT 0,
				patient_responsibility INTEGER NOT NULL DEFAULT 0,
				paid_date TEXT,
				is_out_of_network INTEGER NOT NULL DEFAULT 0,
				claim_number TEXT UNIQUE,
				claim_status TEXT NOT NULL DEFAULT 'submitted',
				active INTEGER NOT NULL DEFAULT 1,
				date_added INTEGER NOT NULL,
				date_updated INTEGER NOT NULL
			)
		`,
	},
}

var indexes = []struct {
	name string
	ddl  string
}{
	{
		name: "idx_transactions_account",
		ddl:  `CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_name_owner, transaction_date)`,
	},
	{
		name: "idx_transactions_state",
		ddl:  `CREATE INDEX IF NOT EXISTS idx_transactions_state ON transactions(account_name_owner, transaction_state) WHERE active = 1`,
	},
	{
		name: "idx_payments_account",
		ddl:  `CREATE INDEX IF NOT EXISTS idx_payments_account ON payments(destination_account, transaction_date)`,
	},
	{
		name: "idx_transfers_account",
		ddl:  `CREATE INDEX IF NOT EXISTS idx_transfers_account ON transfers(source_account, transaction_date)`,
	},
	{
		name: "idx_medical_expenses_claim_status",
		ddl:  `CREATE INDEX IF NOT EXISTS idx_medical_expenses_claim_status ON medical_expenses(claim_status) WHERE active = 1`,
	},
	{
		name: "idx_medical_expenses_service_date",
		ddl:  `CREATE INDEX IF NOT EXISTS idx_medical_expenses_service_date ON medical_expenses(service_date)`,
	},
	{
		name: "idx_medical_expenses_transaction",
		ddl:  `CREATE INDEX IF NOT EXISTS idx_medical_expenses_transaction ON medical_expenses(transaction_id)`,
	},
}

// CreateSchema creates the entity tables and indexes if they don't exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, table.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", table.name, err)
		}
	}

	for _, index := range indexes {
		if _, err := s.db.ExecContext(ctx, index.ddl); err != nil {
			return fmt.Errorf("create index %s: %w", index.name, err)
		}
	}

	return nil
}
