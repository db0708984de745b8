package infrastructure

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, transaction_date, post_date, description, category, auto_category,
	manual_category, transaction_type, amount, memo, balance, check_number, csv_format, created_at`

func scanTransaction(scanner interface{ Scan(...interface{}) error }) (domain.Transaction, error) {
	var txn domain.Transaction
	var transactionDate, postDate sql.NullTime
	var manualCategory, memo, checkNumber sql.NullString
	var balance decimal.NullDecimal

	err := scanner.Scan(&txn.ID, &transactionDate, &postDate, &txn.Description, &txn.Category,
		&txn.AutoCategory, &manualCategory, &txn.TransactionType, &txn.Amount, &memo,
		&balance, &checkNumber, &txn.CSVFormat, &txn.CreatedAt)
	if err != nil {
		return domain.Transaction{}, err
	}

	if transactionDate.Valid {
		txn.TransactionDate = &transactionDate.Time
	}
	if postDate.Valid {
		txn.PostDate = &postDate.Time
	}
	if manualCategory.Valid {
		txn.ManualCategory = &manualCategory.String
	}
	if memo.Valid {
		txn.Memo = &memo.String
	}
	if balance.Valid {
		txn.Balance = &balance.Decimal
	}
	if checkNumber.Valid {
		txn.CheckNumber = &checkNumber.String
	}
	return txn, nil
}

// FindExistingKeys returns which of the candidate identity keys are already
// stored, for duplicate filtering during ingestion.
func (r *TransactionRepository) FindExistingKeys(keys []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(keys) == 0 {
		return existing, nil
	}

	rows, err := r.db.Query(`SELECT identity_key FROM transactions WHERE identity_key = ANY($1)`, keys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		existing[key] = true
	}
	return existing, rows.Err()
}

// InsertBatch persists a batch of transactions inside one database
// transaction. Conflicts on identity_key are dropped silently; the returned
// count reflects rows actually inserted.
func (r *TransactionRepository) InsertBatch(transactions []domain.Transaction) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, txn := range transactions {
		res, err := tx.Exec(
			`INSERT INTO transactions
			(transaction_date, post_date, description, category, auto_category, manual_category,
			 transaction_type, amount, memo, balance, check_number, csv_format, identity_key)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (identity_key) DO NOTHING`,
			txn.TransactionDate, txn.PostDate, txn.Description, txn.Category, txn.AutoCategory,
			txn.ManualCategory, txn.TransactionType, txn.Amount, txn.Memo, nullDecimal(txn.Balance),
			txn.CheckNumber, txn.CSVFormat, txn.IdentityKey(),
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting transaction batch: %w", err)
		}
		count, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		inserted += int(count)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func buildFilterClause(filter domain.TransactionFilter) (string, []interface{}) {
	where := ""
	var args []interface{}
	add := func(clause string, value interface{}) {
		args = append(args, value)
		cond := fmt.Sprintf(clause, len(args))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if filter.Type != "" {
		add("transaction_type ILIKE '%%' || $%d || '%%'", filter.Type)
	}
	if filter.Category != "" {
		add("category ILIKE '%%' || $%d || '%%'", filter.Category)
	}
	if filter.StartDate != nil {
		add("transaction_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("transaction_date <= $%d", *filter.EndDate)
	}
	return where, args
}

// Find lists transactions matching filter, newest first. limit <= 0 disables
// pagination. The second return value is the total match count, for paging.
func (r *TransactionRepository) Find(filter domain.TransactionFilter, limit, page int) ([]domain.Transaction, int, error) {
	where, args := buildFilterClause(filter)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + transactionColumns + " FROM transactions" + where +
		" ORDER BY transaction_date DESC NULLS LAST, id DESC"
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (page-1)*limit)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, total, rows.Err()
}

func (r *TransactionRepository) FindAll() ([]domain.Transaction, error) {
	transactions, _, err := r.Find(domain.TransactionFilter{}, 0, 0)
	return transactions, err
}

func (r *TransactionRepository) FindByID(id int) (*domain.Transaction, error) {
	row := r.db.QueryRow("SELECT "+transactionColumns+" FROM transactions WHERE id = $1", id)
	txn, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *TransactionRepository) UpdateCategory(id int, category, autoCategory string) error {
	_, err := r.db.Exec(
		`UPDATE transactions SET category = $2, auto_category = $3 WHERE id = $1`,
		id, category, autoCategory,
	)
	return err
}

func (r *TransactionRepository) UpdateManualCategory(id int, manualCategory *string, category string) error {
	_, err := r.db.Exec(
		`UPDATE transactions SET manual_category = $2, category = $3 WHERE id = $1`,
		id, manualCategory, category,
	)
	return err
}

func (r *TransactionRepository) DeleteAll() (int, error) {
	res, err := r.db.Exec(`DELETE FROM transactions`)
	if err != nil {
		return 0, err
	}
	count, err := res.RowsAffected()
	return int(count), err
}
