package application

import (
	"bytes"
	"log"

	"github.com/google/uuid"

	"github.com/sebuszqo/BudgetManager/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
	"github.com/sebuszqo/BudgetManager/internal/budget/importer"
)

// DefaultMaxUploadBytes caps a single CSV upload at 16 MiB.
const DefaultMaxUploadBytes = 16 * 1024 * 1024

// IngestService turns a raw CSV upload into persisted transactions: detect
// the schema, normalize each row, classify it against the active rules, drop
// duplicates and insert the rest as one batch.
type IngestService struct {
	transactionRepo domain.TransactionRepository
	ruleRepo        domain.RuleRepository
	maxUploadBytes  int64
}

func NewIngestService(transactionRepo domain.TransactionRepository, ruleRepo domain.RuleRepository, maxUploadBytes int64) *IngestService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &IngestService{
		transactionRepo: transactionRepo,
		ruleRepo:        ruleRepo,
		maxUploadBytes:  maxUploadBytes,
	}
}

// MaxUploadBytes reports the configured upload cap so the HTTP layer can
// bound request bodies before buffering them.
func (s *IngestService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// IngestResult summarizes one upload. SkippedRows counts rows dropped for
// parse issues; duplicates are informational, not errors.
type IngestResult struct {
	BatchID               string `json:"batch_id"`
	FormatDetected        string `json:"format_detected"`
	TotalRows             int    `json:"total_rows"`
	SavedTransactions     int    `json:"saved_transactions"`
	DuplicateTransactions int    `json:"duplicate_transactions"`
	SkippedRows           int    `json:"skipped_rows"`
}

// Ingest processes one CSV upload as a bounded synchronous batch. Fatal
// conditions (oversize, empty, unrecognized header) abort with nothing
// persisted; row-level parse failures are skipped and counted. Re-uploading
// an identical file saves nothing and reports every row as a duplicate.
func (s *IngestService) Ingest(data []byte) (*IngestResult, error) {
	if int64(len(data)) > s.maxUploadBytes {
		return nil, budgetErrors.ErrFileTooLarge
	}

	header, records, err := importer.ParseFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, budgetErrors.ErrEmptyFile
	}

	schema, err := importer.DetectSchema(header)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.FindActive()
	if err != nil {
		return nil, err
	}
	compiled := compileRules(rules)

	result := &IngestResult{
		BatchID:        uuid.NewString(),
		FormatDetected: string(schema),
		TotalRows:      len(records),
	}

	var batch []domain.Transaction
	for i, fields := range records {
		txn, err := importer.NormalizeRow(schema, header, fields, i+1)
		if err != nil {
			result.SkippedRows++
			log.Printf("Upload %s: skipping %v", result.BatchID, err)
			continue
		}
		txn.AutoCategory = classify(compiled, classificationText(txn))
		txn.ManualCategory = nil
		txn.Category = txn.AutoCategory
		batch = append(batch, txn)
	}

	keys := make([]string, 0, len(batch))
	for _, txn := range batch {
		keys = append(keys, txn.IdentityKey())
	}
	existing, err := s.transactionRepo.FindExistingKeys(keys)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(batch))
	fresh := make([]domain.Transaction, 0, len(batch))
	for _, txn := range batch {
		key := txn.IdentityKey()
		if existing[key] || seen[key] {
			result.DuplicateTransactions++
			continue
		}
		seen[key] = true
		fresh = append(fresh, txn)
	}

	if len(fresh) > 0 {
		saved, err := s.transactionRepo.InsertBatch(fresh)
		if err != nil {
			return nil, err
		}
		result.SavedTransactions = saved
	}

	log.Printf("Upload %s: format=%s rows=%d saved=%d duplicates=%d skipped=%d",
		result.BatchID, result.FormatDetected, result.TotalRows,
		result.SavedTransactions, result.DuplicateTransactions, result.SkippedRows)
	return result, nil
}
