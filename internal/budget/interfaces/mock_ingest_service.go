package interfaces

import (
	"errors"

	"github.com/sebuszqo/BudgetManager/internal/budget/application"
)

type MockIngestService struct {
	result       *application.IngestResult
	err          error
	maxBytes     int64
	receivedData []byte
}

func (m *MockIngestService) Ingest(data []byte) (*application.IngestResult, error) {
	m.receivedData = data
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return nil, errors.New("service error")
}

func (m *MockIngestService) MaxUploadBytes() int64 {
	if m.maxBytes > 0 {
		return m.maxBytes
	}
	return application.DefaultMaxUploadBytes
}
