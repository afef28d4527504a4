package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// AppVersion is stamped into export files.
const AppVersion = "1.0"

// ExportDocument is the file-based interchange format for backups.
type ExportDocument struct {
	ExportDate   string        `json:"exportDate"`
	AppVersion   string        `json:"appVersion"`
	Transactions []Transaction `json:"transactions"`
}

var ErrInvalidBackup = errors.New("invalid backup file: transactions must be an array")

// NewExportDocument wraps the given list in the interchange envelope.
func NewExportDocument(list []Transaction, now time.Time) ExportDocument {
	return ExportDocument{
		ExportDate:   now.UTC().Format(time.RFC3339),
		AppVersion:   AppVersion,
		Transactions: list,
	}
}

// ParseExportDocument decodes a backup file. The transactions field must
// be present and array-typed; anything else is rejected so a malformed
// file never silently clears the store.
func ParseExportDocument(data []byte) (ExportDocument, error) {
	var probe struct {
		ExportDate   string          `json:"exportDate"`
		AppVersion   string          `json:"appVersion"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return ExportDocument{}, ErrInvalidBackup
	}
	raw := bytes.TrimSpace(probe.Transactions)
	if len(raw) == 0 || raw[0] != '[' {
		return ExportDocument{}, ErrInvalidBackup
	}
	var list []Transaction
	if err := json.Unmarshal(raw, &list); err != nil {
		return ExportDocument{}, ErrInvalidBackup
	}
	return ExportDocument{
		ExportDate:   probe.ExportDate,
		AppVersion:   probe.AppVersion,
		Transactions: list,
	}, nil
}
