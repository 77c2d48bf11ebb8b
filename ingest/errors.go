package ingest

import (
	"fmt"
	"strings"
)

// RowError pinpoints one invalid row in an upload. Row is the 1-based line
// number including the header, matching what the uploader sees in a
// spreadsheet.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ValidationError rejects a whole upload. A file with any invalid row is not
// partially ingested; every problem is reported at once so the uploader can
// fix the file in one pass.
type ValidationError struct {
	Rows []RowError `json:"rows"`
}

func (e *ValidationError) Error() string {
	if len(e.Rows) == 1 {
		return e.Rows[0].Error()
	}
	msgs := make([]string, 0, len(e.Rows))
	for _, row := range e.Rows {
		msgs = append(msgs, row.Error())
	}
	return fmt.Sprintf("%d invalid rows: %s", len(e.Rows), strings.Join(msgs, "; "))
}

func (e *ValidationError) add(row int, format string, args ...any) {
	e.Rows = append(e.Rows, RowError{Row: row, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) orNil() error {
	if len(e.Rows) == 0 {
		return nil
	}
	return e
}
