// Package batch replays tabular rows through a single-row operation.
// A column-index mapping projects each row into the operation's input;
// rows are applied one by one in file order.
package batch

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// RowFunc applies one projected row. The row slice is the raw sheet
// row; projection happens inside the callback via the Project helpers.
type RowFunc func(row []string) error

// RowError records a failed row. Row is the 1-based sheet row number,
// counting the skipped header as row 1.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Result summarizes a batch run.
type Result struct {
	Applied int
	Failed  []RowError
}

// Applier drives a single-row operation over a row sequence.
//
// The default policy is fail-fast: the first row error aborts the
// remaining rows and is returned. With ContinueOnError set, row errors
// are logged, collected into the Result and the batch runs on; the
// caller decides what to make of the failures.
type Applier struct {
	Log             *slog.Logger
	ContinueOnError bool
}

// Apply invokes fn once per row, in order. Each run gets a batch token
// so its log lines correlate.
func (a *Applier) Apply(rows [][]string, fn RowFunc) (Result, error) {
	log := a.Log
	if log == nil {
		log = slog.Default()
	}
	token := uuid.NewString()
	log.Debug("batch apply starting", "batch", token, "rows", len(rows))

	var res Result
	for i, row := range rows {
		// Sheet rows are 1-based and row 1 is the skipped header
		rowNum := i + 2
		if err := fn(row); err != nil {
			rowErr := RowError{Row: rowNum, Err: err}
			if !a.ContinueOnError {
				log.Debug("batch apply aborted", "batch", token, "row", rowNum, "error", err)
				return res, rowErr
			}
			log.Warn("batch row skipped", "batch", token, "row", rowNum, "error", err)
			res.Failed = append(res.Failed, rowErr)
			continue
		}
		res.Applied++
	}

	log.Debug("batch apply finished", "batch", token,
		"applied", res.Applied, "failed", len(res.Failed))
	return res, nil
}
