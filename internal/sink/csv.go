// Package sink appends funding records to a tabular store. The store is
// a UTF-8 CSV file opened in append mode; the header row is written
// only when the file did not previously exist, so successive runs grow
// one table.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/petem573/dealflow/internal/domain"
	"github.com/petem573/dealflow/internal/logger"
)

// preferredColumns fixes the order of the well-known columns. Columns
// outside this list sort alphabetically after it.
var preferredColumns = []string{
	"startup_name", "subsector", "amount_raised", "funding_stage",
	"lead_investor", "other_investors", "source_url", "source_site",
}

// investorSeparator joins the other-investors list into one CSV cell.
const investorSeparator = "; "

const filePerm = 0o644

// CSV writes rows to a single CSV file.
type CSV struct {
	path   string
	logger logger.Interface
}

// NewCSV creates a sink writing to the file at path.
func NewCSV(path string, log logger.Interface) *CSV {
	return &CSV{path: path, logger: log.WithComponent("sink")}
}

// Flush converts the run's accumulated records to rows and appends them.
// Flushing zero records is a no-op, leaving the file untouched.
func (s *CSV) Flush(records []domain.FundingRecord) error {
	if len(records) == 0 {
		s.logger.Info("No new records to save")
		return nil
	}

	rows := make([]map[string]string, 0, len(records))
	for i := range records {
		rows = append(rows, recordToRow(&records[i]))
	}

	s.logger.Info("Saving records", "count", len(rows), "file", s.path)
	return s.Append(rows)
}

// Append writes rows to the file, reconciling heterogeneous key sets:
// the header is the preferred-order union of all rows' keys, and each
// row leaves empty cells for keys it lacks. The header is only written
// when the file is new.
func (s *CSV) Append(rows []map[string]string) error {
	if len(rows) == 0 {
		return nil
	}

	headers := unionHeaders(rows)

	_, statErr := os.Stat(s.path)
	fileExists := statErr == nil

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("open sink file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !fileExists {
		if err := w.Write(headers); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = row[h]
		}
		if err := w.Write(cells); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush sink: %w", err)
	}
	return nil
}

// unionHeaders computes the union of all row keys, ordered by the
// preferred prefix with extras sorted after it.
func unionHeaders(rows []map[string]string) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			seen[key] = struct{}{}
		}
	}

	var headers []string
	for _, col := range preferredColumns {
		if _, ok := seen[col]; ok {
			headers = append(headers, col)
			delete(seen, col)
		}
	}

	extras := make([]string, 0, len(seen))
	for key := range seen {
		extras = append(extras, key)
	}
	sort.Strings(extras)

	return append(headers, extras...)
}

// recordToRow flattens a record into CSV cells. A nil other-investors
// list means the field was unresolved and carries the sentinel.
func recordToRow(r *domain.FundingRecord) map[string]string {
	others := domain.NotSpecified
	if r.OtherInvestors != nil {
		others = strings.Join(r.OtherInvestors, investorSeparator)
	}

	return map[string]string{
		"startup_name":    r.StartupName,
		"subsector":       r.Subsector,
		"amount_raised":   r.AmountRaised,
		"funding_stage":   r.FundingStage,
		"lead_investor":   r.LeadInvestor,
		"other_investors": others,
		"source_url":      r.SourceURL,
		"source_site":     r.SourceSite,
	}
}
