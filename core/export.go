package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
)

// WriteWageRateCSV writes the wage rate table in the export/backup format:
// id, worker_id, base_rate, role, agency, markup, effective_date.
func WriteWageRateCSV(w io.Writer, rates []model.WageRate) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "worker_id", "base_rate", "role", "agency", "markup", "effective_date"}); err != nil {
		return err
	}

	for i := range rates {
		rate := &rates[i]
		row := []string{
			strconv.FormatUint(uint64(rate.ID), 10),
			rate.WorkerID,
			formatFloat(rate.BaseRate, 2),
			strValue(rate.Role),
			strValue(rate.Agency),
			formatFloat(rate.Markup, 4),
			formatDate(rate.EffectiveDate),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(f *float64, precision int) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', precision, 64)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BackupFilename names a timestamped wage rate backup file.
func BackupFilename(ts string) string {
	return fmt.Sprintf("backup_wage_rates_%s.csv", ts)
}
