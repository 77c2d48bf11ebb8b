package ingest

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

// ParseCargoCSV validates a cargo manifest upload: Date, MAWB, Carton Number.
// Dates arrive in US order (MM/DD/YYYY or M/D/YY).
func ParseCargoCSV(r io.Reader) ([]model.CargoVolume, error) {
	records, err := utils.ParseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	idx := utils.HeaderIndex(records[0])
	if err := utils.RequireColumns(idx, "date", "mawb", "carton number"); err != nil {
		return nil, err
	}

	var rows []model.CargoVolume
	verr := &ValidationError{}

	for i, row := range records[1:] {
		rowNum := i + 2

		date, err := utils.ParseUSDate(utils.Field(row, idx, "date"))
		if err != nil {
			verr.add(rowNum, "%v", err)
			continue
		}

		mawb := utils.Field(row, idx, "mawb")
		if mawb == "" {
			verr.add(rowNum, "mawb is required")
			continue
		}

		cartons, err := strconv.Atoi(utils.Field(row, idx, "carton number"))
		if err != nil || cartons < 0 {
			verr.add(rowNum, "carton number must be a non-negative integer, got %q", utils.Field(row, idx, "carton number"))
			continue
		}

		rows = append(rows, model.CargoVolume{
			Date:         utils.DateOf(date),
			MAWB:         mawb,
			CartonNumber: cartons,
		})
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no data rows")
	}
	return rows, nil
}
