package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"smv-nearby/internal/models"

	"github.com/xuri/excelize/v2"
)

// PlaceRecord is one row of an import file: name, category, lat, lon.
type PlaceRecord struct {
	Name     string
	Category models.PlaceCategory
	Location models.Coordinate
}

func readRecords(path, sheet string) ([]PlaceRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		return parseCSV(f)
	case ".xlsx":
		return parseXLSX(path, sheet)
	}
	return nil, fmt.Errorf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(path))
}

func parseCSV(r io.Reader) ([]PlaceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []PlaceRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		line++

		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseXLSX(path, sheet string) ([]PlaceRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var records []PlaceRecord
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string) (PlaceRecord, error) {
	if len(row) < 4 {
		return PlaceRecord{}, fmt.Errorf("invalid record length: %d, expected at least 4 columns", len(row))
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return PlaceRecord{}, errors.New("empty name")
	}

	category, err := models.ParseCategory(row[1])
	if err != nil {
		return PlaceRecord{}, err
	}

	lat, err := parseCoord(row[2])
	if err != nil {
		return PlaceRecord{}, fmt.Errorf("invalid latitude: %s", row[2])
	}
	lon, err := parseCoord(row[3])
	if err != nil {
		return PlaceRecord{}, fmt.Errorf("invalid longitude: %s", row[3])
	}

	loc := models.Coordinate{Lat: lat, Lon: lon}
	if err := loc.Validate(); err != nil {
		return PlaceRecord{}, err
	}

	return PlaceRecord{Name: name, Category: category, Location: loc}, nil
}

// parseCoord accepts both "26.84" and spreadsheet-style "26,84".
func parseCoord(val string) (float64, error) {
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return 0, errors.New("empty")
	}
	return strconv.ParseFloat(val, 64)
}
