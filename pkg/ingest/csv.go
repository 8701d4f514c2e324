package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrIngestion is returned when the input stream cannot be read or parsed at
// all. Individual rows with bad numeric cells never produce this error.
var ErrIngestion = errors.New("ingestion failed")

// Column positions when the header does not name the columns we know.
const (
	colEntity = iota
	colYear
	colIndicator
	colSeries
	colValue
)

// Header aliases seen across UN statistical yearbook exports.
var columnAliases = map[int][]string{
	colEntity:    {"country_or_area", "Country or Area", "Region/Country/Area"},
	colYear:      {"year", "Year"},
	colIndicator: {"indicator", "Indicator", "Series Code"},
	colSeries:    {"series", "Series"},
	colValue:     {"value", "Value"},
}

// LoadRecords reads the delimited file at path and returns its typed records.
// The header row is consumed and used to locate columns by name where
// possible; unknown headers fall back to positional order (entity, year,
// indicator, series, value).
func LoadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIngestion, path, err)
	}
	defer file.Close()

	records, err := ReadRecords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadRecords parses records from r. It fails only on structural problems
// (missing header, malformed CSV framing); rows with blank or unparseable
// value cells are kept with an absent value.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // yearbook exports vary in trailing columns

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty input, no header row", ErrIngestion)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrIngestion, err)
	}

	cols := resolveColumns(header)

	records := make([]Record, 0, 256)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row %d: %v", ErrIngestion, len(records)+2, err)
		}

		rec := Record{
			Entity:    field(row, cols[colEntity]),
			Indicator: field(row, cols[colIndicator]),
			Series:    field(row, cols[colSeries]),
		}
		if year, err := strconv.Atoi(field(row, cols[colYear])); err == nil {
			rec.Year = year
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(field(row, cols[colValue]), ",", ""), 64); err == nil {
			rec.Value = &v
		}

		records = append(records, rec)
	}

	return records, nil
}

// resolveColumns maps each logical column to its index in the header,
// preferring named headers and falling back to position.
func resolveColumns(header []string) [5]int {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}

	var cols [5]int
	for col := colEntity; col <= colValue; col++ {
		cols[col] = col
		for _, alias := range columnAliases[col] {
			if idx, ok := byName[alias]; ok {
				cols[col] = idx
				break
			}
		}
	}
	return cols
}

func field(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
