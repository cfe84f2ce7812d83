package app

import (
	"bytes"
	"encoding/base32"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Format names an input format of the dataset
type Format string

const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatBase32 Format = "base32"
)

var (
	ErrUnknownFormat = errors.New("unknown dataset format")
	ErrMalformedRow  = errors.New("malformed row")
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatCSV, FormatBase32:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// DetectFormat guesses the format from the source name, then from the content
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		return FormatJSON
	case bytes.ContainsAny(trimmed, ",-"):
		return FormatCSV
	default:
		return FormatBase32
	}
}

// Parse converts raw dataset bytes into a Roster. Dates are placed in loc.
func Parse(data []byte, format Format, name string, loc *time.Location) (*Roster, error) {
	if loc == nil {
		loc = time.Local
	}
	if format == "" || format == FormatAuto {
		format = DetectFormat(name, data)
	}

	var weeks []Week
	var err error
	switch format {
	case FormatJSON:
		weeks, err = parseJSON(data, loc)
	case FormatCSV:
		weeks, err = parseCSV(bytes.NewReader(data), loc)
	case FormatBase32:
		var decoded []byte
		decoded, err = decodeBase32(data)
		if err == nil {
			weeks, err = parseCSV(bytes.NewReader(decoded), loc)
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return NewRoster(weeks)
}

// parseJSON reads tasks.json: Monday dates mapped to duty records
func parseJSON(data []byte, loc *time.Location) ([]Week, error) {
	var records map[string]WeekRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON dataset: %w", err)
	}

	weeks := make([]Week, 0, len(records))
	for date, rec := range records {
		start, err := time.ParseInLocation(ISODateFormat, date, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid week start %q", ErrMalformedRow, date)
		}
		weeks = append(weeks, Week{
			Start: start,
			End:   ShiftWeek(start, 1),
			Names: [SlotCount]string{rec.Kitchen1, rec.Kitchen2, rec.Kitchen3, rec.Toilets, rec.Showers},
		})
	}
	return weeks, nil
}

// parseCSV reads the roster sheet. The first row is a header; the first row
// without a leading date ends the data.
func parseCSV(r io.Reader, loc *time.Location) ([]Week, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var weeks []Week
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			break
		}

		week, err := parseCSVRow(row, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		weeks = append(weeks, week)
	}
	return weeks, nil
}

func parseCSVRow(row []string, loc *time.Location) (Week, error) {
	if len(row) < csvSlotOffset+SlotCount {
		return Week{}, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedRow, csvSlotOffset+SlotCount, len(row))
	}

	start, err := time.ParseInLocation(CSVDateFormat, strings.TrimSpace(row[0]), loc)
	if err != nil {
		return Week{}, fmt.Errorf("%w: invalid start date %q", ErrMalformedRow, row[0])
	}
	end, err := time.ParseInLocation(CSVDateFormat, strings.TrimSpace(row[1]), loc)
	if err != nil {
		return Week{}, fmt.Errorf("%w: invalid end date %q", ErrMalformedRow, row[1])
	}

	week := Week{Start: start, End: end}
	for i := range week.Names {
		week.Names[i] = strings.TrimSpace(row[csvSlotOffset+i])
	}
	return week, nil
}

// decodeBase32 undoes the armour of the published data file
func decodeBase32(data []byte) ([]byte, error) {
	clean := strings.Join(strings.Fields(string(data)), "")
	decoded, err := base32.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base32 dataset: %w", err)
	}
	return decoded, nil
}

// EncodeJSON renders the roster in the tasks.json layout, keys sorted by date
func EncodeJSON(r *Roster) ([]byte, error) {
	records := make(map[string]WeekRecord, r.Len())
	for _, w := range r.weeks {
		records[Monday(w.Start).Format(ISODateFormat)] = WeekRecord{
			Kitchen1: w.Names[Kitchen1],
			Kitchen2: w.Names[Kitchen2],
			Kitchen3: w.Names[Kitchen3],
			Toilets:  w.Names[Toilets],
			Showers:  w.Names[Showers],
		}
	}
	return json.Marshal(records)
}
