// Package dataset loads the grant-proposal CSV and retrieves it over HTTP.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/grantab/internal/model"
)

// Required dataset columns, as named in the cleaned DonorsChoose export
const (
	ColumnTitle    = "cleaned_titles"
	ColumnEssay    = "cleaned_essays"
	ColumnSummary  = "cleaned_summary"
	ColumnApproved = "project_is_approved"
)

// Load reads the dataset CSV and derives the text-length fields.
// It fails fast on a missing file, missing columns, malformed approval
// labels, or an empty dataset.
func Load(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads dataset records from a CSV stream
func Parse(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated against the header below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++

		if len(fields) != len(header) {
			return nil, fmt.Errorf("row %d: %d fields, header has %d", row, len(fields), len(header))
		}

		approved, err := parseApproved(fields[cols.approved])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		rec := model.Record{
			Title:    fields[cols.title],
			Essay:    fields[cols.essay],
			Summary:  fields[cols.summary],
			Approved: approved,
		}
		rec.TitleLength = utf8.RuneCountInString(rec.Title)
		rec.EssayLength = utf8.RuneCountInString(rec.Essay)
		rec.SummaryLength = utf8.RuneCountInString(rec.Summary)
		rec.TotalLength = rec.TitleLength + rec.EssayLength + rec.SummaryLength

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty dataset: no data rows")
	}

	return records, nil
}

// Summary computes the dataset-level descriptives used in reports
func Summary(records []model.Record) model.DatasetSummary {
	approved := 0
	totalEssay := 0
	for _, r := range records {
		if r.Approved {
			approved++
		}
		totalEssay += r.EssayLength
	}

	s := model.DatasetSummary{Rows: len(records)}
	if len(records) > 0 {
		s.ApprovalRate = float64(approved) / float64(len(records))
		s.MeanEssayLength = float64(totalEssay) / float64(len(records))
	}
	return s
}

type columnIndex struct {
	title, essay, summary, approved int
}

func resolveColumns(header []string) (columnIndex, error) {
	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	cols := columnIndex{}
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{ColumnTitle, &cols.title},
		{ColumnEssay, &cols.essay},
		{ColumnSummary, &cols.summary},
		{ColumnApproved, &cols.approved},
	} {
		i, ok := idx[want.name]
		if !ok {
			return cols, fmt.Errorf("missing required column %q", want.name)
		}
		*want.dst = i
	}
	return cols, nil
}

func parseApproved(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "t", "yes":
		return true, nil
	case "0", "0.0", "false", "f", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid approval label %q", s)
	}
}
