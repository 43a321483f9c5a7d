// Package csvfeed reads and writes the CSV files around the import jobs:
// league result datasets, team alias maps and match-id maps.
package csvfeed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/riskibarqy/futball/internal/usecase"
)

var ErrMissingColumns = errors.New("required columns missing")

type header []string

func readHeader(r *csv.Reader) (header, error) {
	hdr, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(hdr) > 0 {
		hdr[0] = strings.TrimPrefix(hdr[0], "\ufeff")
	}
	return hdr, nil
}

// index returns the position of the first name present, case-insensitively.
func (h header) index(names ...string) int {
	for _, name := range names {
		for i, col := range h {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return i
			}
		}
	}
	return -1
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// optionalInt returns nil for empty or non-numeric cells.
func optionalInt(rec []string, i int) *int {
	raw := field(rec, i)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return nil
		}
		v = int(f)
	}
	return &v
}

// ReadResults parses a results dataset. Goal columns accept both the
// FTHG/FTAG and the HG/AG spellings; shot columns are optional. A line the
// CSV reader cannot parse comes back as a row with Malformed set so the
// importer can skip it; only header and I/O failures abort the read.
func ReadResults(r io.Reader) ([]usecase.ResultRow, error) {
	cr := newReader(r)
	hdr, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	iDate := hdr.index("Date")
	iHome := hdr.index("HomeTeam", "Home")
	iAway := hdr.index("AwayTeam", "Away")
	iHG := hdr.index("FTHG", "HG")
	iAG := hdr.index("FTAG", "AG")
	if iDate < 0 || iHome < 0 || iAway < 0 || iHG < 0 || iAG < 0 {
		return nil, fmt.Errorf("%w (need Date, HomeTeam, AwayTeam, FTHG|HG, FTAG|AG)", ErrMissingColumns)
	}
	iHS := hdr.index("HS")
	iAS := hdr.index("AS")
	iHST := hdr.index("HST")
	iAST := hdr.index("AST")

	rows := make([]usecase.ResultRow, 0, 512)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			rows = append(rows, usecase.ResultRow{Line: line, Malformed: perr.Err.Error()})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}

		rows = append(rows, usecase.ResultRow{
			Line:              line,
			Date:              field(rec, iDate),
			HomeTeam:          field(rec, iHome),
			AwayTeam:          field(rec, iAway),
			HomeGoals:         optionalInt(rec, iHG),
			AwayGoals:         optionalInt(rec, iAG),
			HomeShots:         optionalInt(rec, iHS),
			AwayShots:         optionalInt(rec, iAS),
			HomeShotsOnTarget: optionalInt(rec, iHST),
			AwayShotsOnTarget: optionalInt(rec, iAST),
		})
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
