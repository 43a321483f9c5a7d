package csvfeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/usecase"
)

var teamMapHeader = []string{"statsbomb_name", "csv_name"}

// ReadAliases parses a two-column name map. Known headers are
// statsbomb_name/csv_name and external/canonical; any other header falls
// back to the first two columns.
func ReadAliases(r io.Reader) ([]alias.Row, error) {
	cr := newReader(r)
	hdr, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	iExt := hdr.index("statsbomb_name", "external", "source")
	iCan := hdr.index("csv_name", "canonical", "target")
	if iExt < 0 || iCan < 0 {
		if len(hdr) < 2 {
			return nil, fmt.Errorf("%w (need two name columns)", ErrMissingColumns)
		}
		iExt, iCan = 0, 1
	}

	var rows []alias.Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		rows = append(rows, alias.Row{External: field(rec, iExt), Canonical: field(rec, iCan)})
	}
	return rows, nil
}

func ReadAliasFile(path string) ([]alias.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open alias file %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadAliases(f)
	if err != nil {
		return nil, fmt.Errorf("alias file %s: %w", path, err)
	}
	return rows, nil
}

// WriteTeamMap writes suggestions in the format ReadAliases accepts. The
// score column is included when withScore is set.
func WriteTeamMap(w io.Writer, rows []usecase.TeamMapRow, withScore bool) error {
	cw := csv.NewWriter(w)
	hdr := teamMapHeader
	if withScore {
		hdr = append(append([]string{}, teamMapHeader...), "score")
	}
	if err := cw.Write(hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		rec := []string{row.External, row.Suggested}
		if withScore {
			rec = append(rec, strconv.FormatFloat(row.Score, 'f', 3, 64))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", row.External, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMatchMap parses statsbomb_match_id,match_id rows into a lookup from
// vendor id to local match id.
func ReadMatchMap(r io.Reader) (map[string]string, error) {
	cr := newReader(r)
	hdr, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	iExt := hdr.index("statsbomb_match_id")
	iLocal := hdr.index("match_id")
	if iExt < 0 || iLocal < 0 {
		return nil, fmt.Errorf("%w (need statsbomb_match_id, match_id)", ErrMissingColumns)
	}

	out := make(map[string]string)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		ext, local := field(rec, iExt), field(rec, iLocal)
		if ext == "" || local == "" {
			continue
		}
		out[ext] = local
	}
	return out, nil
}

func ReadMatchMapFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open match map %s: %w", path, err)
	}
	defer f.Close()

	out, err := ReadMatchMap(f)
	if err != nil {
		return nil, fmt.Errorf("match map %s: %w", path, err)
	}
	return out, nil
}

func WriteMatchMap(w io.Writer, rows []usecase.MatchMapRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"statsbomb_match_id", "match_id"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.ExternalID, row.MatchID}); err != nil {
			return fmt.Errorf("write row %s: %w", row.ExternalID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
