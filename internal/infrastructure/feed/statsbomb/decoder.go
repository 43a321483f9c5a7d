// Package statsbomb decodes StatsBomb open-data JSON files into the feed
// types the import use cases consume.
package statsbomb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/futball/internal/usecase"
)

// ErrNotList marks a file whose top-level value is not a JSON array.
var ErrNotList = errors.New("top-level value is not a list")

// Decoder implements usecase.EventSource and usecase.LineupSource over files
// on disk.
type Decoder struct {
	api sonic.API
}

func NewDecoder() *Decoder {
	return &Decoder{api: sonic.ConfigDefault}
}

var (
	_ usecase.EventSource   = (*Decoder)(nil)
	_ usecase.LineupSource  = (*Decoder)(nil)
	_ usecase.OpenDataCodec = (*Decoder)(nil)
)

// ReadMatches decodes a vendor match list file.
func (d *Decoder) ReadMatches(_ context.Context, path string) ([]usecase.ExternalMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matches %s: %w", path, err)
	}
	items, err := d.DecodeMatches(data)
	if err != nil {
		return nil, fmt.Errorf("decode matches %s: %w", path, err)
	}
	return items, nil
}

func (d *Decoder) DecodeMatches(data []byte) ([]usecase.ExternalMatch, error) {
	var records []matchRecord
	if err := d.decodeList(data, &records); err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalMatch, 0, len(records))
	for _, r := range records {
		out = append(out, usecase.ExternalMatch{
			MatchID:     string(r.MatchID),
			MatchDate:   strings.TrimSpace(r.MatchDate),
			HomeTeam:    strings.TrimSpace(r.HomeTeam.Name),
			AwayTeam:    strings.TrimSpace(r.AwayTeam.Name),
			Competition: strings.TrimSpace(r.Competition.Name),
			Season:      strings.TrimSpace(r.Season.Name),
			HomeScore:   r.HomeScore,
			AwayScore:   r.AwayScore,
		})
	}
	return out, nil
}

// DecodeEvents reads one events file. Only shot events carry shot fields.
func (d *Decoder) DecodeEvents(_ context.Context, path string) ([]usecase.ExternalEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events %s: %w", path, err)
	}

	var records []eventRecord
	if err := d.decodeList(data, &records); err != nil {
		return nil, fmt.Errorf("decode events %s: %w", path, err)
	}

	out := make([]usecase.ExternalEvent, 0, len(records))
	for _, r := range records {
		event := usecase.ExternalEvent{
			Type:       r.Type.Name,
			TeamName:   r.Team.Name,
			Minute:     r.Minute,
			Second:     r.Second,
			Location:   r.Location,
			PlayerID:   string(r.Player.ID),
			PlayerName: r.Player.Name,
		}
		if r.Shot != nil {
			event.Outcome = r.Shot.Outcome.Name
			event.BodyPart = r.Shot.BodyPart.Name
			event.ShotType = r.Shot.Type.Name
			event.XG = r.Shot.StatsbombXG
		}
		out = append(out, event)
	}
	return out, nil
}

// DecodeLineups reports ok=false when the file does not exist.
func (d *Decoder) DecodeLineups(_ context.Context, path string) ([]usecase.ExternalLineup, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read lineups %s: %w", path, err)
	}

	var records []lineupRecord
	if err := d.decodeList(data, &records); err != nil {
		return nil, false, fmt.Errorf("decode lineups %s: %w", path, err)
	}

	out := make([]usecase.ExternalLineup, 0, len(records))
	for _, r := range records {
		lineup := usecase.ExternalLineup{TeamName: strings.TrimSpace(r.TeamName)}
		for _, p := range r.Lineup {
			position := p.Position
			if position == "" && len(p.Positions) > 0 {
				position = p.Positions[0].Position
			}
			lineup.Players = append(lineup.Players, usecase.ExternalLineupPlayer{
				ExternalID: string(p.PlayerID),
				Name:       p.PlayerName,
				Position:   position,
			})
		}
		out = append(out, lineup)
	}
	return out, true, nil
}

func (d *Decoder) DecodeCompetitions(data []byte) ([]usecase.OpenDataSeason, error) {
	var records []competitionRecord
	if err := d.decodeList(data, &records); err != nil {
		return nil, err
	}
	out := make([]usecase.OpenDataSeason, 0, len(records))
	for _, r := range records {
		out = append(out, usecase.OpenDataSeason{
			CompetitionID:   string(r.CompetitionID),
			SeasonID:        string(r.SeasonID),
			CompetitionName: strings.TrimSpace(r.CompetitionName),
			SeasonName:      strings.TrimSpace(r.SeasonName),
			CountryName:     strings.TrimSpace(r.CountryName),
		})
	}
	return out, nil
}

// MergeLists concatenates JSON arrays without re-encoding their elements.
func (d *Decoder) MergeLists(lists ...[]byte) ([]byte, error) {
	merged := make([]sonic.NoCopyRawMessage, 0)
	for i, data := range lists {
		var items []sonic.NoCopyRawMessage
		if err := d.decodeList(data, &items); err != nil {
			return nil, fmt.Errorf("list %d: %w", i, err)
		}
		merged = append(merged, items...)
	}
	return d.api.Marshal(merged)
}

func (d *Decoder) decodeList(data []byte, target any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return ErrNotList
	}
	return d.api.Unmarshal(trimmed, target)
}
