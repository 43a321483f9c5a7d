package httpapi

import (
	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/season"
)

type competitionDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

type seasonDTO struct {
	ID            int64  `json:"id"`
	CompetitionID int64  `json:"competition_id"`
	Name          string `json:"name"`
}

func competitionToDTO(item competition.Competition) competitionDTO {
	return competitionDTO{ID: item.ID, Name: item.Name, Country: item.Country}
}

func seasonToDTO(item season.Season) seasonDTO {
	return seasonDTO{ID: item.ID, CompetitionID: item.CompetitionID, Name: item.Name}
}
