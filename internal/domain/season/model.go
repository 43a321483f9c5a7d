package season

import (
	"strings"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/platform/validation"
)

// Season belongs to one competition; (competition, name) is unique.
type Season struct {
	ID            int64
	CompetitionID int64  `validate:"gt=0"`
	Name          string `validate:"required,max=50"`
}

func (s Season) Validate() error {
	if err := validation.Struct("season", s); err != nil {
		return errs.Input("%v", err)
	}
	return nil
}

// GroupKey is the duplicate-detection key used by the season merge pass.
// Names differing only in case or spacing land in the same group.
func GroupKey(competitionID int64, name string) Key {
	return Key{CompetitionID: competitionID, Name: strings.ToLower(strings.Join(strings.Fields(name), ""))}
}

type Key struct {
	CompetitionID int64
	Name          string
}
