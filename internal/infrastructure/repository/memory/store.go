package memory

import (
	"sort"
	"sync"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/player"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
)

type statsKey struct {
	matchID int64
	teamID  int64
}

type appearanceKey struct {
	playerID int64
	matchID  int64
}

// Store is an in-memory record store. One lock guards every table so that a
// merge or a shot replacement is applied as a single step: mutations first
// build the full change set, check it, and only then write.
type Store struct {
	mu     sync.RWMutex
	nextID int64

	competitions map[int64]competition.Competition
	seasons      map[int64]season.Season
	teams        map[int64]team.Team
	matches      map[int64]match.Match
	teamStats    map[statsKey]match.TeamStats
	shots        map[int64]shot.Shot
	players      map[int64]player.Player
	appearances  map[appearanceKey]player.Appearance
}

func NewStore() *Store {
	return &Store{
		competitions: make(map[int64]competition.Competition),
		seasons:      make(map[int64]season.Season),
		teams:        make(map[int64]team.Team),
		matches:      make(map[int64]match.Match),
		teamStats:    make(map[statsKey]match.TeamStats),
		shots:        make(map[int64]shot.Shot),
		players:      make(map[int64]player.Player),
		appearances:  make(map[appearanceKey]player.Appearance),
	}
}

func (s *Store) Competitions() *CompetitionRepository { return &CompetitionRepository{store: s} }
func (s *Store) Seasons() *SeasonRepository           { return &SeasonRepository{store: s} }
func (s *Store) Teams() *TeamRepository               { return &TeamRepository{store: s} }
func (s *Store) Matches() *MatchRepository            { return &MatchRepository{store: s} }
func (s *Store) Shots() *ShotRepository               { return &ShotRepository{store: s} }
func (s *Store) Players() *PlayerRepository           { return &PlayerRepository{store: s} }

// allocID must be called with the write lock held.
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

func sortedIDs[T any](rows map[int64]T) []int64 {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
