package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/futball/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

func newTestStore(t *testing.T, seed bool) (*memory.Store, SeasonRepositories) {
	t.Helper()

	store := memory.NewStore()
	if seed {
		if err := memory.SeedDemo(context.Background(), store); err != nil {
			t.Fatalf("seed demo: %v", err)
		}
	}
	return store, SeasonRepositories{
		Competitions: store.Competitions(),
		Seasons:      store.Seasons(),
		Teams:        store.Teams(),
		Matches:      store.Matches(),
		Shots:        store.Shots(),
	}
}

func newTestResolver(store *memory.Store) *EntityResolver {
	return NewEntityResolver(store.Competitions(), store.Seasons(), store.Teams())
}

func demoSeasonID(t *testing.T, store *memory.Store) int64 {
	t.Helper()

	ctx := context.Background()
	comp, ok, err := store.Competitions().GetByName(ctx, memory.DemoCompetitionName)
	if err != nil || !ok {
		t.Fatalf("demo competition: ok=%v err=%v", ok, err)
	}
	item, ok, err := store.Seasons().GetByCompetitionAndName(ctx, comp.ID, memory.DemoSeasonName)
	if err != nil || !ok {
		t.Fatalf("demo season: ok=%v err=%v", ok, err)
	}
	return item.ID
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

var testLogger = logging.NewNop()
