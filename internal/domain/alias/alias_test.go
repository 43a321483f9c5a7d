package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIgnoresEmptyRows(t *testing.T) {
	t.Parallel()

	m := Build([]Row{
		{External: "Man Utd", Canonical: "Manchester United"},
		{External: "", Canonical: "Arsenal"},
		{External: "Spurs", Canonical: " "},
		{External: "Wolves", Canonical: "Wolverhampton Wanderers"},
	})

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "Manchester United", m.Canonical("man utd"))
	assert.Equal(t, "Manchester United", m.Canonical("  MAN   UTD FC"))
	assert.Equal(t, "Spurs", m.Canonical(" Spurs "))

	_, ok := m.Lookup("Arsenal")
	assert.False(t, ok)
}

func TestMergePairs(t *testing.T) {
	t.Parallel()

	m := Build([]Row{
		{External: "Wolves", Canonical: "Wolverhampton Wanderers"},
		{External: "Arsenal", Canonical: "Arsenal"},
		{External: "Man Utd", Canonical: "Manchester United"},
		{External: "Man Utd", Canonical: "Manchester United"},
	})

	assert.Equal(t, []Row{
		{External: "Man Utd", Canonical: "Manchester United"},
		{External: "Wolves", Canonical: "Wolverhampton Wanderers"},
	}, m.MergePairs())
}

func TestZeroMap(t *testing.T) {
	t.Parallel()

	var m Map
	assert.Equal(t, "Leeds United", m.Canonical(" Leeds  United "))
	assert.Empty(t, m.MergePairs())
}
