package csvfeed

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/usecase"
)

func TestReadResults(t *testing.T) {
	t.Parallel()

	input := "\ufeffDiv,Date,HomeTeam,AwayTeam,FTHG,FTAG,HS,AS,HST,AST\n" +
		"E0,16/08/24,Man United,Fulham,1,0,14,10,5,2\n" +
		",,,,,,,,,\n" +
		"E0,17/08/24,Ipswich,Liverpool,0,2,,,,\n" +
		"E0,bad,Arsenal,Wolves,x,2,,,,\n"

	rows, err := ReadResults(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "16/08/24", first.Date)
	assert.Equal(t, "Man United", first.HomeTeam)
	require.NotNil(t, first.HomeGoals)
	assert.Equal(t, 1, *first.HomeGoals)
	require.NotNil(t, first.AwayShotsOnTarget)
	assert.Equal(t, 2, *first.AwayShotsOnTarget)

	assert.Equal(t, 4, rows[1].Line)
	assert.Nil(t, rows[1].HomeShots)

	assert.Nil(t, rows[2].HomeGoals)
	require.NotNil(t, rows[2].AwayGoals)
}

func TestReadResultsShortGoalColumns(t *testing.T) {
	t.Parallel()

	rows, err := ReadResults(strings.NewReader("Date,HomeTeam,AwayTeam,HG,AG\n01/01/2020,A,B,3,3\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, *rows[0].HomeGoals)
	assert.Equal(t, 3, *rows[0].AwayGoals)
}

func TestReadResultsKeepsReadingPastMalformedLine(t *testing.T) {
	t.Parallel()

	input := "Date,HomeTeam,AwayTeam,FTHG,FTAG\n" +
		"01/01/2020,A,B,1,0\n" +
		"02/01/2020,Gr\"een,B,1,1\n" +
		"03/01/2020,C,D,2,2\n"

	rows, err := ReadResults(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Empty(t, rows[0].Malformed)
	assert.Equal(t, 3, rows[1].Line)
	assert.NotEmpty(t, rows[1].Malformed)
	assert.Empty(t, rows[1].HomeTeam)

	assert.Equal(t, 4, rows[2].Line)
	assert.Equal(t, "C", rows[2].HomeTeam)
	assert.Empty(t, rows[2].Malformed)
}

func TestReadResultsMissingColumns(t *testing.T) {
	t.Parallel()

	_, err := ReadResults(strings.NewReader("Date,HomeTeam,AwayTeam\n"))
	require.ErrorIs(t, err, ErrMissingColumns)

	_, err = ReadResults(strings.NewReader(""))
	require.ErrorIs(t, err, ErrMissingColumns)
}

func TestAliasRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteTeamMap(&buf, []usecase.TeamMapRow{
		{External: "Manchester United", Suggested: "Man United", Score: 0.88},
		{External: "Nowhere FC", Suggested: "", Score: 0.2},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "statsbomb_name,csv_name\nManchester United,Man United\nNowhere FC,\n", buf.String())

	rows, err := ReadAliases(&buf)
	require.NoError(t, err)
	assert.Equal(t, []alias.Row{
		{External: "Manchester United", Canonical: "Man United"},
		{External: "Nowhere FC", Canonical: ""},
	}, rows)
	assert.Equal(t, 1, alias.Build(rows).Len())
}

func TestWriteTeamMapWithScore(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteTeamMap(&buf, []usecase.TeamMapRow{{External: "A", Suggested: "A", Score: 1}}, true))
	assert.Equal(t, "statsbomb_name,csv_name,score\nA,A,1.000\n", buf.String())
}

func TestReadAliasesFallsBackToFirstColumns(t *testing.T) {
	t.Parallel()

	rows, err := ReadAliases(strings.NewReader("from,to\nGerman Bundesliga,Bundesliga\n"))
	require.NoError(t, err)
	assert.Equal(t, []alias.Row{{External: "German Bundesliga", Canonical: "Bundesliga"}}, rows)
}

func TestReadMatchMap(t *testing.T) {
	t.Parallel()

	out, err := ReadMatchMap(strings.NewReader("statsbomb_match_id,match_id\n3754058,16/08/24-Man United-Fulham\n,skip\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"3754058": "16/08/24-Man United-Fulham"}, out)

	_, err = ReadMatchMap(strings.NewReader("id,local\n"))
	require.ErrorIs(t, err, ErrMissingColumns)
}

func TestMatchMapRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteMatchMap(&buf, []usecase.MatchMapRow{
		{ExternalID: "3754058", MatchID: "08/08/15-Man United-Tottenham Hotspur"},
	}))

	out, err := ReadMatchMap(&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"3754058": "08/08/15-Man United-Tottenham Hotspur"}, out)
}

func TestDecodeReader(t *testing.T) {
	t.Parallel()

	// "Málaga" in windows-1252.
	raw := []byte{'M', 0xe1, 'l', 'a', 'g', 'a'}
	r, err := DecodeReader(bytes.NewReader(raw), "windows-1252")
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Málaga", string(out))

	plain := strings.NewReader("x")
	same, err := DecodeReader(plain, "UTF-8")
	require.NoError(t, err)
	assert.Same(t, plain, same)

	_, err = DecodeReader(plain, "klingon")
	require.Error(t, err)
}
