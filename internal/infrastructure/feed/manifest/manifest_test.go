package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/alias"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadJSONManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "datapackage.json", `{
		"name": "bundesliga",
		"title": "German Bundesliga",
		"resources": [
			{"path": "README.md"},
			{"path": "data/season-2425.csv", "encoding": "windows-1252", "schema": {"fields": [
				{"name": "Date", "type": "date", "format": "%d/%m/%Y"},
				{"name": "HomeTeam", "type": "string"}
			]}}
		]
	}`)

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "datapackage.json"), m.Path())

	ds, err := m.Dataset()
	require.NoError(t, err)
	assert.Equal(t, Dataset{
		Competition: "1. Bundesliga",
		Country:     "Germany",
		DateLayout:  "02/01/2006",
		CSVPath:     filepath.Join(dir, "data", "season-2425.csv"),
		Encoding:    "windows-1252",
	}, ds)
}

func TestLoadYAMLManifestAndReadResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "datapackage.yaml", `
name: eredivisie
title: Eredivisie
country: Netherlands
resources:
  - path: results.csv
    schema:
      fields:
        - name: Date
          format: "%d/%m/%y"
`)
	write(t, dir, "results.csv", "Date,HomeTeam,AwayTeam,FTHG,FTAG\n09/08/24,Ajax,PSV,1,1\n")

	m, err := Load(filepath.Join(dir, "datapackage.yaml"))
	require.NoError(t, err)

	ds, err := m.Dataset()
	require.NoError(t, err)
	assert.Equal(t, "Eredivisie", ds.Competition)
	assert.Equal(t, "Netherlands", ds.Country)
	assert.Equal(t, "02/01/06", ds.DateLayout)

	rows, err := ds.ReadResults()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ajax", rows[0].HomeTeam)
}

func TestLoadRejectsIncompleteManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "datapackage.json", `{"name": "premier-league"}`)
	_, err := Load(dir)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), path)

	other := t.TempDir()
	path = write(t, other, "datapackage.json", `{"resources": [{"name": "results"}]}`)
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "datapackage.json")

	_, err = Load(t.TempDir())
	require.Error(t, err)
}

func TestDatasetRejectsUnknownDateDirective(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "datapackage.json", `{"name": "la-liga", "resources": [
		{"path": "x.csv", "schema": {"fields": [{"name": "Date", "format": "%Q"}]}}
	]}`)
	m, err := Load(dir)
	require.NoError(t, err)

	_, err = m.Dataset()
	require.ErrorIs(t, err, ErrInvalid)
}

func TestStrftimeLayout(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"%d/%m/%y":          "02/01/06",
		"%Y-%m-%d":          "2006-01-02",
		"%d %b %Y %H:%M:%S": "02 Jan 2006 15:04:05",
		"100%%":             "100%",
	}
	for in, want := range cases {
		got, err := StrftimeLayout(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := StrftimeLayout("%d/%")
	require.Error(t, err)
}

func TestLoadAliases(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := write(t, dir, "competitions.yaml", `
aliases:
  Spanish La Liga: La Liga
  English Premier League: Premier League
`)
	rows, err := LoadAliases(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []alias.Row{
		{External: "English Premier League", Canonical: "Premier League"},
		{External: "Spanish La Liga", Canonical: "La Liga"},
	}, rows)

	csvPath := write(t, dir, "teams.csv", "statsbomb_name,csv_name\nWolverhampton Wanderers,Wolves\n")
	rows, err = LoadAliases(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []alias.Row{{External: "Wolverhampton Wanderers", Canonical: "Wolves"}}, rows)
}
