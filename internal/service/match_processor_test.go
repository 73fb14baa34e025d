package service

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/sports-companion/internal/datasource"
	"github.com/yourusername/sports-companion/internal/models"
)

func TestCoerceScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 0},
		{"int", 102, 102},
		{"float truncates", 98.9, 98},
		{"numeric string", "87", 87},
		{"padded string", "  12 ", 12},
		{"leading zero is decimal", "010", 10},
		{"fraction string", "7.5", 7},
		{"negative", -4, 0},
		{"negative string", "-3", 0},
		{"text", "abc", 0},
		{"empty string", "", 0},
		{"bool", true, 0},
		{"json number", json.Number("45"), 45},
		{"nan", math.NaN(), 0},
		{"huge", 1e12, math.MaxInt32},
		{"infinity string", "Inf", 0},
		{"infinity", math.Inf(1), 0},
		{"slice", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceScore(tt.in))
		})
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "LAK", ShortName("Lakers"))
	assert.Equal(t, "NZ", ShortName("nz"))
	assert.Equal(t, "", ShortName("   "))
	assert.Equal(t, "ÉCO", ShortName("école"))
}

func TestProcessOneFillsDefaults(t *testing.T) {
	p := NewMatchProcessor(nil)
	p.newID = func() string { return "generated" }

	m := p.ProcessOne(datasource.RawMatch{})

	assert.Equal(t, "generated", m.ID)
	assert.Equal(t, models.DefaultHomeName, m.HomeTeam.Name)
	assert.Equal(t, models.DefaultHomeName, m.HomeTeam.ID)
	assert.Equal(t, "HOM", m.HomeTeam.ShortName)
	assert.Equal(t, models.DefaultAwayName, m.AwayTeam.Name)
	assert.Equal(t, "AWA", m.AwayTeam.ShortName)
	assert.Equal(t, 0, m.HomeTeam.Score)
	assert.Equal(t, models.DefaultStatus, m.Status)
	assert.Equal(t, models.DefaultTime, m.Time)
	assert.Equal(t, models.DefaultLeague, m.League)
	assert.Equal(t, models.DefaultVenue, m.Venue)
}

func TestProcessOneKeepsProviderFields(t *testing.T) {
	p := NewMatchProcessor(nil)

	m := p.ProcessOne(datasource.RawMatch{
		ID:     " g-1 ",
		Home:   datasource.RawTeam{ID: "14", Name: "Lakers", ShortName: "LAL", Score: "101"},
		Away:   datasource.RawTeam{Name: "Celtics", Score: 99.0},
		Status: "Final",
		Time:   "19:30",
		League: "NBA",
		Venue:  "Crypto.com Arena",
	})

	assert.Equal(t, "g-1", m.ID)
	assert.Equal(t, models.Team{ID: "14", Name: "Lakers", ShortName: "LAL", Score: 101}, m.HomeTeam)
	assert.Equal(t, models.Team{ID: "Celtics", Name: "Celtics", ShortName: "CEL", Score: 99}, m.AwayTeam)
	assert.Equal(t, "Final", m.Status)
	assert.Equal(t, "19:30", m.Time)
	assert.Equal(t, "NBA", m.League)
	assert.Equal(t, "Crypto.com Arena", m.Venue)
}

func TestProcessMakesIDsUnique(t *testing.T) {
	p := NewMatchProcessor(nil)

	matches := p.Process([]datasource.RawMatch{{ID: "a"}, {ID: "a"}, {ID: "a-2"}, {ID: "a"}})

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"a", "a-2", "a-2-2", "a-3"}, ids)
	assert.Empty(t, NewMatchValidator().ValidateBatch(matches))
}

func TestProcessNilInput(t *testing.T) {
	matches := NewMatchProcessor(nil).Process(nil)
	require.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestProcessGeneratesDistinctIDs(t *testing.T) {
	matches := NewMatchProcessor(nil).Process([]datasource.RawMatch{{}, {}, {}})
	require.Len(t, matches, 3)
	assert.NotEqual(t, matches[0].ID, matches[1].ID)
	assert.NotEqual(t, matches[1].ID, matches[2].ID)
}
