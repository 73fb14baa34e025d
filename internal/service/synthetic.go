package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/sports-companion/internal/models"
	"github.com/yourusername/sports-companion/internal/sport"
)

// DefaultSyntheticCount is the number of sample matches generated when none is requested.
const DefaultSyntheticCount = 3

type teamSeed struct {
	id    string
	name  string
	short string
	venue string
}

type scoreRange struct {
	min, max int
}

type samplePool struct {
	league    string
	teams     []teamSeed
	statuses  []string
	scheduled string
	home      scoreRange
	away      scoreRange
}

var samplePools = map[sport.Key]samplePool{
	sport.Basketball: {
		league: "NBA",
		teams: []teamSeed{
			{"lakers", "Lakers", "LAL", "Crypto.com Arena"},
			{"warriors", "Warriors", "GSW", "Chase Center"},
			{"bucks", "Bucks", "MIL", "Fiserv Forum"},
			{"suns", "Suns", "PHX", "Footprint Center"},
			{"celtics", "Celtics", "BOS", "TD Garden"},
			{"nuggets", "Nuggets", "DEN", "Ball Arena"},
		},
		statuses:  []string{"Q1 10:00", "Q2 05:30", "Q3 08:15", "Q4 02:45", "OT 04:20", "Final", models.DefaultStatus},
		scheduled: models.DefaultStatus,
		home:      scoreRange{80, 110},
		away:      scoreRange{75, 105},
	},
	sport.Football: {
		league: "Premier League",
		teams: []teamSeed{
			{"arsenal", "Arsenal", "ARS", "Emirates Stadium"},
			{"chelsea", "Chelsea", "CHE", "Stamford Bridge"},
			{"liverpool", "Liverpool", "LIV", "Anfield"},
			{"man-city", "Manchester City", "MCI", "Etihad Stadium"},
			{"tottenham", "Tottenham Hotspur", "TOT", "Tottenham Hotspur Stadium"},
			{"newcastle", "Newcastle United", "NEW", "St James' Park"},
		},
		statuses:  []string{"1H 12'", "1H 38'", "HT", "2H 61'", "2H 84'", "FT", models.DefaultStatus},
		scheduled: models.DefaultStatus,
		home:      scoreRange{0, 4},
		away:      scoreRange{0, 3},
	},
	sport.Cricket: {
		league: "Cricket",
		teams: []teamSeed{
			{"india", "India", "IND", "Wankhede Stadium"},
			{"australia", "Australia", "AUS", "Melbourne Cricket Ground"},
			{"england", "England", "ENG", "Lord's"},
			{"south-africa", "South Africa", "RSA", "Newlands"},
			{"new-zealand", "New Zealand", "NZ", "Eden Park"},
			{"pakistan", "Pakistan", "PAK", "Gaddafi Stadium"},
		},
		statuses:  []string{"1st Innings", "Innings Break", "2nd Innings", "Result", models.DefaultStatus},
		scheduled: models.DefaultStatus,
		home:      scoreRange{120, 320},
		away:      scoreRange{90, 300},
	},
}

// SyntheticGenerator produces plausible sample matches for the final fallback.
// It is safe for concurrent use.
type SyntheticGenerator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

// NewSyntheticGenerator creates a generator seeded from the clock
func NewSyntheticGenerator() *SyntheticGenerator {
	return NewSyntheticGeneratorWithSeed(time.Now().UnixNano())
}

// NewSyntheticGeneratorWithSeed creates a generator with a fixed seed
func NewSyntheticGeneratorWithSeed(seed int64) *SyntheticGenerator {
	return &SyntheticGenerator{
		rng:   rand.New(rand.NewSource(seed)),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Capacity returns how many distinct matches can be generated for a sport.
func Capacity(s sport.Key) int {
	return len(poolFor(s).teams) / 2
}

// Generate returns n sample matches in which no team appears twice.
// n <= 0 means DefaultSyntheticCount; n is capped at the pool capacity.
func (g *SyntheticGenerator) Generate(s sport.Key, n int) []models.Match {
	pool := poolFor(s)
	if n <= 0 {
		n = DefaultSyntheticCount
	}
	if capacity := len(pool.teams) / 2; n > capacity {
		n = capacity
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order := g.rng.Perm(len(pool.teams))
	matches := make([]models.Match, 0, n)
	for i := 0; i < n; i++ {
		home := pool.teams[order[2*i]]
		away := pool.teams[order[2*i+1]]
		status := pool.statuses[g.rng.Intn(len(pool.statuses))]

		m := models.Match{
			ID:       "synthetic-" + g.newID(),
			HomeTeam: models.Team{ID: home.id, Name: home.name, ShortName: home.short},
			AwayTeam: models.Team{ID: away.id, Name: away.name, ShortName: away.short},
			Status:   status,
			Time:     status,
			League:   pool.league,
			Venue:    home.venue,
		}
		if status == pool.scheduled {
			m.Time = g.kickoff()
		} else {
			m.HomeTeam.Score = g.between(pool.home)
			m.AwayTeam.Score = g.between(pool.away)
		}
		matches = append(matches, m)
	}
	return matches
}

func (g *SyntheticGenerator) between(r scoreRange) int {
	return r.min + g.rng.Intn(r.max-r.min+1)
}

// kickoff picks a start time within the next 24 hours.
func (g *SyntheticGenerator) kickoff() string {
	start := g.now().Add(time.Duration(g.rng.Intn(24*60)) * time.Minute)
	return start.Format("15:04")
}

func poolFor(s sport.Key) samplePool {
	if pool, ok := samplePools[s]; ok {
		return pool
	}
	return samplePools[sport.Default]
}

// describePool is used in log lines.
func describePool(s sport.Key) string {
	pool := poolFor(s)
	names := make([]string, len(pool.teams))
	for i, t := range pool.teams {
		names[i] = t.short
	}
	return fmt.Sprintf("%s[%s]", pool.league, strings.Join(names, ","))
}
