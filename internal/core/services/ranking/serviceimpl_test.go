package ranking

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/adapter/logging"
	"gitlab.com/inteleval.net/internal/domain"
)

type fakeRankingRepo struct {
	standings map[string][]*domain.LeagueStanding
	byProfile map[uuid.UUID]*domain.LeagueStanding
	err       error
}

func (f *fakeRankingRepo) GetStandings(ctx context.Context, league string, limit int) ([]*domain.LeagueStanding, error) {
	if f.err != nil {
		return nil, f.err
	}
	rows := f.standings[league]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeRankingRepo) GetStanding(ctx context.Context, profileID uuid.UUID) (*domain.LeagueStanding, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byProfile[profileID], nil
}

type fakeProfilePort struct {
	profiles map[uuid.UUID]*domain.Profile
	leagues  map[uuid.UUID]string
}

func newFakeProfilePort() *fakeProfilePort {
	return &fakeProfilePort{
		profiles: make(map[uuid.UUID]*domain.Profile),
		leagues:  make(map[uuid.UUID]string),
	}
}

func (f *fakeProfilePort) Create(ctx context.Context, profile *domain.Profile) error {
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfilePort) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfilePort) GetByUserName(ctx context.Context, userName string) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.UserName == userName {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfilePort) GetByGoogleID(ctx context.Context, googleID string) (*domain.Profile, error) {
	return nil, nil
}

func (f *fakeProfilePort) AddPoints(ctx context.Context, id uuid.UUID, points int) error {
	return nil
}

func (f *fakeProfilePort) SetLeague(ctx context.Context, id uuid.UUID, league string) error {
	f.leagues[id] = league
	return nil
}

type fakeLeaderboard struct {
	top      map[string][]uuid.UUID
	topErr   error
	resets   []string
	rankErrs map[uuid.UUID]error
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{top: make(map[string][]uuid.UUID)}
}

func (f *fakeLeaderboard) AddScore(ctx context.Context, league string, profileID uuid.UUID, points int) error {
	return nil
}

func (f *fakeLeaderboard) Top(ctx context.Context, league string, limit int) ([]uuid.UUID, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	ids := f.top[league]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeLeaderboard) RankOf(ctx context.Context, league string, profileID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeLeaderboard) ResetWeek(ctx context.Context, league string) error {
	f.resets = append(f.resets, league)
	return nil
}

func standing(id uuid.UUID, league string, rank, points int) *domain.LeagueStanding {
	return &domain.LeagueStanding{
		ProfileID: id,
		UserName:  "user-" + id.String()[:8],
		League:    league,
		Points:    points,
		Rank:      rank,
	}
}

func TestLeaderboardUnknownLeague(t *testing.T) {
	svc := NewRankingService(&fakeRankingRepo{}, newFakeProfilePort(), newFakeLeaderboard(), logging.NewDevelopmentLogger())

	if _, err := svc.Leaderboard(context.Background(), "PLATINUM", 10); err == nil {
		t.Fatal("expected an error for an unknown league")
	}
}

func TestLeaderboardServedFromCache(t *testing.T) {
	profiles := newFakeProfilePort()
	cache := newFakeLeaderboard()
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id := uuid.New()
		profiles.profiles[id] = &domain.Profile{ID: id, UserName: "cached", Points: 100 - i}
		ids = append(ids, id)
	}
	cache.top[domain.LeagueGold] = ids

	repo := &fakeRankingRepo{err: errors.New("postgres should not be hit")}
	svc := NewRankingService(repo, profiles, cache, logging.NewDevelopmentLogger())

	standings, err := svc.Leaderboard(context.Background(), domain.LeagueGold, 3)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("standings = %d entries, want 3", len(standings))
	}
	for i, s := range standings {
		if s.Rank != i+1 {
			t.Errorf("rank[%d] = %d, want %d", i, s.Rank, i+1)
		}
		if s.League != domain.LeagueGold {
			t.Errorf("league = %q, want %q", s.League, domain.LeagueGold)
		}
	}
}

func TestLeaderboardFallsBackOnShortCache(t *testing.T) {
	cache := newFakeLeaderboard()
	cache.top[domain.LeagueSilver] = []uuid.UUID{uuid.New()} // fewer than requested

	want := []*domain.LeagueStanding{
		standing(uuid.New(), domain.LeagueSilver, 1, 40),
		standing(uuid.New(), domain.LeagueSilver, 2, 30),
	}
	repo := &fakeRankingRepo{standings: map[string][]*domain.LeagueStanding{domain.LeagueSilver: want}}
	svc := NewRankingService(repo, newFakeProfilePort(), cache, logging.NewDevelopmentLogger())

	standings, err := svc.Leaderboard(context.Background(), domain.LeagueSilver, 2)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(standings) != 2 || standings[0] != want[0] {
		t.Errorf("standings not served from postgres fallback")
	}
}

func TestLeaderboardFallsBackOnCacheError(t *testing.T) {
	cache := newFakeLeaderboard()
	cache.topErr = errors.New("redis down")

	want := []*domain.LeagueStanding{standing(uuid.New(), domain.LeagueBronze, 1, 5)}
	repo := &fakeRankingRepo{standings: map[string][]*domain.LeagueStanding{domain.LeagueBronze: want}}
	svc := NewRankingService(repo, newFakeProfilePort(), cache, logging.NewDevelopmentLogger())

	standings, err := svc.Leaderboard(context.Background(), domain.LeagueBronze, 1)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(standings) != 1 {
		t.Fatalf("standings = %d entries, want 1", len(standings))
	}
}

func TestRolloverPromotesAndDemotes(t *testing.T) {
	promoted := uuid.New()
	demoted := uuid.New()
	steady := uuid.New()
	topDiamond := uuid.New()

	repo := &fakeRankingRepo{standings: map[string][]*domain.LeagueStanding{
		domain.LeagueBronze: {
			standing(promoted, domain.LeagueBronze, 1, 120),
			standing(steady, domain.LeagueBronze, 6, 50),
		},
		domain.LeagueSilver: {
			standing(demoted, domain.LeagueSilver, 9, 4),
		},
		domain.LeagueDiamond: {
			// top of the highest league stays put
			standing(topDiamond, domain.LeagueDiamond, 1, 500),
		},
	}}
	profiles := newFakeProfilePort()
	cache := newFakeLeaderboard()
	svc := NewRankingService(repo, profiles, cache, logging.NewDevelopmentLogger())

	if err := svc.RolloverWeek(context.Background()); err != nil {
		t.Fatalf("RolloverWeek returned error: %v", err)
	}

	if got := profiles.leagues[promoted]; got != domain.LeagueSilver {
		t.Errorf("promoted profile league = %q, want %q", got, domain.LeagueSilver)
	}
	if got := profiles.leagues[demoted]; got != domain.LeagueBronze {
		t.Errorf("demoted profile league = %q, want %q", got, domain.LeagueBronze)
	}
	if _, moved := profiles.leagues[steady]; moved {
		t.Error("rank 6 profile with safe points should not move")
	}
	if _, moved := profiles.leagues[topDiamond]; moved {
		t.Error("top of the highest league should not move")
	}
	if len(cache.resets) != len(leagues) {
		t.Errorf("cache resets = %d, want one per league", len(cache.resets))
	}
}

// liveLeagueState mimics postgres during a rollover: standings queries see
// league moves as soon as they are applied.
type liveLeagueState struct {
	rows map[uuid.UUID]*domain.LeagueStanding
}

type liveRankingRepo struct {
	state *liveLeagueState
}

func (f *liveRankingRepo) GetStandings(ctx context.Context, league string, limit int) ([]*domain.LeagueStanding, error) {
	var out []*domain.LeagueStanding
	for _, r := range f.state.rows {
		if r.League == league {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	for i, r := range out {
		r.Rank = i + 1
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *liveRankingRepo) GetStanding(ctx context.Context, profileID uuid.UUID) (*domain.LeagueStanding, error) {
	return f.state.rows[profileID], nil
}

type liveProfilePort struct {
	fakeProfilePort
	state *liveLeagueState
	moves []string
}

func (f *liveProfilePort) SetLeague(ctx context.Context, id uuid.UUID, league string) error {
	row := f.state.rows[id]
	f.moves = append(f.moves, row.League+"->"+league)
	row.League = league
	return nil
}

func TestRolloverJudgesEachProfileOnce(t *testing.T) {
	id := uuid.New()
	state := &liveLeagueState{rows: map[uuid.UUID]*domain.LeagueStanding{
		id: {ProfileID: id, UserName: "solo", League: domain.LeagueDiamond, Points: 5, Rank: 1},
	}}
	repo := &liveRankingRepo{state: state}
	profiles := &liveProfilePort{fakeProfilePort: *newFakeProfilePort(), state: state}
	svc := NewRankingService(repo, profiles, newFakeLeaderboard(), logging.NewDevelopmentLogger())

	if err := svc.RolloverWeek(context.Background()); err != nil {
		t.Fatalf("RolloverWeek returned error: %v", err)
	}

	// A low-point Diamond profile is demoted once. Ranking first among the
	// destination league's members must not promote it straight back.
	if got := state.rows[id].League; got != domain.LeagueGold {
		t.Errorf("final league = %q, want %q", got, domain.LeagueGold)
	}
	if len(profiles.moves) != 1 || profiles.moves[0] != domain.LeagueDiamond+"->"+domain.LeagueGold {
		t.Errorf("moves = %v, want a single demotion", profiles.moves)
	}
}

func TestStandingOf(t *testing.T) {
	id := uuid.New()
	want := standing(id, domain.LeagueGold, 3, 77)
	repo := &fakeRankingRepo{byProfile: map[uuid.UUID]*domain.LeagueStanding{id: want}}
	svc := NewRankingService(repo, newFakeProfilePort(), newFakeLeaderboard(), logging.NewDevelopmentLogger())

	got, err := svc.StandingOf(context.Background(), id)
	if err != nil {
		t.Fatalf("StandingOf returned error: %v", err)
	}
	if got != want {
		t.Errorf("StandingOf = %+v, want %+v", got, want)
	}
}
