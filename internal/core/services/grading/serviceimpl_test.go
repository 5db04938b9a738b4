package grading

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/adapter/logging"
	"gitlab.com/inteleval.net/internal/domain"
)

type fakeEval struct {
	reply string
	err   error
}

func (f *fakeEval) Complete(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

type fakeProfilePort struct {
	profile *domain.Profile
	points  int
}

func (f *fakeProfilePort) Create(ctx context.Context, p *domain.Profile) error { return nil }
func (f *fakeProfilePort) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return f.profile, nil
}
func (f *fakeProfilePort) GetByUserName(ctx context.Context, u string) (*domain.Profile, error) {
	return nil, nil
}
func (f *fakeProfilePort) GetByGoogleID(ctx context.Context, g string) (*domain.Profile, error) {
	return nil, nil
}
func (f *fakeProfilePort) AddPoints(ctx context.Context, id uuid.UUID, points int) error {
	f.points += points
	return nil
}
func (f *fakeProfilePort) SetLeague(ctx context.Context, id uuid.UUID, league string) error {
	return nil
}

type fakeAchievements struct {
	evalCount int
	unlocked  map[domain.AchievementCode]bool
}

func (f *fakeAchievements) Unlock(ctx context.Context, a *domain.Achievement) (bool, error) {
	if f.unlocked == nil {
		f.unlocked = map[domain.AchievementCode]bool{}
	}
	if f.unlocked[a.Code] {
		return false, nil
	}
	f.unlocked[a.Code] = true
	return true, nil
}
func (f *fakeAchievements) ListForProfile(ctx context.Context, id uuid.UUID) ([]*domain.Achievement, error) {
	return nil, nil
}
func (f *fakeAchievements) CountEvaluations(ctx context.Context, id uuid.UUID) (int, error) {
	return f.evalCount, nil
}

type fakeLeaderboard struct {
	scores map[string]int
}

func (f *fakeLeaderboard) AddScore(ctx context.Context, league string, id uuid.UUID, points int) error {
	if f.scores == nil {
		f.scores = map[string]int{}
	}
	f.scores[league] += points
	return nil
}
func (f *fakeLeaderboard) Top(ctx context.Context, league string, limit int) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeLeaderboard) RankOf(ctx context.Context, league string, id uuid.UUID) (int, error) {
	return 0, nil
}
func (f *fakeLeaderboard) ResetWeek(ctx context.Context, league string) error { return nil }

func newGrading(eval *fakeEval, profiles *fakeProfilePort, ach *fakeAchievements, lb *fakeLeaderboard) *GradingService {
	return NewGradingService(eval, profiles, ach, lb, logging.NewDevelopmentLogger())
}

func submission() *domain.Submission {
	return domain.NewSubmission(uuid.New(), "two-sum", domain.LanguagePython, "def f(): pass", "it works")
}

func TestGradeSubmissionParsesEmbeddedJSON(t *testing.T) {
	eval := &fakeEval{reply: "Here are the scores:\n```json\n" +
		`{"correctness": 90, "efficiency": 70, "clarity": 80, "feedback": "solid"}` + "\n```"}
	profiles := &fakeProfilePort{profile: &domain.Profile{League: domain.LeagueBronze}}
	svc := newGrading(eval, profiles, &fakeAchievements{evalCount: 1}, &fakeLeaderboard{})

	evaluation, err := svc.GradeSubmission(context.Background(), submission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evaluation.Correctness != 90 || evaluation.Efficiency != 70 || evaluation.Clarity != 80 {
		t.Errorf("scores = %d/%d/%d", evaluation.Correctness, evaluation.Efficiency, evaluation.Clarity)
	}
	if evaluation.Feedback != "solid" {
		t.Errorf("feedback = %q", evaluation.Feedback)
	}
	// weighted overall: 90*50 + 70*30 + 80*20 = 82
	if profiles.points != 82 {
		t.Errorf("league points = %d, want 82", profiles.points)
	}
}

func TestGradeSubmissionFallbackOnGarbage(t *testing.T) {
	eval := &fakeEval{reply: "I cannot grade this."}
	profiles := &fakeProfilePort{profile: &domain.Profile{League: domain.LeagueBronze}}
	svc := newGrading(eval, profiles, &fakeAchievements{evalCount: 1}, &fakeLeaderboard{})

	evaluation, err := svc.GradeSubmission(context.Background(), submission())
	if err != nil {
		t.Fatalf("parse failure must not surface: %v", err)
	}
	if evaluation.Correctness != fallbackCorrectness ||
		evaluation.Efficiency != fallbackEfficiency ||
		evaluation.Clarity != fallbackClarity {
		t.Errorf("expected fallback triple, got %d/%d/%d",
			evaluation.Correctness, evaluation.Efficiency, evaluation.Clarity)
	}
}

func TestGradeSubmissionFallbackOnModelError(t *testing.T) {
	eval := &fakeEval{err: errors.New("connection refused")}
	profiles := &fakeProfilePort{profile: &domain.Profile{League: domain.LeagueBronze}}
	svc := newGrading(eval, profiles, &fakeAchievements{evalCount: 1}, &fakeLeaderboard{})

	evaluation, err := svc.GradeSubmission(context.Background(), submission())
	if err != nil {
		t.Fatalf("model error must not surface: %v", err)
	}
	if evaluation.Correctness != fallbackCorrectness {
		t.Errorf("expected fallback score, got %d", evaluation.Correctness)
	}
}

func TestGradeSubmissionClampsScores(t *testing.T) {
	eval := &fakeEval{reply: `{"correctness": 150, "efficiency": -5, "clarity": 80, "feedback": ""}`}
	profiles := &fakeProfilePort{profile: &domain.Profile{League: domain.LeagueBronze}}
	svc := newGrading(eval, profiles, &fakeAchievements{evalCount: 1}, &fakeLeaderboard{})

	evaluation, _ := svc.GradeSubmission(context.Background(), submission())
	if evaluation.Correctness != 100 || evaluation.Efficiency != 0 {
		t.Errorf("scores must clamp to 0-100, got %d/%d", evaluation.Correctness, evaluation.Efficiency)
	}
}

func TestGradeSubmissionAwardsAchievements(t *testing.T) {
	eval := &fakeEval{reply: `{"correctness": 100, "efficiency": 100, "clarity": 100, "feedback": "perfect"}`}
	profiles := &fakeProfilePort{profile: &domain.Profile{League: domain.LeagueGold}}
	ach := &fakeAchievements{evalCount: 12}
	svc := newGrading(eval, profiles, ach, &fakeLeaderboard{})

	if _, err := svc.GradeSubmission(context.Background(), submission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, code := range []domain.AchievementCode{
		domain.AchievementFirstBlood,
		domain.AchievementTenSolved,
		domain.AchievementPerfectScore,
	} {
		if !ach.unlocked[code] {
			t.Errorf("expected %s to unlock", code)
		}
	}
}

func TestParseScoresPicksFirstObject(t *testing.T) {
	reply := `prose {"correctness": 10, "efficiency": 20, "clarity": 30, "feedback": "a"} {"correctness": 99}`
	scores, ok := parseScores(reply)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if scores.Correctness != 10 {
		t.Errorf("parse should take the first object, got correctness=%d", scores.Correctness)
	}
}

func TestParseScoresNestedBraces(t *testing.T) {
	reply := `{"correctness": 10, "efficiency": 20, "clarity": 30, "feedback": "use {} literals"}`
	if _, ok := parseScores(reply); !ok {
		t.Errorf("balanced nested braces inside strings are fine for this shape")
	}
}
