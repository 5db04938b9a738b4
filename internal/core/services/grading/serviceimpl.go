package grading

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
)

// Fallback scores used when the model reply cannot be parsed
const (
	fallbackCorrectness = 50
	fallbackEfficiency  = 50
	fallbackClarity     = 50
	fallbackFeedback    = "Automatic grading was unavailable; a neutral score was assigned."
)

var _ IGradingService = (*GradingService)(nil)

// GradingService implements the IGradingService interface
type GradingService struct {
	evalClient      secondary.EvalClient
	profilePort     secondary.ProfilePort
	achievementRepo secondary.AchievementRepository
	leaderboard     secondary.LeaderboardCache
	logger          primary.Logger
}

// NewGradingService creates a new grading service
func NewGradingService(
	evalClient secondary.EvalClient,
	profilePort secondary.ProfilePort,
	achievementRepo secondary.AchievementRepository,
	leaderboard secondary.LeaderboardCache,
	logger primary.Logger,
) *GradingService {
	return &GradingService{
		evalClient:      evalClient,
		profilePort:     profilePort,
		achievementRepo: achievementRepo,
		leaderboard:     leaderboard,
		logger:          logger,
	}
}

// modelScores is the JSON object the model is instructed to embed in its reply
type modelScores struct {
	Correctness int    `json:"correctness"`
	Efficiency  int    `json:"efficiency"`
	Clarity     int    `json:"clarity"`
	Feedback    string `json:"feedback"`
}

// GradeSubmission scores a submission, records league points and awards
// achievements. Parse failures fall back to a fixed neutral score triple.
func (s *GradingService) GradeSubmission(ctx context.Context, submission *domain.Submission) (*domain.Evaluation, error) {
	prompt := buildPrompt(submission)

	scores := modelScores{
		Correctness: fallbackCorrectness,
		Efficiency:  fallbackEfficiency,
		Clarity:     fallbackClarity,
		Feedback:    fallbackFeedback,
	}

	reply, err := s.evalClient.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("Evaluation model unavailable, using fallback scores",
			"submissionId", submission.ID, "error", err)
	} else if parsed, ok := parseScores(reply); ok {
		scores = parsed
	} else {
		s.logger.Warn("Could not parse model reply, using fallback scores",
			"submissionId", submission.ID)
	}

	evaluation := &domain.Evaluation{
		ID:           uuid.New(),
		SubmissionID: submission.ID,
		ProfileID:    submission.ProfileID,
		Correctness:  clampScore(scores.Correctness),
		Efficiency:   clampScore(scores.Efficiency),
		Clarity:      clampScore(scores.Clarity),
		Feedback:     scores.Feedback,
		CreatedAt:    time.Now(),
	}

	s.awardPoints(ctx, evaluation)
	s.awardAchievements(ctx, evaluation)

	return evaluation, nil
}

func (s *GradingService) awardPoints(ctx context.Context, evaluation *domain.Evaluation) {
	points := evaluation.Overall()
	if err := s.profilePort.AddPoints(ctx, evaluation.ProfileID, points); err != nil {
		s.logger.Error("Failed to add league points", "profileId", evaluation.ProfileID, "error", err)
		return
	}

	profile, err := s.profilePort.Get(ctx, evaluation.ProfileID)
	if err != nil || profile == nil {
		s.logger.Error("Failed to load profile for leaderboard update", "profileId", evaluation.ProfileID, "error", err)
		return
	}
	if err := s.leaderboard.AddScore(ctx, profile.League, evaluation.ProfileID, points); err != nil {
		s.logger.Error("Failed to update leaderboard cache", "profileId", evaluation.ProfileID, "error", err)
	}
}

func (s *GradingService) awardAchievements(ctx context.Context, evaluation *domain.Evaluation) {
	unlock := func(code domain.AchievementCode) {
		created, err := s.achievementRepo.Unlock(ctx, &domain.Achievement{
			ProfileID:  evaluation.ProfileID,
			Code:       code,
			UnlockedAt: time.Now(),
		})
		if err != nil {
			s.logger.Error("Failed to unlock achievement", "code", code, "error", err)
			return
		}
		if created {
			s.logger.Info("Achievement unlocked", "profileId", evaluation.ProfileID, "code", code)
		}
	}

	count, err := s.achievementRepo.CountEvaluations(ctx, evaluation.ProfileID)
	if err != nil {
		s.logger.Error("Failed to count evaluations", "profileId", evaluation.ProfileID, "error", err)
		return
	}

	if count >= 1 {
		unlock(domain.AchievementFirstBlood)
	}
	if count >= 10 {
		unlock(domain.AchievementTenSolved)
	}
	if evaluation.Correctness == 100 && evaluation.Efficiency == 100 && evaluation.Clarity == 100 {
		unlock(domain.AchievementPerfectScore)
	}
}

func buildPrompt(submission *domain.Submission) string {
	var b strings.Builder
	b.WriteString("You are grading a student code submission. Score correctness (weight 50), ")
	b.WriteString("efficiency (weight 30) and clarity (weight 20) on a 0-100 scale.\n")
	b.WriteString("Reply with a single JSON object: ")
	b.WriteString(`{"correctness": n, "efficiency": n, "clarity": n, "feedback": "..."}`)
	b.WriteString("\n\nLanguage: ")
	b.WriteString(string(submission.Language))
	b.WriteString("\n\nCode:\n")
	b.WriteString(submission.Code)
	b.WriteString("\n\nStudent explanation:\n")
	b.WriteString(submission.Explanation)
	return b.String()
}

// parseScores extracts the first top-level brace-delimited substring from the
// model text and unmarshals it. Models often wrap the object in prose or
// markdown fences, so the reply is never parsed as a whole.
func parseScores(reply string) (modelScores, bool) {
	var scores modelScores

	start := strings.Index(reply, "{")
	if start < 0 {
		return scores, false
	}
	depth := 0
	for i := start; i < len(reply); i++ {
		switch reply[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if err := json.Unmarshal([]byte(reply[start:i+1]), &scores); err != nil {
					return modelScores{}, false
				}
				return scores, true
			}
		}
	}
	return modelScores{}, false
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
