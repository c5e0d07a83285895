package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/CoderKavin/ibdaily-backend/internal/clock"
	"github.com/CoderKavin/ibdaily-backend/internal/config"
	"github.com/CoderKavin/ibdaily-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const openAIURL = "https://api.openai.com/v1/chat/completions"

// fallbackQuestions rotates deterministically by day when no AI key is
// configured or the API call fails.
var fallbackQuestions = []string{
	"What was the hardest concept you studied today, and how did you attack it?",
	"Which subject got the least attention this week? What is one small step for it tomorrow?",
	"What did you review today that you first learned more than a month ago?",
	"If you had 30 extra focused minutes today, where would they have gone?",
	"What question would you want to see on your next test, and could you answer it now?",
	"Which study technique worked best for you today?",
	"What are you avoiding right now, and what would make starting it easier?",
}

type QuestionService struct {
	db     *gorm.DB
	apiKey string
	model  string
	client *http.Client
}

func NewQuestionService(db *gorm.DB, cfg *config.Config) *QuestionService {
	return &QuestionService{
		db:     db,
		apiKey: cfg.OpenAIAPIKey,
		model:  cfg.OpenAIModel,
		client: &http.Client{Timeout: cfg.AITimeout},
	}
}

// Today returns the prompt for the current civil day, generating and storing
// it on first request.
func (s *QuestionService) Today(ctx context.Context, now time.Time) (*models.DailyQuestion, error) {
	day := clock.DateKey(now)

	var q models.DailyQuestion
	err := s.db.Where("date_key = ?", string(day)).First(&q).Error
	if err == nil {
		return &q, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load daily question: %w", err)
	}

	text, source := s.generate(ctx, day)
	q = models.DailyQuestion{
		ID:      uuid.New(),
		DateKey: string(day),
		Text:    text,
		Source:  source,
	}
	// Concurrent first requests race to insert; the loser re-reads so every
	// caller sees the same question for the day.
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&q)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save daily question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if err := s.db.Where("date_key = ?", string(day)).First(&q).Error; err != nil {
			return nil, fmt.Errorf("failed to reload daily question: %w", err)
		}
	}
	return &q, nil
}

func (s *QuestionService) generate(ctx context.Context, day clock.DayKey) (text, source string) {
	if s.apiKey != "" {
		if t, err := s.callOpenAI(ctx); err == nil {
			return t, "ai"
		} else {
			slog.Warn("daily question generation failed, using fallback", "error", err)
		}
	}
	return fallbackFor(day), "static"
}

func fallbackFor(day clock.DayKey) string {
	h := fnv.New32a()
	h.Write([]byte(day))
	return fallbackQuestions[int(h.Sum32())%len(fallbackQuestions)]
}

func (s *QuestionService) callOpenAI(ctx context.Context) (string, error) {
	payload := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You write one short reflective prompt for students logging their daily study. One sentence, no preamble, no quotes.",
			},
			{
				"role":    "user",
				"content": "Write today's reflection prompt.",
			},
		},
		"max_tokens":  80,
		"temperature": 0.9,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	text := strings.TrimSpace(strings.Trim(parsed.Choices[0].Message.Content, `"`))
	if text == "" {
		return "", errors.New("openai returned an empty prompt")
	}
	return text, nil
}
