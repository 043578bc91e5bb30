package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"quizdeck/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type RankingService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewRankingService(db *gorm.DB, redis *redis.Client) *RankingService {
	return &RankingService{
		db:    db,
		redis: redis,
	}
}

type UserRanking struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	TotalScore int    `json:"total_score"`
}

const (
	rankingsCacheKey = "rankings:top"
	rankingsCacheTTL = 30 * time.Second
	rankingsLimit    = 50
)

// GetRankings returns the top users by total score, where a user's total is
// the sum of their best attempt score per quiz. Repeating a quiz can only
// replace a best score, never stack. Ties break on user id ascending.
//
// The aggregate is cached in redis with a short TTL; the cache is advisory
// and any redis failure falls through to a live query.
func (s *RankingService) GetRankings(ctx context.Context) ([]UserRanking, error) {
	if cached := s.getCachedRankings(ctx); cached != nil {
		return cached, nil
	}

	rankings, err := s.queryRankings()
	if err != nil {
		return nil, err
	}

	s.cacheRankings(ctx, rankings)
	return rankings, nil
}

func (s *RankingService) queryRankings() ([]UserRanking, error) {
	best := s.db.Model(&models.QuizAttempt{}).
		Select("user_id, quiz_id, MAX(score) AS best_score").
		Group("user_id, quiz_id")

	var rankings []UserRanking
	err := s.db.Table("(?) AS best", best).
		Select("best.user_id, users.username, SUM(best.best_score) AS total_score").
		Joins("JOIN users ON users.id = best.user_id AND users.deleted_at IS NULL").
		Group("best.user_id, users.username").
		Order("total_score DESC, best.user_id ASC").
		Limit(rankingsLimit).
		Scan(&rankings).Error
	if err != nil {
		return nil, err
	}

	if rankings == nil {
		rankings = []UserRanking{}
	}
	return rankings, nil
}

func (s *RankingService) getCachedRankings(ctx context.Context) []UserRanking {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(ctx, rankingsCacheKey).Result()
	if err != nil {
		return nil // miss or redis down, either way recompute
	}

	var rankings []UserRanking
	if err := json.Unmarshal([]byte(data), &rankings); err != nil {
		log.Printf("Failed to decode cached rankings: %v", err)
		return nil
	}
	return rankings
}

func (s *RankingService) cacheRankings(ctx context.Context, rankings []UserRanking) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(rankings)
	if err != nil {
		log.Printf("Failed to encode rankings for cache: %v", err)
		return
	}
	if err := s.redis.Set(ctx, rankingsCacheKey, data, rankingsCacheTTL).Err(); err != nil {
		log.Printf("Failed to store rankings in Redis: %v", err)
	}
}
