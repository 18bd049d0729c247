package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	gamesPlayedKey = "stats:games"
	winsKey        = "stats:wins"
)

type ResultsRepository interface {
	RecordResult(ctx context.Context, winner string) error
	Summary(ctx context.Context) (*Summary, error)
}

// Summary is the aggregate of all finished rounds.
type Summary struct {
	GamesPlayed int64            `json:"games_played"`
	Wins        map[string]int64 `json:"wins"`
}

type dbResults struct {
	client *redis.Client
}

func NewResultsRepository(client *redis.Client) ResultsRepository {
	return &dbResults{
		client: client,
	}
}

// RecordResult bumps the games-played counter and the winning side's tally.
func (that *dbResults) RecordResult(ctx context.Context, winner string) error {
	pipe := that.client.TxPipeline()
	pipe.Incr(ctx, gamesPlayedKey)
	pipe.HIncrBy(ctx, winsKey, winner, 1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *dbResults) Summary(ctx context.Context) (*Summary, error) {
	games, err := that.client.Get(ctx, gamesPlayedKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get games counter: %w", err)
	}

	summary := &Summary{
		Wins: make(map[string]int64),
	}

	if games != "" {
		if summary.GamesPlayed, err = strconv.ParseInt(games, 10, 64); err != nil {
			return nil, fmt.Errorf("failed to parse games counter: %w", err)
		}
	}

	wins, err := that.client.HGetAll(ctx, winsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get win counters: %w", err)
	}

	for winner, count := range wins {
		parsed, err := strconv.ParseInt(count, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse win counter: %w", err)
		}
		summary.Wins[winner] = parsed
	}

	return summary, nil
}
