package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	skillsKey = "skills:all" // Cached JSON list of all skills
	cacheTTL  = 24 * time.Hour
)

// Cache holds the skills reference list in Redis as a JSON value. Misses
// fall through to Postgres; see Service.GetAll.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached list, or (nil, false, nil) on a miss.
func (c *Cache) Get(ctx context.Context) ([]Skill, bool, error) {
	data, err := c.client.Get(ctx, skillsKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get skills from cache: %w", err)
	}

	var out []Skill
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached skills: %w", err)
	}
	return out, true, nil
}

func (c *Cache) Set(ctx context.Context, list []Skill) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	if err := c.client.Set(ctx, skillsKey, data, cacheTTL).Err(); err != nil {
		return fmt.Errorf("set skills cache: %w", err)
	}
	return nil
}
