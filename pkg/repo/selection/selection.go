package selection

import (
	"context"
	"encoding/json"
	"errors"

	r "github.com/redis/go-redis/v9"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/constant"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/redis"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
)

type redisStore struct {
	client *r.Client
}

func New() repo.SelectionStore {
	return &redisStore{client: redis.GetClient()}
}

func NewWithClient(client *r.Client) repo.SelectionStore {
	return &redisStore{client: client}
}

func (s *redisStore) Load(ctx context.Context) ([]string, error) {
	raw, err := s.client.Get(ctx, constant.SelectionKey).Result()
	if errors.Is(err, r.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *redisStore) Save(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, constant.SelectionKey, raw, 0).Err()
}
