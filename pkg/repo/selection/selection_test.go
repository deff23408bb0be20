package selection

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	r "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/constant"
)

func newStore(t *testing.T) (*miniredis.Miniredis, *redisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := r.NewClient(&r.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, &redisStore{client: client}
}

func TestLoadMissingKey(t *testing.T) {
	_, store := newStore(t)

	ids, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestSaveThenLoad(t *testing.T) {
	mr, store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []string{"entero", "levures5j"}))

	raw, err := mr.Get(constant.SelectionKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["entero","levures5j"]`, raw)

	ids, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"entero", "levures5j"}, ids)
}

func TestLoadCorruptEntry(t *testing.T) {
	mr, store := newStore(t)
	mr.Set(constant.SelectionKey, "not-json")

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}
