package menuconfig

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"creme-menu/internal/entry"
)

type fakePublisher struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, body []byte) error {
	p.keys = append(p.keys, key)
	p.bodies = append(p.bodies, body)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func TestMQNotifierPublishes(t *testing.T) {
	pub := &fakePublisher{}
	ev := ChangeEvent{Action: ActionDeleted, RecordID: 7, EntryID: entry.ContainerID, At: time.Unix(0, 0).UTC()}

	Notifiers{MQNotifier{Publisher: pub}, MQNotifier{}}.MenuChanged(context.Background(), ev)

	if len(pub.keys) != 1 || pub.keys[0] != RoutingKey {
		t.Fatalf("unexpected routing keys: %v", pub.keys)
	}
	var got ChangeEvent
	if err := json.Unmarshal(pub.bodies[0], &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Action != ActionDeleted || got.RecordID != 7 {
		t.Fatalf("unexpected event: %+v", got)
	}

	pub.err = errors.New("broker down")
	MQNotifier{Publisher: pub}.MenuChanged(context.Background(), ev)
	if len(pub.keys) != 2 {
		t.Fatalf("expected a second publish attempt")
	}
}

func TestRedisCacheDisabled(t *testing.T) {
	ctx := context.Background()

	var nilCache *RedisCache
	if _, ok, err := nilCache.Get(ctx); ok || err != nil {
		t.Fatalf("nil cache must miss: %v %v", ok, err)
	}
	if err := nilCache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	// a zero TTL never reaches redis
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()
	c := NewRedisCache(rdb, func() time.Duration { return 0 })
	if err := c.Set(ctx, []entry.Record{{ID: 1}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, err := c.Get(ctx); ok || err != nil {
		t.Fatalf("disabled cache must miss: %v %v", ok, err)
	}
}
