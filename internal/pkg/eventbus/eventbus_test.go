package eventbus

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	topic   string
	payload string
}

func (e testEvent) Topic() string { return e.topic }

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	ctx := context.Background()

	var mu sync.Mutex
	var received []string

	bus.Subscribe("greeting", func(ctx context.Context, event Event) {
		e := event.(testEvent)
		mu.Lock()
		received = append(received, e.payload)
		mu.Unlock()
	})

	bus.Publish(ctx, testEvent{topic: "greeting", payload: "hello"})
	bus.Publish(ctx, testEvent{topic: "greeting", payload: "world"})
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"hello", "world"}, received)
}

func TestBus_FanOut(t *testing.T) {
	bus := New()
	ctx := context.Background()

	var count int64
	for i := 0; i < 4; i++ {
		bus.Subscribe("fanout", func(ctx context.Context, event Event) {
			atomic.AddInt64(&count, 1)
		})
	}

	require.Equal(t, 4, bus.SubscriberCount("fanout"))

	bus.Publish(ctx, testEvent{topic: "fanout"})
	bus.Wait()

	assert.Equal(t, int64(4), atomic.LoadInt64(&count))
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := New()
	ctx := context.Background()

	// 无订阅者时事件被丢弃，不 panic 不阻塞
	bus.Publish(ctx, testEvent{topic: "orphan"})
	bus.Wait()

	assert.Equal(t, 0, bus.SubscriberCount("orphan"))
}

func TestBus_HandlerIsolation(t *testing.T) {
	bus := New()
	ctx := context.Background()

	var delivered int64
	bus.Subscribe("mixed", func(ctx context.Context, event Event) {
		panic("handler blew up")
	})
	bus.Subscribe("mixed", func(ctx context.Context, event Event) {
		atomic.AddInt64(&delivered, 1)
	})

	bus.Publish(ctx, testEvent{topic: "mixed"})
	bus.Wait()

	// 一个处理器 panic 不影响其他订阅者
	assert.Equal(t, int64(1), atomic.LoadInt64(&delivered))
}

func TestBus_TopicIsolation(t *testing.T) {
	bus := New()
	ctx := context.Background()

	var aCount, bCount int64
	bus.Subscribe("topic.a", func(ctx context.Context, event Event) {
		atomic.AddInt64(&aCount, 1)
	})
	bus.Subscribe("topic.b", func(ctx context.Context, event Event) {
		atomic.AddInt64(&bCount, 1)
	})

	bus.Publish(ctx, testEvent{topic: "topic.a"})
	bus.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&aCount))
	assert.Equal(t, int64(0), atomic.LoadInt64(&bCount))
}
