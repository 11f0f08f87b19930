// Package eventbus 提供进程内的发布/订阅机制。
// 处理器按事件各自在独立 goroutine 中执行：同一事件的多个订阅者并发扇出，
// 不同事件类型之间只有因果顺序（上游处理完才会发布下游事件），没有全序。
package eventbus

import (
	"context"
	"log"
	"sync"
)

// Event 总线上承载的类型化事件
type Event interface {
	Topic() string
}

// Handler 事件处理器。处理器内部负责自己的错误处理，总线不重试。
type Handler func(ctx context.Context, event Event)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	wg       sync.WaitGroup
}

func New() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

// Subscribe 注册某个主题的处理器
func (b *Bus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish 发布事件，每个订阅者在各自的 goroutine 中处理
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.Topic()]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		log.Printf("eventbus: no subscribers for topic %s, event dropped", event.Topic())
		return
	}

	for _, handler := range handlers {
		h := handler
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("eventbus: handler panic on topic %s: %v", event.Topic(), r)
				}
			}()
			h(ctx, event)
		}()
	}
}

// Wait 等待所有已派发的处理器完成，用于优雅关闭
func (b *Bus) Wait() {
	b.wg.Wait()
}

// SubscriberCount 返回某个主题的订阅者数量
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[topic])
}
