package lock

import (
	"context"
	"sync/atomic"
)

// Export ограничивает число одновременно формируемых отчетов,
// выгрузка держит весь файл в памяти
var Export = NewResourceLock(2)

type ResourceLock struct {
	slots     chan struct{}
	waitCount int32
}

func NewResourceLock(size int) *ResourceLock {
	if size < 1 {
		size = 1
	}
	return &ResourceLock{
		slots: make(chan struct{}, size),
	}
}

// Acquire ждет свободный слот, false если контекст завершился раньше
func (c *ResourceLock) Acquire(ctx context.Context) bool {
	atomic.AddInt32(&c.waitCount, 1)
	defer atomic.AddInt32(&c.waitCount, -1)
	select {
	case c.slots <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *ResourceLock) Release() {
	select {
	case <-c.slots:
	default:
	}
}

// WaitCount возвращает количество ожидающих горутин
func (c *ResourceLock) WaitCount() int {
	return int(atomic.LoadInt32(&c.waitCount))
}
