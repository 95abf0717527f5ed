package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(n int) []*WorkItem {
	out := make([]*WorkItem, n)
	for i := range out {
		out[i] = &WorkItem{Seq: i}
	}
	return out
}

func drain(s Scheduler) []int {
	var seqs []int
	for {
		item, ok := s.Pull()
		if !ok {
			return seqs
		}
		seqs = append(seqs, item.Seq)
	}
}

func TestScheduleFIFO(t *testing.T) {
	s := NewSchedule()
	go s.Schedule()

	s.Push(items(5)...)
	s.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, drain(s))
}

func TestScheduleEmpty(t *testing.T) {
	s := NewSchedule()
	go s.Schedule()
	s.Close()

	_, ok := s.Pull()
	assert.False(t, ok)
}

func TestScheduleCloseTwice(t *testing.T) {
	s := NewSchedule()
	go s.Schedule()
	s.Close()

	assert.NotPanics(t, s.Close)
	assert.Empty(t, drain(s))
}

// 生产者与消费者同时运行时，队列暂时为空不会让消费者提前退出
func TestSchedulePushWhilePulling(t *testing.T) {
	s := NewSchedule()
	go s.Schedule()

	const workers, total = 3, 200
	var mu sync.Mutex
	seen := make(map[int]int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, ok := s.Pull()
				if !ok {
					return
				}
				mu.Lock()
				seen[item.Seq]++
				mu.Unlock()
			}
		}()
	}

	for _, item := range items(total) {
		s.Push(item)
	}
	s.Close()
	wg.Wait()

	assert.Len(t, seen, total)
	for seq, n := range seen {
		assert.Equal(t, 1, n, "seq %d", seq)
	}
}
