package engine

import (
	"sync"

	"github.com/Nrich-sunny/honorcrawler/collect"
)

// WorkItem 一位教师的获取与判断任务
type WorkItem struct {
	Seq      int
	Site     *collect.Site
	Fragment string
	Name     string
}

type Scheduler interface {
	Schedule()               // 负责启动调度器
	Push(items ...*WorkItem) // 将任务放入到调度器中
	Close()                  // 不再有新任务，队列排空后 Pull 返回 false
	Pull() (*WorkItem, bool) // 从调度器中获取任务
}

type ScheduleEngine struct {
	requestCh chan *WorkItem
	workerCh  chan *WorkItem
	reqQueue  []*WorkItem
	closeOnce sync.Once
}

func NewSchedule() *ScheduleEngine {
	s := &ScheduleEngine{}
	s.requestCh = make(chan *WorkItem) // 负责接收任务
	s.workerCh = make(chan *WorkItem)  // 负责分配任务
	return s
}

// Schedule
/**
 * 调度的核心逻辑
 * 监听 requestCh，新的任务追加到 reqQueue 末尾;
 * 将 reqQueue 队首的任务塞进 workerCh 中;
 * requestCh 关闭且 reqQueue 排空后关闭 workerCh 并退出。
 */
func (s *ScheduleEngine) Schedule() {
	requestCh := s.requestCh
	for {
		var req *WorkItem
		var ch chan *WorkItem

		if len(s.reqQueue) > 0 {
			// 先只取不删，没有发送出去的任务不会丢失
			req = s.reqQueue[0]
			ch = s.workerCh
		} else if requestCh == nil {
			close(s.workerCh)
			return
		}

		select {
		case r, ok := <-requestCh:
			if !ok {
				requestCh = nil
				continue
			}
			s.reqQueue = append(s.reqQueue, r)
		case ch <- req:
			s.reqQueue[0] = nil
			s.reqQueue = s.reqQueue[1:]
		}
	}
}

func (s *ScheduleEngine) Push(items ...*WorkItem) {
	for _, item := range items {
		s.requestCh <- item
	}
}

func (s *ScheduleEngine) Close() {
	s.closeOnce.Do(func() {
		close(s.requestCh)
	})
}

func (s *ScheduleEngine) Pull() (*WorkItem, bool) {
	r, ok := <-s.workerCh
	return r, ok
}
