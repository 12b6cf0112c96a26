package safe_close

import (
	"sync"
)

// SafeClose 协调多个后台任务的关闭
// 每个 Attach 的任务收到关闭信号后退出，WaitClosed 等待全部完成
type SafeClose struct {
	wg       sync.WaitGroup
	once     sync.Once
	closeCh  chan struct{}
	mu       sync.Mutex
	closeErr error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeCh: make(chan struct{}),
	}
}

// Attach 启动一个受管理的任务，任务结束时必须调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeCh)
}

// SendCloseSignal broadcasts the close signal; only the first call and its error count
// SendCloseSignal 广播关闭信号，只有第一次调用生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.closeErr = err
		s.mu.Unlock()
		close(s.closeCh)
	})
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeCh
}

// WaitClosed 等待所有任务结束，返回触发关闭时携带的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}
