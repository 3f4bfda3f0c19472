package xworker

// Stats Pool 运行状态快照。
type Stats struct {
	ID    string
	Name  string
	State State

	// Workers worker 总数，创建后不变
	Workers int
	// Available 当前可接收任务的名额，0 <= Available <= Workers
	Available int
	// Queued 已接收、尚未分派的任务数
	Queued int
	// Active 正在执行的任务数
	Active int

	Accepted  uint64
	Rejected  uint64
	Completed uint64
	Panicked  uint64
	// Abandoned 因关闭而未执行的已接收任务
	Abandoned uint64
}

// Stats 返回当前状态快照。
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	s := Stats{
		ID:        p.id,
		Name:      p.name,
		State:     p.state,
		Workers:   p.total,
		Available: p.available,
		Queued:    p.queue.len(),
		Active:    p.active,
	}
	p.mu.Unlock()

	s.Accepted = p.accepted.Load()
	s.Rejected = p.rejected.Load()
	s.Completed = p.completed.Load()
	s.Panicked = p.panicked.Load()
	s.Abandoned = p.abandoned.Load()
	return s
}
