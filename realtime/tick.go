package realtime

import "go.uber.org/zap"

// Tick runs the tasks queued before it started, up to MaxTasksPerTick, and
// returns how many ran.
func (l *Loop) Tick() int {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()
	return l.processTick()
}

// Drain ticks until nothing is queued, including tasks queued by tasks.
func (l *Loop) Drain() int {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()

	total := 0
	for {
		n := l.processTick()
		if n == 0 {
			return total
		}
		total += n
	}
}

func (l *Loop) processTick() int {
	tasks := l.collectTasks()
	if len(tasks) == 0 {
		return 0
	}
	l.logger.Debug("tick",
		zap.Uint64("first", tasks[0].seq),
		zap.Uint64("last", tasks[len(tasks)-1].seq),
	)
	for _, t := range tasks {
		l.execute(t)
	}
	return len(tasks)
}

// collectTasks takes the head of the batch, in sequence order.
func (l *Loop) collectTasks() []task {
	l.batchMu.Lock()
	defer l.batchMu.Unlock()

	n := len(l.batch)
	if l.cfg.MaxTasksPerTick > 0 && n > l.cfg.MaxTasksPerTick {
		n = l.cfg.MaxTasksPerTick
	}
	tasks := make([]task, n)
	copy(tasks, l.batch)
	l.batch = l.batch[n:]
	return tasks
}

// execute runs one task; a panic ends that task only.
func (l *Loop) execute(t task) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panicked", zap.Uint64("seq", t.seq), zap.Any("panic", r))
		}
	}()
	t.fn()
}
