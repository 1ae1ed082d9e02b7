package queue

import (
	"context"
	"sync"

	"github.com/reusedev/sbi-hub/internal/modules/logs"
)

var RecordQueue = New(100)

// Run executes tasks until ctx is done, then drains what is already queued.
func (q *Queue) Run(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case task, ok := <-q.tasks:
				if !ok {
					return
				}
				wg.Add(1)
				go func() {
					defer wg.Done()
					if err := task.Execute(ctx); err != nil {
						logs.Logger.Err(err).Msg("queue task failed")
					}
				}()
			case <-ctx.Done():
				q.close()
				logs.Logger.Info().Msg("record queue closed")
				// keep reading until the closed channel is drained
				for task := range q.tasks {
					if err := task.Execute(ctx); err != nil {
						logs.Logger.Err(err).Msg("queue task failed")
					}
				}
				return
			}
		}
	}()
}

func InitRecordQueue(ctx context.Context, wg *sync.WaitGroup) {
	RecordQueue.Run(ctx, wg)
}
