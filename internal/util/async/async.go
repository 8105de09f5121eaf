package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunBounded executes tasks with at most limit running at once and waits
// for all of them. A limit below one runs tasks sequentially. Tasks that
// have not started when ctx is cancelled are skipped and report the
// context error. The returned error joins every failure in task order.
func RunBounded(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	errs := make([]error, len(tasks))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			errs[i] = fmt.Errorf("%s: %w", task.Name, err)
			continue
		}
		select {
		case <-ctx.Done():
			errs[i] = fmt.Errorf("%s: %w", task.Name, ctx.Err())
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := task.Func(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
			}
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}
