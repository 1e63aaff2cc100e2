// Package async provides utilities for parallel task execution.
//
// The helpers here are used to fan out independent provisioning work, such
// as creating one subnet per availability zone, while keeping failure
// reporting deterministic.
package async

import (
	"context"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes all tasks concurrently and waits for every one to
// finish. If any task fails, the first error received is returned, wrapped
// with the task name.
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		name string
		err  error
	}

	resultChan := make(chan result, len(tasks))

	for _, task := range tasks {
		go func() {
			resultChan <- result{name: task.Name, err: task.Func(ctx)}
		}()
	}

	var firstError error
	for range len(tasks) {
		res := <-resultChan
		if res.err != nil && firstError == nil {
			firstError = fmt.Errorf("failed to provision %s: %w", res.name, res.err)
		}
	}

	return firstError
}
