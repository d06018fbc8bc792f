package services

import "github.com/hibiken/asynq"

// Enqueuer adalah kontrak minimal ke task queue. Dipenuhi oleh
// *asynq.Client; di test dipenuhi oleh fake in-memory. Client dibuat sekali
// di main dengan lifecycle eksplisit (Close saat shutdown) dan di-inject
// ke service, bukan dipegang sebagai global.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
