package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/winnstorm/reserva-teco/internal/models"
	"github.com/winnstorm/reserva-teco/internal/repository"
)

// interruptedMessage is recorded on tasks found mid-flight after a restart
const interruptedMessage = "task interrupted by service restart"

// maxErrorLength caps how much of a collaborator error reaches the client
const maxErrorLength = 500

// QueueOptions configures the orchestrator
type QueueOptions struct {
	// Workers is the worker pool size. With the default of 1, tasks run
	// strictly in submission order.
	Workers int
	// Capacity bounds the in-memory queue. Submission fails when full.
	Capacity int
	// TaskTimeout bounds each collaborator invocation.
	TaskTimeout time.Duration
}

func (o *QueueOptions) applyDefaults() {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Capacity <= 0 {
		o.Capacity = 1024
	}
	if o.TaskTimeout <= 0 {
		o.TaskTimeout = 3 * time.Minute
	}
}

// QueueService accepts task submissions, serializes execution onto a small
// worker pool and drives each task through its lifecycle, persisting every
// transition. Construct one per process and stop it on shutdown; it holds
// no hidden global state, so tests may run several side by side.
type QueueService struct {
	repo         *repository.TaskRepository
	availability *AvailabilityService
	booking      *BookingService
	opts         QueueOptions

	tasks chan string // public task ids; payloads are reloaded from the store
	wg    sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewQueueService creates a new queue service
func NewQueueService(repo *repository.TaskRepository, availability *AvailabilityService, booking *BookingService, opts QueueOptions) *QueueService {
	opts.applyDefaults()
	return &QueueService{
		repo:         repo,
		availability: availability,
		booking:      booking,
		opts:         opts,
		tasks:        make(chan string, opts.Capacity),
	}
}

// Start recovers tasks orphaned by a previous process and launches the
// worker pool. Tasks still PROCESSING in the store were cut off mid-flight
// and are failed; tasks still PENDING are re-enqueued in submission order.
func (s *QueueService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("queue already started")
	}

	failed, err := s.repo.FailInterrupted(interruptedMessage)
	if err != nil {
		return fmt.Errorf("failed to recover interrupted tasks: %w", err)
	}
	if failed > 0 {
		log.Printf("Queue recovery: failed %d interrupted task(s)", failed)
	}

	pending, err := s.repo.ListPendingIDs()
	if err != nil {
		return fmt.Errorf("failed to recover pending tasks: %w", err)
	}
	for _, id := range pending {
		select {
		case s.tasks <- id:
		default:
			return fmt.Errorf("queue capacity %d too small for %d recovered tasks", s.opts.Capacity, len(pending))
		}
	}
	if len(pending) > 0 {
		log.Printf("Queue recovery: re-enqueued %d pending task(s)", len(pending))
	}

	for i := 0; i < s.opts.Workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
	s.started = true
	return nil
}

// Stop closes the intake and waits for in-flight tasks to drain
func (s *QueueService) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.tasks)
	s.mu.Unlock()

	s.wg.Wait()
}

// Submit durably creates a PENDING task and enqueues it for asynchronous
// execution. It never blocks on the actual work: once the record is written
// and the id handed back, the outcome is retrieved by polling Status.
func (s *QueueService) Submit(kind string, request interface{}) (string, error) {
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	task := &models.Task{
		TaskID:      uuid.NewString(),
		Kind:        kind,
		Status:      models.TaskStatusPending,
		RequestJSON: string(requestJSON),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(task); err != nil {
		return "", fmt.Errorf("failed to persist task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.failSubmission(task.TaskID, "queue is shutting down")
		return "", fmt.Errorf("queue is shutting down")
	}
	select {
	case s.tasks <- task.TaskID:
	default:
		s.failSubmission(task.TaskID, "queue is full")
		return "", fmt.Errorf("queue is full")
	}

	return task.TaskID, nil
}

// failSubmission terminates a task that was persisted but could not be
// enqueued, so no PENDING row is left orphaned
func (s *QueueService) failSubmission(taskID, reason string) {
	if err := s.repo.MarkFailed(taskID, reason); err != nil {
		log.Printf("Task %s: failed to record rejected submission: %v", taskID, err)
	}
}

// Status returns the client-facing view of a task. Result and error are
// included only once the task is terminal.
func (s *QueueService) Status(taskID string) (*models.TaskView, error) {
	task, err := s.repo.GetByID(taskID)
	if err != nil {
		return nil, err
	}

	return task.View(), nil
}

// worker is the long-lived consumer loop. A failing task never takes the
// worker down with it.
func (s *QueueService) worker(id int) {
	defer s.wg.Done()
	for taskID := range s.tasks {
		s.process(id, taskID)
	}
}

// process drives one task through PROCESSING to a terminal state
func (s *QueueService) process(workerID int, taskID string) {
	task, err := s.repo.GetByID(taskID)
	if err != nil {
		log.Printf("Worker %d: task %s not found in store: %v", workerID, taskID, err)
		return
	}
	if task.Status != models.TaskStatusPending {
		log.Printf("Worker %d: skipping task %s in state %s", workerID, taskID, task.Status)
		return
	}

	if err := s.repo.MarkProcessing(taskID); err != nil {
		// Losing a status update is preferable to losing the worker.
		log.Printf("Worker %d: task %s: failed to persist PROCESSING: %v", workerID, taskID, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.TaskTimeout)
	resultJSON, err := s.execute(ctx, task)
	cancel()

	if err != nil {
		msg := sanitizeError(err)
		log.Printf("Worker %d: task %s failed: %s", workerID, taskID, msg)
		if markErr := s.repo.MarkFailed(taskID, msg); markErr != nil {
			log.Printf("Worker %d: task %s: failed to persist FAILED: %v", workerID, taskID, markErr)
		}
		return
	}

	if markErr := s.repo.MarkCompleted(taskID, resultJSON); markErr != nil {
		log.Printf("Worker %d: task %s: failed to persist COMPLETED: %v", workerID, taskID, markErr)
		return
	}
	log.Printf("Worker %d: task %s completed", workerID, taskID)
}

// execute runs the collaborator call for the task's kind and serializes the
// produced result
func (s *QueueService) execute(ctx context.Context, task *models.Task) (string, error) {
	switch task.Kind {
	case models.TaskKindSearch:
		var req models.SearchRequest
		if err := json.Unmarshal([]byte(task.RequestJSON), &req); err != nil {
			return "", fmt.Errorf("corrupt search request: %w", err)
		}
		spaces, err := s.availability.Search(ctx, req)
		if err != nil {
			return "", err
		}
		return marshalResult(spaces)

	case models.TaskKindBooking:
		var req models.BookingRequest
		if err := json.Unmarshal([]byte(task.RequestJSON), &req); err != nil {
			return "", fmt.Errorf("corrupt booking request: %w", err)
		}
		outcome, err := s.booking.Reserve(ctx, req)
		if err != nil {
			return "", err
		}
		return marshalResult(outcome)

	default:
		return "", fmt.Errorf("unknown task kind: %s", task.Kind)
	}
}

func marshalResult(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}
	return string(data), nil
}

// sanitizeError renders a collaborator failure as a bounded, single-purpose
// message for the task record
func sanitizeError(err error) string {
	msg := err.Error()
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength]
	}
	return msg
}
