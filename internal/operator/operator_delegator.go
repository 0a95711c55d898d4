package operator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

const (
	queueSize       = 1000
	dispatchTimeout = 10 * time.Second
)

var (
	ErrQueueFull = errors.New("operator queue is full")
	ErrStopped   = errors.New("operator is stopped")
)

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	source     WriterSource
	queue      chan ActionItem
	numWorkers int
	log        *logrus.Logger
	wg         sync.WaitGroup

	// mu guards sends on queue against Stop closing it.
	mu      sync.RWMutex
	stopped bool
}

func NewOperatorDelegator(source WriterSource, numWorkers int, log *logrus.Logger) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		source:     source,
		queue:      make(chan ActionItem, queueSize),
		numWorkers: numWorkers,
		log:        log,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.source, d.queue, d.log)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop closes the queue and waits for the workers to drain it.
func (d *OperatorDelegator) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

// Process validates the action, runs it on a worker and waits for the outcome. It gives
// up when ctx is done, whether the item is still queued or already running.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	if err := validate(action); err != nil {
		return err
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddToExistingTiming("operatorMs")()
	}

	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	if err := d.enqueue(ctx, item, true); err != nil {
		return err
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch enqueues the action without blocking and returns a channel that receives
// its outcome. The action runs under its own timeout, detached from any request.
func (d *OperatorDelegator) Dispatch(action actions.IAction) <-chan error {
	result := make(chan error, 1)
	if err := validate(action); err != nil {
		result <- err
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	if err := d.enqueue(ctx, item, false); err != nil {
		cancel()
		result <- err
		return result
	}

	go func() {
		defer cancel()
		select {
		case resp := <-respCh:
			result <- resp.err
		case <-ctx.Done():
			result <- ctx.Err()
		}
	}()
	return result
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem, block bool) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}

	if !block {
		select {
		case d.queue <- item:
			return nil
		default:
			return ErrQueueFull
		}
	}

	select {
	case d.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func validate(action actions.IAction) error {
	if v, ok := action.(actions.Validator); ok {
		return v.Validate()
	}
	return nil
}
