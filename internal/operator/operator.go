package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// WriterSource begins units of work. *storage.Storage satisfies it.
type WriterSource interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	source WriterSource
	queue  chan ActionItem
	log    *logrus.Logger
}

func NewOperator(source WriterSource, queue chan ActionItem, log *logrus.Logger) *Operator {
	return &Operator{
		source: source,
		queue:  queue,
		log:    log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

// processItem performs the action inside one unit of work, committing only when it
// succeeds.
func (o *Operator) processItem(item ActionItem) error {
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.source.Write(item.ctx)
	if err != nil {
		return err
	}

	if err = item.action.Perform(item.ctx, writer); err != nil {
		if rbErr := writer.Rollback(context.WithoutCancel(item.ctx)); rbErr != nil {
			o.log.WithError(rbErr).Errorf("Operator.%T.Rollback", item.action)
		}
		return err
	}

	if err = writer.Commit(item.ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
