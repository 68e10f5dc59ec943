package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mera-bestie/metrics"
	"mera-bestie/utils"
)

// Notifier dispatches email on behalf of the services. Every send runs under
// its own timeout so a slow relay cannot hold a request or a background
// goroutine indefinitely.
type Notifier struct {
	sender  utils.Sender
	timeout time.Duration
	workers int
	logger  *zap.Logger

	wg sync.WaitGroup
}

func NewNotifier(sender utils.Sender, timeout time.Duration, workers int, logger *zap.Logger) *Notifier {
	if workers <= 0 {
		workers = 1
	}
	return &Notifier{
		sender:  sender,
		timeout: timeout,
		workers: workers,
		logger:  logger,
	}
}

// Send delivers msg and returns the delivery error.
func (n *Notifier) Send(ctx context.Context, msg utils.Message) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.sender.Send(ctx, msg); err != nil {
		metrics.EmailsSent.WithLabelValues("failed").Inc()
		return err
	}
	metrics.EmailsSent.WithLabelValues("sent").Inc()
	return nil
}

// SendAsync delivers msg in the background. Failures are logged only.
func (n *Notifier) SendAsync(msg utils.Message) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.Send(context.Background(), msg); err != nil {
			n.logger.Warn("background email failed",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err))
		}
	}()
}

// Broadcast sends one message per recipient and waits for all of them.
// Individual failures are logged and do not stop the remaining sends.
func (n *Notifier) Broadcast(ctx context.Context, recipients []string, build func(to string) utils.Message) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.workers)

	for _, to := range recipients {
		msg := build(to)
		g.Go(func() error {
			if err := n.Send(gctx, msg); err != nil {
				n.logger.Warn("broadcast email failed", zap.String("to", msg.To), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
	n.logger.Info("broadcast email finished", zap.Int("recipients", len(recipients)))
}

// Wait blocks until every SendAsync call has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
