package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CouponSweeper periodically deactivates expired coupons.
type CouponSweeper struct {
	coupons *CouponService
	cron    *cron.Cron
	timeout time.Duration
	logger  *zap.Logger
}

// NewCouponSweeper schedules the sweep on a standard cron spec or a
// descriptor such as "@hourly".
func NewCouponSweeper(coupons *CouponService, schedule string, timeout time.Duration, logger *zap.Logger) (*CouponSweeper, error) {
	s := &CouponSweeper{
		coupons: coupons,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		timeout: timeout,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Sweep runs a single pass.
func (s *CouponSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.coupons.DeactivateExpired(ctx)
	if err != nil {
		s.logger.Error("coupon sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("expired coupons deactivated", zap.Int64("count", n))
	}
}

func (s *CouponSweeper) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for a running sweep to finish.
func (s *CouponSweeper) Stop() {
	<-s.cron.Stop().Done()
}
