package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"mera-bestie/metrics"
	"mera-bestie/models"
	"mera-bestie/utils"
)

type CouponService struct {
	coupons    CouponRepository
	users      UserRepository
	notifier   *Notifier
	defaultTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewCouponService(coupons CouponRepository, users UserRepository, notifier *Notifier, defaultTTL time.Duration, logger *zap.Logger) *CouponService {
	return &CouponService{
		coupons:    coupons,
		users:      users,
		notifier:   notifier,
		defaultTTL: defaultTTL,
		logger:     logger,
		now:        time.Now,
	}
}

type SaveCouponInput struct {
	Code               string     `json:"code"`
	DiscountPercentage int        `json:"discountPercentage"`
	ExpirationDate     *time.Time `json:"expirationDate"`
	UsageLimit         *int       `json:"usageLimit"`
}

func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.coupons.List(ctx)
	if err != nil {
		return nil, internalError("Error fetching coupons", err)
	}
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	return coupons, nil
}

// Save stores an active coupon and announces it to every user. The
// announcement completes before Save returns.
func (s *CouponService) Save(ctx context.Context, in SaveCouponInput) (*models.Coupon, error) {
	in.Code = strings.TrimSpace(in.Code)
	if in.Code == "" || in.DiscountPercentage == 0 {
		return nil, validationError("Coupon code and discount percentage are required.")
	}
	if in.DiscountPercentage < 1 || in.DiscountPercentage > 100 {
		return nil, validationError("Discount percentage must be between 1 and 100.")
	}

	now := s.now()
	coupon := &models.Coupon{
		Code:               in.Code,
		DiscountPercentage: in.DiscountPercentage,
		ExpirationDate:     now.Add(s.defaultTTL),
		UsageLimit:         models.DefaultCouponUsageLimit,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.ExpirationDate != nil {
		coupon.ExpirationDate = *in.ExpirationDate
	}
	if in.UsageLimit != nil {
		if *in.UsageLimit < 0 {
			return nil, validationError("Usage limit cannot be negative.")
		}
		coupon.UsageLimit = *in.UsageLimit
	}

	if err := s.coupons.Create(ctx, coupon); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, conflictError("Coupon code already exists.")
		}
		return nil, internalError("Error saving coupon", err)
	}

	s.broadcast(ctx, func(to string) utils.Message {
		return utils.CouponAvailable(to, coupon.Code, coupon.DiscountPercentage)
	})
	return coupon, nil
}

// Verify returns the discount of a coupon that can be applied now.
func (s *CouponService) Verify(ctx context.Context, code string) (int, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, validationError("Coupon code is required.")
	}
	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return 0, internalError("Error verifying coupon", err)
	}
	if coupon == nil {
		return 0, notFoundError("Invalid coupon code")
	}
	if !coupon.Redeemable(s.now()) {
		return 0, validationError("Coupon is expired or no longer available")
	}
	return coupon.DiscountPercentage, nil
}

// Redeem consumes one use of the coupon.
func (s *CouponService) Redeem(ctx context.Context, code string) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, validationError("Coupon code is required.")
	}
	coupon, err := s.coupons.Redeem(ctx, code, s.now())
	if err != nil {
		return nil, internalError("Error redeeming coupon", err)
	}
	if coupon != nil {
		return coupon, nil
	}

	// Tell an unknown code apart from an exhausted one.
	existing, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return nil, internalError("Error redeeming coupon", err)
	}
	if existing == nil {
		return nil, notFoundError("Invalid coupon code")
	}
	return nil, validationError("Coupon is expired or no longer available")
}

// Delete removes the coupon only when both code and percentage match, then
// announces the removal.
func (s *CouponService) Delete(ctx context.Context, code string, discountPercentage int) error {
	code = strings.TrimSpace(code)
	if code == "" || discountPercentage == 0 {
		return validationError("Coupon code and discount percentage are required.")
	}
	deleted, err := s.coupons.DeleteMatching(ctx, code, discountPercentage)
	if err != nil {
		return internalError("Error deleting coupon", err)
	}
	if !deleted {
		return notFoundError("Coupon not found")
	}

	s.broadcast(ctx, func(to string) utils.Message {
		return utils.CouponExpired(to, code, discountPercentage)
	})
	return nil
}

// DeactivateExpired switches off every active coupon whose expiration date
// has passed.
func (s *CouponService) DeactivateExpired(ctx context.Context) (int64, error) {
	n, err := s.coupons.DeactivateExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	metrics.CouponsDeactivated.Add(float64(n))
	return n, nil
}

func (s *CouponService) broadcast(ctx context.Context, build func(to string) utils.Message) {
	emails, err := s.users.Emails(ctx)
	if err != nil {
		s.logger.Error("failed to load broadcast recipients", zap.Error(err))
		return
	}
	s.notifier.Broadcast(ctx, emails, build)
}
