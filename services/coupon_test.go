package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mera-bestie/models"
	"mera-bestie/services"
)

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestCouponService_Save(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "u1", "u1@example.com", models.AccountOpen)
	f.addUser(t, "u2", "u2@example.com", models.AccountOpen)
	f.sender.failFor["u1@example.com"] = true

	before := time.Now()
	coupon, err := f.coupons().Save(ctx, services.SaveCouponInput{Code: "SAVE10", DiscountPercentage: 10})
	require.NoError(t, err)

	assert.True(t, coupon.IsActive)
	assert.Equal(t, models.DefaultCouponUsageLimit, coupon.UsageLimit)
	assert.WithinDuration(t, before.Add(30*24*time.Hour), coupon.ExpirationDate, time.Minute)

	// One recipient failing does not stop the others.
	sent := f.sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "u2@example.com", sent[0].To)
	assert.Equal(t, "New Coupon Available!", sent[0].Subject)

	_, err = f.coupons().Save(ctx, services.SaveCouponInput{Code: "SAVE10", DiscountPercentage: 20})
	requireKind(t, err, services.KindConflict)
}

func TestCouponService_SaveValidation(t *testing.T) {
	f := newFixture(t)
	inputs := map[string]services.SaveCouponInput{
		"missing code":     {DiscountPercentage: 10},
		"missing discount": {Code: "X"},
		"discount too big": {Code: "X", DiscountPercentage: 101},
		"negative":         {Code: "X", DiscountPercentage: -5},
		"negative usage":   {Code: "X", DiscountPercentage: 5, UsageLimit: intPtr(-1)},
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := f.coupons().Save(context.Background(), in)
			requireKind(t, err, services.KindValidation)
		})
	}
}

func TestCouponService_Verify(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.coupons()

	_, err := svc.Save(ctx, services.SaveCouponInput{Code: "LIVE", DiscountPercentage: 15})
	require.NoError(t, err)
	_, err = svc.Save(ctx, services.SaveCouponInput{
		Code: "OLD", DiscountPercentage: 15, ExpirationDate: timePtr(time.Now().Add(-time.Hour)),
	})
	require.NoError(t, err)
	_, err = svc.Save(ctx, services.SaveCouponInput{Code: "USEDUP", DiscountPercentage: 15, UsageLimit: intPtr(0)})
	require.NoError(t, err)

	discount, err := svc.Verify(ctx, "LIVE")
	require.NoError(t, err)
	assert.Equal(t, 15, discount)

	_, err = svc.Verify(ctx, "OLD")
	requireKind(t, err, services.KindValidation)
	_, err = svc.Verify(ctx, "USEDUP")
	requireKind(t, err, services.KindValidation)
	_, err = svc.Verify(ctx, "NOPE")
	requireKind(t, err, services.KindNotFound)
	_, err = svc.Verify(ctx, "")
	requireKind(t, err, services.KindValidation)
}

func TestCouponService_Redeem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.coupons()

	_, err := svc.Save(ctx, services.SaveCouponInput{Code: "TWICE", DiscountPercentage: 5, UsageLimit: intPtr(2)})
	require.NoError(t, err)

	coupon, err := svc.Redeem(ctx, "TWICE")
	require.NoError(t, err)
	assert.Equal(t, 1, coupon.UsageLimit)
	coupon, err = svc.Redeem(ctx, "TWICE")
	require.NoError(t, err)
	assert.Equal(t, 0, coupon.UsageLimit)

	_, err = svc.Redeem(ctx, "TWICE")
	requireKind(t, err, services.KindValidation)
	_, err = svc.Redeem(ctx, "GHOST")
	requireKind(t, err, services.KindNotFound)
}

func TestCouponService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "u1", "u1@example.com", models.AccountOpen)
	svc := f.coupons()

	_, err := svc.Save(ctx, services.SaveCouponInput{Code: "SAVE10", DiscountPercentage: 10})
	require.NoError(t, err)

	err = svc.Delete(ctx, "SAVE10", 20)
	requireKind(t, err, services.KindNotFound)
	discount, err := svc.Verify(ctx, "SAVE10")
	require.NoError(t, err, "coupon must survive a mismatched delete")
	assert.Equal(t, 10, discount)

	require.NoError(t, svc.Delete(ctx, "SAVE10", 10))
	_, err = svc.Verify(ctx, "SAVE10")
	requireKind(t, err, services.KindNotFound)

	sent := f.sender.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "Coupon Expired", sent[1].Subject)

	requireKind(t, svc.Delete(ctx, "", 10), services.KindValidation)
}

func TestCouponSweeper_DeactivatesExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.coupons()

	_, err := svc.Save(ctx, services.SaveCouponInput{Code: "LIVE", DiscountPercentage: 5})
	require.NoError(t, err)
	_, err = svc.Save(ctx, services.SaveCouponInput{
		Code: "OLD", DiscountPercentage: 5, ExpirationDate: timePtr(time.Now().Add(-time.Minute)),
	})
	require.NoError(t, err)

	sweeper, err := services.NewCouponSweeper(svc, "@hourly", time.Second, zap.NewNop())
	require.NoError(t, err)
	sweeper.Sweep()

	old, err := f.store.Coupons().FindByCode(ctx, "OLD")
	require.NoError(t, err)
	assert.False(t, old.IsActive)
	live, err := f.store.Coupons().FindByCode(ctx, "LIVE")
	require.NoError(t, err)
	assert.True(t, live.IsActive)

	n, err := svc.DeactivateExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = services.NewCouponSweeper(svc, "not a schedule", time.Second, zap.NewNop())
	assert.Error(t, err)
}
