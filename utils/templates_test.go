package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplaintConfirmation_EscapesMessage(t *testing.T) {
	msg := ComplaintConfirmation("a@b.com", "123456", "<script>alert(1)</script>")

	assert.Equal(t, "a@b.com", msg.To)
	assert.Equal(t, "Complaint Registration Confirmation", msg.Subject)
	assert.Contains(t, msg.Text, "Complaint ID: 123456")
	assert.Contains(t, msg.Text, "<script>alert(1)</script>")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestOrderConfirmation(t *testing.T) {
	msg := OrderConfirmation("a@b.com", "Asha", "654321", "ABCDEF123456")

	assert.Equal(t, "Order Confirmation", msg.Subject)
	assert.Contains(t, msg.Text, "Order ID: 654321")
	assert.Contains(t, msg.HTML, "Tracking ID: ABCDEF123456")
	assert.Contains(t, msg.HTML, "Hello Asha")
}

func TestCouponMessages(t *testing.T) {
	assert.Equal(t,
		"A new coupon SAVE10 is now available with 10% discount. Use it in your next purchase!",
		CouponAvailable("a@b.com", "SAVE10", 10).Text)
	assert.Equal(t,
		"The coupon SAVE10 with 10% discount has expired.",
		CouponExpired("a@b.com", "SAVE10", 10).Text)
}
