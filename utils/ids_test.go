package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomIDs_Formats(t *testing.T) {
	ids := RandomIDs{}
	formats := []struct {
		name    string
		gen     func() string
		pattern string
	}{
		{"user id", ids.UserID, `^[0-9a-f]{16}$`},
		{"seller id", ids.SellerID, `^MBSLR[1-9]\d{4}$`},
		{"order id", ids.OrderID, `^[1-9]\d{5}$`},
		{"tracking id", ids.TrackingID, `^[A-Z0-9]{12}$`},
		{"complaint number", ids.ComplaintNumber, `^[1-9]\d{5}$`},
	}
	for _, f := range formats {
		t.Run(f.name, func(t *testing.T) {
			re := regexp.MustCompile(f.pattern)
			for i := 0; i < 200; i++ {
				id := f.gen()
				assert.Regexp(t, re, id)
			}
		})
	}
}

func TestRandomIDs_UserIDsDiffer(t *testing.T) {
	ids := RandomIDs{}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := ids.UserID()
		assert.False(t, seen[id], "duplicate user id %s", id)
		seen[id] = true
	}
}
