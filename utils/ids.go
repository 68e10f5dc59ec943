package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const SellerIDPrefix = "MBSLR"

const trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IDs produces the externally visible identifiers. Only seller ids are
// checked for uniqueness by the caller before use; order ids and complaint
// numbers rely on unique indexes.
type IDs interface {
	UserID() string
	SellerID() string
	OrderID() string
	TrackingID() string
	ComplaintNumber() string
}

// RandomIDs draws every identifier from crypto/rand.
type RandomIDs struct{}

func (RandomIDs) UserID() string {
	b := make([]byte, 8)
	mustRead(b)
	return hex.EncodeToString(b)
}

func (RandomIDs) SellerID() string {
	return fmt.Sprintf("%s%d", SellerIDPrefix, randRange(10000, 99999))
}

func (RandomIDs) OrderID() string {
	return fmt.Sprintf("%d", randRange(100000, 999999))
}

func (RandomIDs) TrackingID() string {
	b := make([]byte, 12)
	for i := range b {
		b[i] = trackingAlphabet[randRange(0, int64(len(trackingAlphabet)-1))]
	}
	return string(b)
}

func (RandomIDs) ComplaintNumber() string {
	return fmt.Sprintf("%d", randRange(100000, 999999))
}

// randRange returns a uniform integer in [lo, hi].
func randRange(lo, hi int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(hi-lo+1))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return lo + n.Int64()
}

func mustRead(b []byte) {
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
}
