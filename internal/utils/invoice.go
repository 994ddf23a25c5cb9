package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber returns the customer-facing order reference quoted
// during WhatsApp confirmation, e.g. SC-20250114-103000-123-4567.
func GenerateOrderNumber() string {
	return generateOrderNumberAt(time.Now().UTC())
}

func generateOrderNumberAt(now time.Time) string {
	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("SC-%s-%03d-%04d", datePart, millis, n.Int64())
}
