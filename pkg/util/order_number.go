package util

import (
	"fmt"
	"math/rand"
	"time"
)

// OrderNumberAttempts bounds how many candidates the caller should try
// before giving up on order number generation.
const OrderNumberAttempts = 10

// GenerateOrderNumber builds an order number candidate in the form
// ORD-YYMMDD-RRRR. Uniqueness is only guaranteed by the database index;
// callers retry with a fresh candidate on collision.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("060102"), rand.Intn(10000))
}
