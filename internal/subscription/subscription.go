// Package subscription decides which users hold a paid plan and how large
// their uploads may be.
package subscription

import "context"

// Size limits per plan, in bytes.
const (
	FreeSizeLimit = 20 << 20
	ProSizeLimit  = 100 << 20
)

// Service answers plan questions for a user. Premium status is checked again
// before every gated action rather than cached in the session, so an expired
// plan takes effect immediately.
type Service interface {
	IsPremium(ctx context.Context, userID int64) (bool, error)
	SizeLimit(ctx context.Context, userID int64) (int64, error)
}

// SizeLimitFor maps premium status to the upload ceiling.
func SizeLimitFor(premium bool) int64 {
	if premium {
		return ProSizeLimit
	}
	return FreeSizeLimit
}
