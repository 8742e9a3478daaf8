package subscription

import "context"

// Static grants premium to a fixed allowlist of user IDs, typically loaded
// from the PRO_USERS environment variable. It backs deployments that have no
// database.
type Static struct {
	pro map[int64]bool
}

func NewStatic(userIDs []int64) *Static {
	pro := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		pro[id] = true
	}
	return &Static{pro: pro}
}

func (s *Static) IsPremium(_ context.Context, userID int64) (bool, error) {
	return s.pro[userID], nil
}

func (s *Static) SizeLimit(ctx context.Context, userID int64) (int64, error) {
	premium, err := s.IsPremium(ctx, userID)
	if err != nil {
		return 0, err
	}
	return SizeLimitFor(premium), nil
}
