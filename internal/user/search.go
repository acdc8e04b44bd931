package user

import (
	"context"
	"iter"

	"friendgraph/internal/common"
)

// SearchAll walks every page of a search lazily. Iteration stops at the first
// error, which is yielded with a zero UserSummary. Each call to the returned
// sequence starts again from the first page.
func SearchAll(ctx context.Context, svc FriendService, query string, pageSize int) iter.Seq2[UserSummary, error] {
	if pageSize <= 0 {
		pageSize = common.DefaultPageSize
	}
	return func(yield func(UserSummary, error) bool) {
		for n := 1; ; n++ {
			page, err := svc.SearchUsers(ctx, query, common.PageRequest{Number: n, Size: pageSize})
			if err != nil {
				yield(UserSummary{}, err)
				return
			}
			for _, u := range page.Results {
				if !yield(u, nil) {
					return
				}
			}
			if !page.HasMore {
				return
			}
		}
	}
}
