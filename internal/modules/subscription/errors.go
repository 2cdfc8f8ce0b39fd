package subscription

import "errors"

var (
	ErrSelfSubscribe     = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
	ErrAuthorNotFound    = errors.New("author not found")
)
