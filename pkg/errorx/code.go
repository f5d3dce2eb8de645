package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Lottery codes
	ActivityInactive   Code = 500001
	ActivityNotStarted Code = 500002
	ActivityEnded      Code = 500003
	TotalLimitReached  Code = 500004
	DailyLimitReached  Code = 500005
	InsufficientPoints Code = 500006
	InvalidPrizeTable  Code = 500007

	// Exchange codes
	OutOfStock Code = 600001
)
