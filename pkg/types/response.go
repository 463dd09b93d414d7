package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// MessageResponse pairs a human confirmation with the affected resource.
type MessageResponse struct {
	Message string `json:"message"`
	Item    any    `json:"item,omitempty"`
}

// PageMeta describes an offset page in admin listings.
type PageMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// PagedList is the admin list payload.
type PagedList[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// CursorList is the storefront list payload for cursor pagination.
type CursorList[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}
