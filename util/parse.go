package util

import (
	"net/http"
	"strconv"
)

var MalformedIdHTTPErr = &HTTPError{
	Status:  http.StatusBadRequest,
	Message: "id malformed",
}

func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, MalformedIdHTTPErr
	}
	return id, nil
}

// ParsePage parses a 1-based page query parameter; absent or malformed
// values fall back to page 1 (out-of-range pages are clamped downstream).
func ParsePage(val string) int {
	page, err := strconv.Atoi(val)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
