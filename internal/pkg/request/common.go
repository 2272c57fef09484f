package request

import "regexp"

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// ListParams holds the pagination query parameters shared by list endpoints.
type ListParams struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in the defaults for unset pagination values.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
}

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// NormalizeClock validates a 24-hour "HH:mm" string and returns it
// zero-padded ("9:05" -> "09:05") so values compare lexicographically
// in chronological order. Returns false if the input is malformed.
func NormalizeClock(s string) (string, bool) {
	if !clockPattern.MatchString(s) {
		return "", false
	}
	if len(s) == 4 {
		s = "0" + s
	}
	return s, true
}
