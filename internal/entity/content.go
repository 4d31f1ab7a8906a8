package entity

import "unicode/utf8"

const (
	MinContentLength = 5
	MaxContentLength = 240
)

// Content is the validated body text of a notification.
type Content struct {
	value string
}

// NewContent checks the length in characters (runes), not bytes.
func NewContent(text string) (Content, error) {
	length := utf8.RuneCountInString(text)
	if length < MinContentLength || length > MaxContentLength {
		return Content{}, ErrInvalidContentLength
	}
	return Content{value: text}, nil
}

func (c Content) Value() string {
	return c.value
}
