package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// OptionLetter maps a zero-based option index to its display letter ('A', 'B', ...).
func OptionLetter(index int) string {
	if index < 0 || index > 25 {
		return "?"
	}
	return string(rune('A' + index))
}

// LetterIndex maps an option letter (either case) back to its zero-based index.
// It returns -1 for anything that is not a single letter.
func LetterIndex(letter string) int {
	letter = strings.TrimSpace(letter)
	if len(letter) != 1 {
		return -1
	}
	c := strings.ToLower(letter)[0]
	if c < 'a' || c > 'z' {
		return -1
	}
	return int(c - 'a')
}

// Percent returns part/whole*100, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// ValidateStruct runs the `validate` struct tags and flattens the failures into one error.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var errMsgs []string
		for _, fe := range verrs {
			errMsgs = append(errMsgs, fmt.Sprintf(
				"Field: %s, Tag: %s, Param: %s", fe.Namespace(), fe.Tag(), fe.Param(),
			))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errMsgs, "; "))
	}
	return nil
}
