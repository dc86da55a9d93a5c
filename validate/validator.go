package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
)

// Result is the outcome of applying a validator to raw user input.
// Rejection is an expected result, not an error: validators are total
// and never fail on malformed input.
type Result struct {
	Accepted bool
	Value    any    // normalized value, set when Accepted
	Reason   string // human-readable rejection reason, set when rejected
}

// Validator classifies and normalizes one piece of raw input text.
type Validator func(input string) Result

func Accept(value any) Result {
	return Result{Accepted: true, Value: value}
}

func Reject(reason string) Result {
	return Result{Reason: reason}
}

// Shared instance for tag-based checks (email, e164 phone).
var tags = playground.New()

// Text validates free-form text with optional length bounds.
// Zero bounds disable the corresponding check.
func Text(minLength, maxLength int) Validator {
	return func(input string) Result {
		text := strings.TrimSpace(input)
		if text == "" {
			return Reject("please enter a non-empty text")
		}
		if minLength > 0 && len([]rune(text)) < minLength {
			return Reject(fmt.Sprintf("text must be at least %d characters long", minLength))
		}
		if maxLength > 0 && len([]rune(text)) > maxLength {
			return Reject(fmt.Sprintf("text must be at most %d characters long", maxLength))
		}
		return Accept(text)
	}
}

// Integer validates a whole number with optional inclusive bounds.
func Integer(minValue, maxValue *int64) Validator {
	return func(input string) Result {
		n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
		if err != nil {
			return Reject("please enter a whole number")
		}
		if minValue != nil && n < *minValue {
			return Reject(fmt.Sprintf("value must be at least %d", *minValue))
		}
		if maxValue != nil && n > *maxValue {
			return Reject(fmt.Sprintf("value must be at most %d", *maxValue))
		}
		return Accept(n)
	}
}

// Float validates a decimal number with optional inclusive bounds.
func Float(minValue, maxValue *float64) Validator {
	return func(input string) Result {
		text := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Reject("please enter a number")
		}
		if minValue != nil && f < *minValue {
			return Reject(fmt.Sprintf("value must be at least %g", *minValue))
		}
		if maxValue != nil && f > *maxValue {
			return Reject(fmt.Sprintf("value must be at most %g", *maxValue))
		}
		return Accept(f)
	}
}

// Number accepts integers or decimals, narrowing whole values to int64.
func Number() Validator {
	float := Float(nil, nil)
	return func(input string) Result {
		res := float(input)
		if !res.Accepted {
			return res
		}
		f := res.Value.(float64)
		if f == float64(int64(f)) {
			return Accept(int64(f))
		}
		return res
	}
}

// Supported date formats, keyed by their human-readable notation.
var dateLayouts = map[string]string{
	"dd.mm.yyyy": "02.01.2006",
	"mm.dd.yyyy": "01.02.2006",
	"yyyy.mm.dd": "2006.01.02",
	"dd.mm.yy":   "02.01.06",
	"mm.dd.yy":   "01.02.06",
	"yy.mm.dd":   "06.01.02",
}

const DefaultDateFormat = "dd.mm.yyyy"

// Date validates a date in the given format and normalizes it to ISO
// (yyyy-mm-dd). Unknown formats fall back to the default.
func Date(format string) Validator {
	layout, ok := dateLayouts[format]
	if !ok {
		format = DefaultDateFormat
		layout = dateLayouts[format]
	}
	return func(input string) Result {
		t, err := time.Parse(layout, strings.TrimSpace(input))
		if err != nil {
			return Reject(fmt.Sprintf("please enter a date in %s format", format))
		}
		return Accept(t.Format("2006-01-02"))
	}
}

// Email validates an e-mail address and normalizes it to lower case.
func Email() Validator {
	return func(input string) Result {
		email := strings.ToLower(strings.TrimSpace(input))
		if err := tags.Var(email, "email"); err != nil {
			return Reject("please enter a valid email address")
		}
		return Accept(email)
	}
}

// Phone validates a phone number and normalizes it to +digits form.
// 10 to 15 digits, anything else in the input is ignored.
func Phone() Validator {
	return func(input string) Result {
		digits := strings.Builder{}
		for _, ch := range input {
			if ch >= '0' && ch <= '9' {
				digits.WriteRune(ch)
			}
		}
		if digits.Len() < 10 || digits.Len() > 15 {
			return Reject("please enter a valid phone number in international format")
		}
		phone := "+" + digits.String()
		if err := tags.Var(phone, "e164"); err != nil {
			return Reject("please enter a valid phone number in international format")
		}
		return Accept(phone)
	}
}

// Choice validates that the input matches one of the allowed options,
// case-insensitively. The normalized value is the option as declared.
func Choice(options ...string) Validator {
	return func(input string) Result {
		text := strings.TrimSpace(input)
		for _, opt := range options {
			if strings.EqualFold(text, opt) {
				return Accept(opt)
			}
		}
		return Reject(fmt.Sprintf("please choose one of: %s", strings.Join(options, ", ")))
	}
}

// Regex validates the input against a pattern. The reason is shown to
// the participant on rejection; an empty reason gets a generic message.
func Regex(pattern *regexp.Regexp, reason string) Validator {
	if reason == "" {
		reason = fmt.Sprintf("input must match pattern %s", pattern.String())
	}
	return func(input string) Result {
		text := strings.TrimSpace(input)
		if !pattern.MatchString(text) {
			return Reject(reason)
		}
		return Accept(text)
	}
}
