package validate

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextValidator(t *testing.T) {
	v := Text(2, 5)

	assert.False(t, v("").Accepted)
	assert.False(t, v("   ").Accepted)
	assert.False(t, v("a").Accepted)
	assert.False(t, v("abcdef").Accepted)

	res := v("  Alice")
	require.True(t, res.Accepted)
	assert.Equal(t, "Alice", res.Value, "accepted text is trimmed")
}

func TestIntegerValidator(t *testing.T) {
	min, max := int64(18), int64(120)
	v := Integer(&min, &max)

	assert.False(t, v("thirty").Accepted)
	assert.False(t, v("17").Accepted)
	assert.False(t, v("121").Accepted)
	assert.False(t, v("30.5").Accepted)

	res := v(" 30 ")
	require.True(t, res.Accepted)
	assert.Equal(t, int64(30), res.Value)
}

func TestFloatValidator(t *testing.T) {
	v := Float(nil, nil)

	res := v("3,14")
	require.True(t, res.Accepted, "comma decimal separator is tolerated")
	assert.Equal(t, 3.14, res.Value)

	assert.False(t, v("pi").Accepted)
}

func TestNumberValidatorNarrowsWholeValues(t *testing.T) {
	v := Number()

	res := v("30")
	require.True(t, res.Accepted)
	assert.Equal(t, int64(30), res.Value)

	res = v("30.5")
	require.True(t, res.Accepted)
	assert.Equal(t, 30.5, res.Value)

	assert.False(t, v("thirty").Accepted)
}

func TestDateValidatorFormats(t *testing.T) {
	cases := []struct {
		format string
		input  string
	}{
		{"dd.mm.yyyy", "31.12.1999"},
		{"mm.dd.yyyy", "12.31.1999"},
		{"yyyy.mm.dd", "1999.12.31"},
		{"dd.mm.yy", "31.12.99"},
		{"mm.dd.yy", "12.31.99"},
		{"yy.mm.dd", "99.12.31"},
	}
	for _, tc := range cases {
		res := Date(tc.format)(tc.input)
		require.True(t, res.Accepted, tc.format)
		assert.Equal(t, "1999-12-31", res.Value, tc.format)
	}
}

func TestDateValidatorRejects(t *testing.T) {
	v := Date("dd.mm.yyyy")

	assert.False(t, v("31.13.1999").Accepted)
	assert.False(t, v("1999-12-31").Accepted)
	assert.False(t, v("tomorrow").Accepted)
}

func TestEmailValidator(t *testing.T) {
	v := Email()

	res := v(" Alice@Example.COM ")
	require.True(t, res.Accepted)
	assert.Equal(t, "alice@example.com", res.Value)

	assert.False(t, v("not-an-email").Accepted)
	assert.False(t, v("@example.com").Accepted)
}

func TestPhoneValidator(t *testing.T) {
	v := Phone()

	res := v("+380 (67) 123-45-67")
	require.True(t, res.Accepted)
	assert.Equal(t, "+380671234567", res.Value)

	assert.False(t, v("call me").Accepted)
	assert.False(t, v("123").Accepted)
}

func TestChoiceValidator(t *testing.T) {
	v := Choice("yes", "no")

	res := v(" YES ")
	require.True(t, res.Accepted)
	assert.Equal(t, "yes", res.Value, "normalized to the declared option")

	rej := v("maybe")
	assert.False(t, rej.Accepted)
	assert.Contains(t, rej.Reason, "yes, no")
}

func TestRegexValidator(t *testing.T) {
	v := Regex(regexp.MustCompile(`^[A-Z]{2}\d{4}$`), "enter a code like AB1234")

	assert.True(t, v("AB1234").Accepted)

	rej := v("nope")
	assert.False(t, rej.Accepted)
	assert.Equal(t, "enter a code like AB1234", rej.Reason)
}

// Validators are total: arbitrary garbage input must reject, never panic.
func TestValidatorsAreTotal(t *testing.T) {
	inputs := []string{"", "   ", "\x00\xff", "𝔘𝔫𝔦𝔠𝔬𝔡𝔢", "999999999999999999999999999"}
	validators := []Validator{
		Text(1, 5), Integer(nil, nil), Float(nil, nil), Number(),
		Date("dd.mm.yyyy"), Email(), Phone(), Choice("a", "b"),
	}
	for _, v := range validators {
		for _, input := range inputs {
			res := v(input)
			if res.Accepted {
				continue
			}
			assert.NotEmpty(t, res.Reason)
		}
	}
}

func TestFromDefinition(t *testing.T) {
	min := 1.0
	cases := []struct {
		name string
		def  Definition
	}{
		{"text", Definition{Type: "text", MinLength: 1}},
		{"integer", Definition{Type: "integer", MinValue: &min}},
		{"float", Definition{Type: "float"}},
		{"number", Definition{Type: "number"}},
		{"date", Definition{Type: "date", Format: "yyyy.mm.dd"}},
		{"email", Definition{Type: "email"}},
		{"phone", Definition{Type: "phone"}},
		{"choice", Definition{Type: "choice", Options: []string{"a"}}},
		{"regex", Definition{Type: "regex", Pattern: `^\d+$`}},
	}
	for _, tc := range cases {
		v, err := FromDefinition(tc.def)
		require.NoError(t, err, tc.name)
		require.NotNil(t, v, tc.name)
	}
}

func TestFromDefinitionErrors(t *testing.T) {
	_, err := FromDefinition(Definition{Type: "teleport"})
	assert.Error(t, err)

	_, err = FromDefinition(Definition{Type: "choice"})
	assert.Error(t, err, "choice without options")

	_, err = FromDefinition(Definition{Type: "regex"})
	assert.Error(t, err, "regex without pattern")

	_, err = FromDefinition(Definition{Type: "regex", Pattern: "("})
	assert.Error(t, err, "regex with a broken pattern")

	_, err = FromDefinition(Definition{Type: "date", Format: "stardate"})
	assert.Error(t, err)

	frac := 1.5
	_, err = FromDefinition(Definition{Type: "integer", MinValue: &frac})
	assert.Error(t, err, "fractional bound must not silently truncate")
	_, err = FromDefinition(Definition{Type: "integer", MaxValue: &frac})
	assert.Error(t, err)
}

func TestIsValidName(t *testing.T) {
	valid := []string{"name", "likes_pizza", "_private", "step2"}
	for _, s := range valid {
		assert.True(t, IsValidName(s), s)
	}

	invalid := []string{"", "Name", "2step", "has space", "has-dash", "func", "type"}
	for _, s := range invalid {
		assert.False(t, IsValidName(s), s)
	}
}
