package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeAndNumber struct {
	code   string
	number string
}

func fullNumberOf(t *testing.T, code, number string) string {
	t.Helper()

	var n Number
	n.SetCountryCode(code)
	require.NoError(t, n.SetValue(number))
	return n.FullNumber()
}

func numberOnlyOf(t *testing.T, code, number string) string {
	t.Helper()

	var n Number
	n.SetCountryCode(code)
	require.NoError(t, n.SetValue(number))
	return n.NumberOnly()
}

func TestNew_CodeInsideAndOutsideNumber(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"60", "123456789"},
		{"+60", "123456789"},
	} {
		inline, err := New(tc.code + tc.number)
		require.NoError(t, err)
		separate, err := NewWithCountryCode(tc.number, tc.code)
		require.NoError(t, err)

		assert.Equal(t, inline.FullNumber(), separate.FullNumber(), "code=%q number=%q", tc.code, tc.number)
		assert.Equal(t, "+60123456789", separate.FullNumber())
	}
}

func TestFullNumber_IgnoresSeparators(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"60", "123456789"},
		{" 60 ", "123456789 "},
		{"60", "12 3456789"},
		{"6 0", "12 3456789\t"},
		{"+60", "123456789"},
		{"+ 6 0", "123456789"},
	} {
		assert.Equal(t, "+60123456789", fullNumberOf(t, tc.code, tc.number), "code=%q number=%q", tc.code, tc.number)
	}
}

func TestFullNumber_DomesticZero(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"+60", "123456789"},
		{"+60", "0123456789"},
		{"+60 ", "01 23456789 "},
		{"+6 0 ", "01 23456789 "},
		{"60", "0123456789"},
		{"60 ", " 0123456789 "},
		{"6 0 ", "0123456789 "},
	} {
		assert.Equal(t, "+60123456789", fullNumberOf(t, tc.code, tc.number), "code=%q number=%q", tc.code, tc.number)
	}
}

func TestFullNumber_SixtyCollision(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"+60", "623456789"},
		{"+60", "0623456789"},
		{"+6 0 ", "06 234-56789 "},
		{"60", "0623456789"},
		{"6 0 ", "6-23456 789 "},
		{"6 0 ", "06-23456789 "},
		{"6 0 ", "600623456789 "},
	} {
		assert.Equal(t, "+60623456789", fullNumberOf(t, tc.code, tc.number), "code=%q number=%q", tc.code, tc.number)
	}
}

func TestFullNumber_BlankCountryCode(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"", "60123456789"},
		{"", "+60123456789"},
		{"", "6012-3456789"},
		{"  ", "+60123456789"},
		{"  ", "+6012-3456789"},
	} {
		assert.Equal(t, "+60123456789", fullNumberOf(t, tc.code, tc.number), "code=%q number=%q", tc.code, tc.number)
	}
}

func TestFullNumber_NonDomesticCode(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"", "389777988881"},
		{"", "+389777988881"},
		{"389", "389777988881"},
		{"389", "+389777988881"},
		{"+389", "+389777988881"},
		{" +389 ", " +3897 779 88881"},
		{"  ", "+389777988881"},
		{"  ", "+3897779-88881"},
	} {
		assert.Equal(t, "+389777988881", fullNumberOf(t, tc.code, tc.number), "code=%q number=%q", tc.code, tc.number)
	}
}

func TestNumberOnly_StripsCodeAndZero(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"+60", "123456789"},
		{"+60", "0123456789"},
		{"+60 ", "01 23456789 "},
		{"+6 0 ", "01 23456789 "},
		{"60", "0123456789"},
		{"60 ", " 012-345 6789 "},
		{"6 0 ", " 0123456789 "},
		{"", " 60123456789 "},
		{"", " +600123456789 "},
		{"+60", "+600123456789"},
	} {
		assert.Equal(t, "123456789", numberOnlyOf(t, tc.code, tc.number), "code=%q number=%q", tc.code, tc.number)
	}
}

func TestNumberOnly_RepeatedSixty(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"", " +60623456789 "},
		{"", " +600623456789 "},
		{"", " +6060623456789 "},
		{"", "+6060623456789"},
		{"+60", "+6060623456789"},
		{"60", "600623456789"},
		{"60", "0623456789"},
		{"+60", "623456789"},
	} {
		assert.Equal(t, "623456789", numberOnlyOf(t, tc.code, tc.number), "code=%q number=%q", tc.code, tc.number)
	}
}

func TestNumber_InlineCode(t *testing.T) {
	n, err := New("60" + "123456789")
	require.NoError(t, err)

	code, ok := n.CountryCode()
	assert.True(t, ok)
	assert.Equal(t, "60", code)
	assert.Equal(t, "+60123456789", n.FullNumber())
	assert.Equal(t, "123456789", n.NumberOnly())
	assert.Equal(t, "60123456789", n.Raw())
}

func TestNumber_UnknownCodeKeepsRaw(t *testing.T) {
	// no table entry starts with "28" and the number is too short to be domestic
	n, err := New("28-123 4567")
	require.NoError(t, err)

	_, ok := n.CountryCode()
	assert.False(t, ok)
	assert.Equal(t, "281234567", n.FullNumber())
	assert.Equal(t, "281234567", n.NumberOnly())
}

func TestNumber_DomesticOnlyDetection(t *testing.T) {
	n, err := New("03-1234 5678")
	require.NoError(t, err)

	code, ok := n.CountryCode()
	assert.True(t, ok)
	assert.Equal(t, DomesticPrefixCode, code)
	assert.Equal(t, "+60312345678", n.FullNumber())
}

func TestNumber_ExplicitCodeTrustedVerbatim(t *testing.T) {
	n, err := NewWithCountryCode("777988881", "389")
	require.NoError(t, err)

	code, ok := n.CountryCode()
	assert.True(t, ok)
	assert.Equal(t, "389", code)
	assert.Equal(t, "777988881", n.NumberOnly())
	assert.Equal(t, "+389777988881", n.FullNumber())
}

func TestSetValue_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n", "+", "abc", "+-()"} {
		var n Number
		err := n.SetValue(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}

	_, err := New("   ")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "phone number cannot be empty")

	_, err = NewWithCountryCode("n/a", "60")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid phone number n/a")
}

func TestSetValue_FailureKeepsPreviousValue(t *testing.T) {
	n, err := New("60123456789")
	require.NoError(t, err)

	require.Error(t, n.SetValue("--"))
	assert.Equal(t, "+60123456789", n.FullNumber())
}

func TestSetCountryCode_BlankIsNoop(t *testing.T) {
	n, err := NewWithCountryCode("777988881", "389")
	require.NoError(t, err)

	n.SetCountryCode("   ")
	n.SetCountryCode("")
	n.SetCountryCode("+")

	code, _ := n.CountryCode()
	assert.Equal(t, "389", code)
}

func TestSetCountryCode_NoDigitsKeepsUnknownPrefixBare(t *testing.T) {
	n, err := NewWithCountryCode("28-123 4567", "+")
	require.NoError(t, err)

	_, ok := n.CountryCode()
	assert.False(t, ok)
	assert.Equal(t, "281234567", n.FullNumber())
}

func TestNumber_ReSettable(t *testing.T) {
	n, err := New("60123456789")
	require.NoError(t, err)
	assert.Equal(t, "+60123456789", n.FullNumber())

	require.NoError(t, n.SetValue("+44 20 7946 0018"))
	assert.Equal(t, "+442079460018", n.FullNumber())

	n.SetCountryCode("44")
	assert.Equal(t, "2079460018", n.NumberOnly())
}

func TestNumber_ZeroValue(t *testing.T) {
	var n Number

	_, ok := n.CountryCode()
	assert.False(t, ok)
	assert.Empty(t, n.FullNumber())
	assert.Empty(t, n.NumberOnly())

	n.SetCountryCode("60")
	assert.Empty(t, n.FullNumber())
}

func TestEqual(t *testing.T) {
	for _, tc := range []codeAndNumber{
		{"60", "0123456789"},
		{"60 ", " 012-345 6789 "},
		{"6 0 ", " 0123456789 "},
	} {
		phone1, err := New(tc.code + tc.number)
		require.NoError(t, err)
		phone2, err := NewWithCountryCode(tc.number, tc.code)
		require.NoError(t, err)
		phone3, err := NewWithCountryCode(tc.number, tc.code)
		require.NoError(t, err)
		phoneX, err := NewWithCountryCode(tc.number+"69", tc.code)
		require.NoError(t, err)

		assert.True(t, Equal(phone1, phone1))
		assert.True(t, Equal(phone1, phone2))
		assert.True(t, Equal(phone1, phone3))
		assert.True(t, phone2.Equal(phone3))
		assert.Equal(t, phone1.Key(), phone2.Key())

		assert.False(t, Equal(phone1, phoneX))
		assert.False(t, phone2.Equal(phoneX))
		assert.False(t, Equal(phoneX, phone3))
		assert.NotEqual(t, phone1.Key(), phoneX.Key())
	}
}

func TestEqual_Nil(t *testing.T) {
	var missing *Number
	present := &Number{}

	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(missing, nil))
	assert.True(t, missing.Equal(nil))
	assert.False(t, Equal(present, nil))
	assert.False(t, Equal(nil, present))
	assert.False(t, present.Equal(missing))
	assert.False(t, missing.Equal(present))
	assert.Empty(t, missing.Key())
}

func TestKey_DedupesInMap(t *testing.T) {
	inputs := []codeAndNumber{
		{"", "+60 12-345 6789"},
		{"60", "0123456789"},
		{"+60", "123456789"},
		{"", "600123456789"},
		{"", "+44 20 7946 0018"},
	}

	seen := make(map[string]*Number)
	for _, in := range inputs {
		n, err := NewWithCountryCode(in.number, in.code)
		require.NoError(t, err)
		seen[n.Key()] = n
	}

	assert.Len(t, seen, 2)
	assert.Contains(t, seen, "+60123456789")
	assert.Contains(t, seen, "+442079460018")
}
