package phone

import (
	"strconv"

	"github.com/nyaruka/phonenumbers"
)

// unknownRegion is what phonenumbers returns for codes it has no metadata for.
const unknownRegion = "ZZ"

// Region returns the main ISO 3166-1 region for a dialing code, e.g. "60" ->
// "MY". Codes with several regions ("1", "7") resolve to the main one.
func Region(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	cc, err := strconv.Atoi(code)
	if err != nil {
		return "", false
	}
	region := phonenumbers.GetRegionCodeForCountryCode(cc)
	if region == "" || region == unknownRegion {
		return "", false
	}
	return region, true
}

// Region is the region of n's effective country code.
func (n *Number) Region() (string, bool) {
	code, ok := n.CountryCode()
	if !ok {
		return "", false
	}
	return Region(code)
}
