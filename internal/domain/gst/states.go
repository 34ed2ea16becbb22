package gst

import "strings"

// GST state codes (first two digits of a GSTIN). Used to backfill the
// seller profile when the caller supplies only the state name.
var stateCodes = map[string]string{
	"andhra pradesh":    "37",
	"arunachal pradesh": "12",
	"assam":             "18",
	"bihar":             "10",
	"chhattisgarh":      "22",
	"delhi":             "07",
	"goa":               "30",
	"gujarat":           "24",
	"haryana":           "06",
	"himachal pradesh":  "02",
	"jharkhand":         "20",
	"karnataka":         "29",
	"kerala":            "32",
	"madhya pradesh":    "23",
	"maharashtra":       "27",
	"manipur":           "14",
	"meghalaya":         "17",
	"mizoram":           "15",
	"nagaland":          "13",
	"odisha":            "21",
	"punjab":            "03",
	"rajasthan":         "08",
	"sikkim":            "11",
	"tamil nadu":        "33",
	"telangana":         "36",
	"tripura":           "16",
	"uttar pradesh":     "09",
	"uttarakhand":       "05",
	"west bengal":       "19",
}

// StateCode returns the GST state code for a state display name, or "" when
// the name is unknown. Lookup is case- and whitespace-insensitive.
func StateCode(name string) string {
	return stateCodes[strings.ToLower(strings.TrimSpace(name))]
}
