package gst

import "strings"

// Type distinguishes the two GST charge models.
type Type string

const (
	// TypeIntra: buyer and seller in the same state -> CGST + SGST halves.
	TypeIntra Type = "intra"
	// TypeInter: different states -> full IGST.
	TypeInter Type = "inter"
)

// Classify compares buyer and seller region names by trimmed, lower-cased
// literal equality. There is no geographic knowledge here: a spelling or
// naming mismatch between the export and the seller profile misclassifies
// the order. Known limitation, kept simple on purpose.
func Classify(buyerRegion, sellerRegion string) Type {
	buyer := strings.ToLower(strings.TrimSpace(buyerRegion))
	seller := strings.ToLower(strings.TrimSpace(sellerRegion))
	if buyer == seller {
		return TypeIntra
	}
	return TypeInter
}
