package models

import "strings"

// ProductKey joins ad rows with their user-entered economics. It is a pure
// function of (optionID, productName): same pair, same key.
type ProductKey string

// keySep is the ASCII unit separator. Spreadsheet editors never emit it, so it
// cannot collide with field content; the loader rejects any cell carrying it.
const keySep = "\x1f"

func MakeProductKey(optionID, productName string) ProductKey {
	return ProductKey(optionID + keySep + productName)
}

// ContainsKeySeparator reports whether s carries the reserved separator byte.
func ContainsKeySeparator(s string) bool {
	return strings.Contains(s, keySep)
}
