// Package iban generates and validates French-format IBANs.
//
// A French IBAN is 27 characters: the country code "FR", two IBAN check
// digits, a 5-digit bank code, a 5-digit branch code, an 11-digit account
// number and a 2-digit RIB key. Both check sequences are derived with mod-97
// arithmetic, so the package needs no external data and performs no I/O.
package iban

import (
	"fmt"
	"math/rand"
	"strings"
)

// Length is the size of a French-format IBAN.
const Length = 27

const countryCode = "FR"

// Generate produces a syntactically valid French IBAN from the given random
// source. Uniqueness is not guaranteed here; callers persisting the result
// must check for collisions against their store and retry.
func Generate(r *rand.Rand) string {
	bankCode := int64(10000 + r.Intn(90000))
	branchCode := int64(10000 + r.Intn(90000))

	var account strings.Builder
	for i := 0; i < 11; i++ {
		fmt.Fprintf(&account, "%d", r.Intn(10))
	}
	accountNumber := account.String()

	ribKey := ribKey(bankCode, branchCode, accountNumber)
	bban := fmt.Sprintf("%05d%05d%s%02d", bankCode, branchCode, accountNumber, ribKey)

	return countryCode + fmt.Sprintf("%02d", checkDigits(countryCode, bban)) + bban
}

// Validate reports whether s is a well-formed French IBAN with correct check
// digits. It rejects strings that are not 27 characters, do not start with a
// two-letter country code, or contain non-digit BBAN characters.
func Validate(s string) bool {
	if len(s) != Length {
		return false
	}
	if !isUpperAlpha(s[0]) || !isUpperAlpha(s[1]) {
		return false
	}
	for i := 2; i < Length; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	expected := fmt.Sprintf("%02d", checkDigits(s[:2], s[4:]))
	return s[2:4] == expected
}

// ribKey computes the French national check key embedded in the BBAN:
// 97 - ((bank*89 + branch*15 + account*3) mod 97).
func ribKey(bankCode, branchCode int64, accountNumber string) int64 {
	var account int64
	for i := 0; i < len(accountNumber); i++ {
		account = account*10 + int64(accountNumber[i]-'0')
	}
	total := bankCode*89 + branchCode*15 + account*3
	return 97 - total%97
}

// checkDigits computes the two IBAN check digits for the given country code
// and BBAN. Country letters map to digits (A=10 .. Z=35) and the resulting
// number is reduced mod 97 digit by digit, so the full value is never
// materialized as a big integer.
func checkDigits(country, bban string) int {
	var numericCountry strings.Builder
	for i := 0; i < len(country); i++ {
		fmt.Fprintf(&numericCountry, "%d", int(country[i]-'A')+10)
	}

	checkString := bban + numericCountry.String() + "00"

	remainder := 0
	for i := 0; i < len(checkString); i++ {
		remainder = (remainder*10 + int(checkString[i]-'0')) % 97
	}
	return 98 - remainder
}

func isUpperAlpha(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
