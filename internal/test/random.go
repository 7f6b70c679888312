package test

import (
	"math/rand/v2"
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const nameLetters = "abcdefghijklmnopqrstuvwxyz"

// RandomCustomerName returns a capitalised pseudo-random name of minLen to maxLen letters.
func RandomCustomerName(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.IntN(maxLen-minLen+1)
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteByte(nameLetters[rand.IntN(len(nameLetters))])
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// RandomLines builds n order lines over productIDs with quantities in [1, maxQty].
func RandomLines(productIDs []string, n int, maxQty int64) []model.LineRequest {
	if maxQty <= 0 {
		maxQty = 1
	}
	lines := make([]model.LineRequest, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, model.LineRequest{
			ProductID: productIDs[rand.IntN(len(productIDs))],
			Quantity:  1 + rand.Int64N(maxQty),
		})
	}
	return lines
}
