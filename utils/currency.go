package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyINR formats an amount as Indian Rupees with lakh/crore
// digit grouping. Example: 150000.50 -> "₹1,50,000.50"
func FormatCurrencyINR(amount float64) string {
	integer := int64(math.Floor(amount))
	decimal := math.Round((amount-float64(integer))*100) / 100

	digits := fmt.Sprintf("%d", integer)

	// Indian grouping: the last three digits, then pairs.
	var groups []string
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		groups = append(groups, digits[len(digits)-3:])
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
	} else {
		groups = []string{digits}
	}

	formatted := strings.Join(groups, ",")
	if decimal > 0 {
		return fmt.Sprintf("₹%s.%02.0f", formatted, decimal*100)
	}
	return fmt.Sprintf("₹%s", formatted)
}
