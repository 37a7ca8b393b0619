package service

import "slices"

// termLadder lists the quoted terms in months: 12 to 84 in steps of 6.
var termLadder = [...]int{12, 18, 24, 30, 36, 42, 48, 54, 60, 66, 72, 78, 84}

// TermLadder returns a copy of the quoted terms in ascending order.
func TermLadder() []int {
	return slices.Clone(termLadder[:])
}
