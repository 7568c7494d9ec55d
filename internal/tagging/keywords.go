// Package tagging implements the heuristic transaction tagger: payroll,
// loan-payment, and overdraft-fee classification, plus the post-pass
// cadence detector and override application described in spec.md §4.1.
package tagging

import "regexp"

// compileWordList builds a single case-insensitive, whole-word-anchored
// alternation from a list of literal phrases. Phrases may contain spaces;
// \b anchors at the edges of the whole alternation group still bind to
// the first/last word of a multi-word phrase.
func compileWordList(phrases ...string) *regexp.Regexp {
	pattern := `(?i)\b(` + joinQuoted(phrases) + `)\b`
	return regexp.MustCompile(pattern)
}

func joinQuoted(phrases []string) string {
	out := ""
	for i, p := range phrases {
		if i > 0 {
			out += "|"
		}
		out += regexp.QuoteMeta(p)
	}
	return out
}

var (
	payrollKeywords = compileWordList(
		"ADP", "PAYROLL", "PAYCHEX", "PAYROLL CORP", "GUSTO", "TRINET",
		"INTUIT PAYROLL", "BAMBOOHR",
	)

	loanKeywords = compileWordList(
		"FINANCE", "LOAN", "CREDIT", "CAPITAL ONE", "DISCOVER", "CHASE CARD", "AMEX",
	)

	paymentKeyword  = compileWordList("PAYMENT")
	p2pExclusionRe  = compileWordList("ZELLE", "VENMO", "CASH APP", "PAYPAL")

	overdraftKeywords = compileWordList(
		"OVERDRAFT", "OD FEE", "RET ITEM FEE", "NSF FEE",
	)
)

const payrollCategoryIDPrefix = "21006"
const loanCategoryIDPrefix = "23005"
const overdraftCategoryID = "22001000"

func containsToken(path []string, token string) bool {
	for _, p := range path {
		if p == token {
			return true
		}
	}
	return false
}

func containsAny(path []string, tokens ...string) bool {
	for _, t := range tokens {
		if containsToken(path, t) {
			return true
		}
	}
	return false
}
