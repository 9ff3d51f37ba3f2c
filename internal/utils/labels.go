package utils

import "strings"

var categoryLabels = map[string]string{
	"funding":              "Wallet Funding",
	"data_purchase":        "Data Purchase",
	"airtime_purchase":     "Airtime Purchase",
	"electricity_purchase": "Electricity Purchase",
	"cable_purchase":       "Cable Subscription",
	"refund":               "Refund",
	"withdrawal":           "Withdrawal",
	"referral_reward":      "Referral Reward",
}

// TransactionCategoryLabel maps a backend transaction category to its display
// label. Unknown categories fall back to title-cased words.
func TransactionCategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	words := strings.Split(strings.ReplaceAll(category, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
