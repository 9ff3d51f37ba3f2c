package utils

import (
	"strings"
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "₦0"},
		{500, "₦500"},
		{1500, "₦1,500"},
		{1234567, "₦1,234,567"},
		{250.5, "₦250.50"},
		{-300, "-₦300"},
		{999.999, "₦1,000"},
		{0.999, "₦1"},
		{99.994, "₦99.99"},
	}
	for _, tc := range cases {
		if got := FormatNaira(tc.amount); got != tc.want {
			t.Errorf("FormatNaira(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}

	if got := FormatCurrency(10, "GHS"); got != "GHS 10" {
		t.Errorf("FormatCurrency fallback = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 16, 7, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "Mar 5, 2024, 04:07 PM" {
		t.Fatalf("FormatDate = %q", got)
	}
}

func TestGenerateReference(t *testing.T) {
	ref := GenerateReference()
	if !strings.HasPrefix(ref, "REF-") {
		t.Fatalf("reference %q missing prefix", ref)
	}
	parts := strings.Split(ref, "-")
	if len(parts) != 3 {
		t.Fatalf("reference %q should have three segments", ref)
	}
	if len(parts[2]) != 9 {
		t.Fatalf("reference suffix %q should be nine characters", parts[2])
	}
	if ref == GenerateReference() {
		t.Fatalf("consecutive references should differ")
	}
}

func TestTransactionCategoryLabel(t *testing.T) {
	if got := TransactionCategoryLabel("electricity_purchase"); got != "Electricity Purchase" {
		t.Fatalf("known label = %q", got)
	}
	if got := TransactionCategoryLabel("bonus_payout"); got != "Bonus Payout" {
		t.Fatalf("fallback label = %q", got)
	}
}
