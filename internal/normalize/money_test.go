package normalize

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"$1,234.56", 123456},
		{"(123.45)", -12345},
		{"", 0},
		{"42", 4200},
		{"42.5", 4250},
		{"$0.00", 0},
		{"  $99.99  ", 9999},
		{"-50.25", -5025},
		{"($1,000.00)", -100000},
		{"N/A", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := ParseMoney(tt.in); got != tt.want {
			t.Errorf("ParseMoney(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseMoneyOK(t *testing.T) {
	if _, ok := ParseMoneyOK("$0.00"); !ok {
		t.Error("genuine zero should parse ok")
	}
	if _, ok := ParseMoneyOK(""); ok {
		t.Error("empty input should not be ok")
	}
	if _, ok := ParseMoneyOK("N/A"); ok {
		t.Error("garbage input should not be ok")
	}
}

func TestAmountsMatch(t *testing.T) {
	if !AmountsMatch(10000, 10001, 1) {
		t.Error("one cent apart should match at tolerance 1")
	}
	if AmountsMatch(10000, 10002, 1) {
		t.Error("two cents apart should not match at tolerance 1")
	}
	if !AmountsMatch(-500, -500, 0) {
		t.Error("equal negatives should match exactly")
	}
}

func TestCentsRoundTrip(t *testing.T) {
	if got := DollarsToCents(380.00); got != 38000 {
		t.Errorf("DollarsToCents(380.00) = %d", got)
	}
	if got := CentsToDollars(38000); got != 380.00 {
		t.Errorf("CentsToDollars(38000) = %v", got)
	}
}
