package parse

import "testing"

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "1234", 1234},
		{"plain float", "12.34", 12.34},
		{"currency with commas", "$1,234", 1234},
		{"percentage", "12.3%", 12.3},
		{"negative", "-500", -500},
		{"accounting style keeps minus only", "(500)", 500},
		{"empty string", "", 0},
		{"dash placeholder", "-", 0},
		{"not available", "N/A", 0},
		{"pure text", "pending", 0},
		{"embedded spaces", "1 234.5", 1234.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.input); got != tt.want {
				t.Errorf("Number(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumberIdempotent(t *testing.T) {
	// Already-clean values must survive a second pass unchanged.
	for _, s := range []string{"42", "3.14", "-7.5", "0"} {
		first := Number(s)
		second := Number(s)
		if first != second {
			t.Errorf("Number(%q) not stable: %v then %v", s, first, second)
		}
	}
}

func TestTransactionValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"parenthesized currency", "($1,234.50)", -1234.50},
		{"plain currency", "$500", 500},
		{"explicit minus", "-1,000", -1000},
		{"bare number", "250000", 250000},
		{"empty", "", 0},
		{"dash only", "-", 0},
		{"garbage", "n/a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransactionValue(tt.input); got != tt.want {
				t.Errorf("TransactionValue(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
