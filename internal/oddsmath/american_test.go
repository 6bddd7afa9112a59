package oddsmath

import (
	"math"
	"testing"
)

func TestAmericanToProbability(t *testing.T) {
	cases := []struct {
		odds int
		want float64
	}{
		{-150, 0.6},
		{150, 0.4},
		{-110, 110.0 / 210.0},
		{100, 0.5},
		{-100, 0.5},
		{0, 1.0}, // degraded positive branch, never a valid price
	}

	for _, tc := range cases {
		got := AmericanToProbability(tc.odds)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("AmericanToProbability(%d) = %f, want %f", tc.odds, got, tc.want)
		}
	}
}

func TestProbabilityToAmericanSentinel(t *testing.T) {
	for _, prob := range []float64{0, -0.5, 1, 1.5} {
		if got := ProbabilityToAmerican(prob); got != EvenMoneyOdds {
			t.Errorf("ProbabilityToAmerican(%f) = %d, want sentinel %d", prob, got, EvenMoneyOdds)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// probToAmerican(americanToProb(o)) must be within ±1 of o and never
	// inside the invalid open interval (-99, 99).
	for odds := -1000; odds <= 1000; odds++ {
		if !IsValidAmericanOdds(odds) {
			continue
		}
		back := ProbabilityToAmerican(AmericanToProbability(odds))
		if back > -100 && back < 100 {
			t.Fatalf("round trip of %d produced invalid odds %d", odds, back)
		}
		if diff := back - odds; diff < -1 || diff > 1 {
			// -100 and +100 encode the same probability; either is acceptable.
			if !(odds == -100 && back == 100 || odds == 100 && back == -100) {
				t.Fatalf("round trip of %d = %d, outside tolerance", odds, back)
			}
		}
	}
}

func TestDecimalConversionsAgree(t *testing.T) {
	cases := []struct {
		odds    int
		decimal float64
	}{
		{150, 2.5},
		{-150, 1.0 + 100.0/150.0},
		{100, 2.0},
		{-110, 1.0 + 100.0/110.0},
	}

	for _, tc := range cases {
		if got := AmericanToDecimal(tc.odds); math.Abs(got-tc.decimal) > 1e-9 {
			t.Errorf("AmericanToDecimal(%d) = %f, want %f", tc.odds, got, tc.decimal)
		}
		back := DecimalToAmerican(tc.decimal)
		if diff := back - tc.odds; diff < -1 || diff > 1 {
			if !(tc.odds == 100 && back == -100) {
				t.Errorf("DecimalToAmerican(%f) = %d, want %d ±1", tc.decimal, back, tc.odds)
			}
		}
	}

	if got := DecimalToAmerican(0); got != EvenMoneyOdds {
		t.Errorf("DecimalToAmerican(0) = %d, want sentinel", got)
	}
}

func TestIsValidAmericanOdds(t *testing.T) {
	valid := []int{100, -100, 150, -150, 10000}
	invalid := []int{0, 50, -50, 99, -99, 1}

	for _, o := range valid {
		if !IsValidAmericanOdds(o) {
			t.Errorf("expected %d to be valid", o)
		}
	}
	for _, o := range invalid {
		if IsValidAmericanOdds(o) {
			t.Errorf("expected %d to be invalid", o)
		}
	}
}

func TestAmericanToProfit(t *testing.T) {
	cases := []struct {
		odds int
		want float64
	}{
		{150, 1.5},
		{-200, 0.5},
		{0, 0},
		{100, 1.0},
		{-110, 100.0 / 110.0},
	}

	for _, tc := range cases {
		if got := AmericanToProfit(tc.odds); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("AmericanToProfit(%d) = %f, want %f", tc.odds, got, tc.want)
		}
	}
}
