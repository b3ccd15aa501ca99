package engine

import "testing"

// TestEstimateLiability pins the per-bucket clamping.
//
// WHY: Each bucket contributes only when positive. A net short-term loss
// must not offset ordinary income (and vice versa); otherwise a year with
// 1250 of staking income and a 1000 trading loss would be taxed on 250
// instead of 1250.
func TestEstimateLiability(t *testing.T) {
	eng := testEngine()

	cases := []struct {
		name                          string
		shortTerm, longTerm, ordinary string
		want                          string
	}{
		{"all buckets positive", "1000", "2000", "500", "660"},               // 1500*0.24 + 2000*0.15
		{"short loss does not offset ordinary", "-1000", "0", "1250", "300"}, // 1250*0.24
		{"long loss contributes nothing", "1000", "-5000", "0", "240"},
		{"all losses", "-1000", "-2000", "0", "0"},
		{"ordinary only", "0", "0", "1250", "300"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := eng.estimateLiability(dec(tc.shortTerm), dec(tc.longTerm), dec(tc.ordinary))
			assertDecimal(t, "liability", got, tc.want)
		})
	}
}
