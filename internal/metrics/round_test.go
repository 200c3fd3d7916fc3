package metrics

import "testing"

func TestRoundHalfUpMovesHalvesTowardPositiveInfinity(t *testing.T) {
	t.Parallel()
	cases := map[float64]float64{
		2.5:   3,
		-2.5:  -2,
		-2.51: -3,
		360.5: 361,
		0.49:  0,
	}
	for in, want := range cases {
		if got := roundHalfUp(in); got != want {
			t.Fatalf("roundHalfUp(%v) = %v, want %v", in, got, want)
		}
	}
}
