package video

import "testing"

func TestParsePartIdentifier(t *testing.T) {
	cases := []struct {
		in      string
		want    PartIdentifier
		matched bool
	}{
		{"1st Half", PartFirstHalf, true},
		{"1 st half", PartFirstHalf, true},
		{"2nd Half", PartSecondHalf, true},
		{"Pre-Match", PartPreMatch, true},
		{"pre match", PartPreMatch, true},
		{"Extra-Time/Penalties", PartExtraTime, true},
		{"Trophy Ceremony", PartTrophyCeremony, true},
		{"Post-Match", PartPostMatch, true},
		{"Full Match", PartDefault, false},
		{"", PartDefault, false},
	}

	for _, tc := range cases {
		got, matched := ParsePartIdentifier(tc.in)
		if got != tc.want || matched != tc.matched {
			t.Fatalf("ParsePartIdentifier(%q) = %v, %v; want %v, %v", tc.in, got, matched, tc.want, tc.matched)
		}
	}
}

func TestPartIdentifier_PlaybackOrder(t *testing.T) {
	if !(PartPreMatch < PartFirstHalf && PartFirstHalf < PartSecondHalf && PartSecondHalf < PartExtraTime) {
		t.Fatal("part constants must sort in playback order")
	}
	if PartDefault >= PartPreMatch {
		t.Fatal("unlabeled parts must sort outside the playback sequence")
	}
	if PartFirstHalf.String() != "1st Half" {
		t.Fatalf("unexpected label %q", PartFirstHalf.String())
	}
}
