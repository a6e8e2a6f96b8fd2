package video

import "testing"

func TestParseResolution(t *testing.T) {
	cases := []struct {
		in      string
		want    Resolution
		matched bool
	}{
		{"1080p", Resolution1080p, true},
		{"Sky Sports 1080i", Resolution1080i, true},
		{"720p 50fps", Resolution720p, true},
		{"576p", Resolution576p, true},
		{"SD feed", ResolutionSD, true},
		{"4K HDR", Resolution4K, true},
		{"potato quality", ResolutionUnknown, false},
		{"", ResolutionUnknown, false},
	}

	for _, tc := range cases {
		got, matched := ParseResolution(tc.in)
		if got != tc.want || matched != tc.matched {
			t.Fatalf("ParseResolution(%q) = %v, %v; want %v, %v", tc.in, got, matched, tc.want, tc.matched)
		}
	}
}

func TestResolution_Ranking(t *testing.T) {
	if !(ResolutionUnknown < ResolutionSD && ResolutionSD < Resolution720p && Resolution720p < Resolution1080p && Resolution1080p < Resolution4K) {
		t.Fatal("resolutions must rank worst to best")
	}
	if Resolution1080p.Width() != 1920 || Resolution1080p.Height() != 1080 {
		t.Fatalf("unexpected 1080p dimensions %dx%d", Resolution1080p.Width(), Resolution1080p.Height())
	}
	if ResolutionUnknown.String() != "unknown" {
		t.Fatalf("unexpected zero-value label %q", ResolutionUnknown.String())
	}
}
