package model

import "testing"

func TestSegment_Label(t *testing.T) {
	tests := []struct {
		segment Segment
		want    string
	}{
		{SegmentCritical, "Critical / Urgent"},
		{SegmentModerate, "Moderate / At-Risk"},
		{SegmentOnTrack, "On Track / Low Risk"},
		{SegmentUnknown, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.segment.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.segment, got, tt.want)
		}
	}
}

func TestSegment_Severity(t *testing.T) {
	ordered := []Segment{SegmentUnknown, SegmentOnTrack, SegmentModerate, SegmentCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Severity() <= ordered[i-1].Severity() {
			t.Errorf("Severity(%q) = %d, want greater than Severity(%q) = %d",
				ordered[i], ordered[i].Severity(), ordered[i-1], ordered[i-1].Severity())
		}
	}
}

func TestParseSegment(t *testing.T) {
	tests := []struct {
		input   string
		want    Segment
		wantErr bool
	}{
		{input: "critical", want: SegmentCritical},
		{input: "  Critical ", want: SegmentCritical},
		{input: "urgent", want: SegmentCritical},
		{input: "moderate", want: SegmentModerate},
		{input: "at-risk", want: SegmentModerate},
		{input: "on_track", want: SegmentOnTrack},
		{input: "on-track", want: SegmentOnTrack},
		{input: "ontrack", want: SegmentOnTrack},
		{input: "On Track", want: SegmentOnTrack},
		{input: "unknown", want: SegmentUnknown},
		{input: "severe", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSegment(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSegment(%q) error = nil, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSegment(%q) error = %v, want nil", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSegment(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
