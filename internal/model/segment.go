// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// Segment is a risk segment assignment.
type Segment string

// Segment constants, ordered from most to least urgent.
const (
	SegmentCritical Segment = "critical"
	SegmentModerate Segment = "moderate"
	SegmentOnTrack  Segment = "on_track"
	SegmentUnknown  Segment = "unknown"
)

// CompositeSegments lists the segments a learner's overall assignment can
// take, in display order. Unknown never appears at the composite level.
var CompositeSegments = []Segment{SegmentCritical, SegmentModerate, SegmentOnTrack}

// Label returns the display label used in reports and exports.
func (s Segment) Label() string {
	switch s {
	case SegmentCritical:
		return "Critical / Urgent"
	case SegmentModerate:
		return "Moderate / At-Risk"
	case SegmentOnTrack:
		return "On Track / Low Risk"
	case SegmentUnknown:
		return "Unknown"
	default:
		return string(s)
	}
}

// ShortLabel returns the compact form used in narrow table columns.
func (s Segment) ShortLabel() string {
	switch s {
	case SegmentCritical:
		return "Critical"
	case SegmentModerate:
		return "Moderate"
	case SegmentOnTrack:
		return "On Track"
	case SegmentUnknown:
		return "Unknown"
	default:
		return string(s)
	}
}

// Severity ranks segments by urgency. Higher values are more urgent;
// Unknown ranks below On Track.
func (s Segment) Severity() int {
	switch s {
	case SegmentCritical:
		return 3
	case SegmentModerate:
		return 2
	case SegmentOnTrack:
		return 1
	default:
		return 0
	}
}

// ParseSegment converts user input such as a CLI flag value into a Segment.
func ParseSegment(raw string) (Segment, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch normalized {
	case "critical", "urgent":
		return SegmentCritical, nil
	case "moderate", "at_risk":
		return SegmentModerate, nil
	case "on_track", "ontrack", "low_risk":
		return SegmentOnTrack, nil
	case "unknown":
		return SegmentUnknown, nil
	default:
		return "", fmt.Errorf("unknown segment %q (expected critical, moderate, or on-track)", raw)
	}
}
