package models

// Excursion is a scheduled dive trip.
type Excursion struct {
	ID               string `dynamodbav:"id" json:"id"`
	Name             string `dynamodbav:"name" json:"name"`
	Date             string `dynamodbav:"date" json:"date"`
	Capacity         int    `dynamodbav:"capacity" json:"capacity"`
	BookedCount      int    `dynamodbav:"bookedCount" json:"booked_count"`
	MinCertification string `dynamodbav:"minCertification" json:"min_certification"`
	MaxDepthMeters   int    `dynamodbav:"maxDepthMeters" json:"max_depth_meters"`
}

// certRank orders certification levels for eligibility comparisons.
var certRank = map[string]int{
	CertNone:       0,
	CertOpenWater:  1,
	CertAdvanced:   2,
	CertRescue:     3,
	CertDivemaster: 4,
	CertInstructor: 5,
}

// CertRank returns the ladder position of a certification level,
// treating unknown values as uncertified.
func CertRank(level string) int {
	return certRank[level]
}

// CertDepthLimitMeters returns the recreational depth limit for a
// certification level.
func CertDepthLimitMeters(level string) int {
	switch {
	case CertRank(level) >= CertRank(CertRescue):
		return 40
	case level == CertAdvanced:
		return 30
	case level == CertOpenWater:
		return 18
	default:
		return 0
	}
}
