package models

// Crime types recorded by the department.
var CrimeTypes = []string{
	"Robbery", "Assault", "Theft", "Vandalism",
	"Burglary", "Fraud", "Arson", "Other",
}

// ValidCrimeType reports whether t is a known crime type.
func ValidCrimeType(t string) bool {
	for _, ct := range CrimeTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Crime represents a recorded criminal event. Only the Investigated flag is
// mutable after creation.
type Crime struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	CrimeType       string `json:"crime_type"`
	Severity        int    `json:"severity"`
	Description     string `json:"description,omitempty"`
	Investigated    bool   `json:"investigated"`
	PerpetratorName string `json:"perpetrator_name,omitempty"`
	LocationName    string `json:"location_name,omitempty"`
	LocationType    string `json:"location_type,omitempty"`
	CreatedAt       int64  `json:"created_at,omitempty"`
}

// CrimeCreateRequest is the payload for reporting a crime.
type CrimeCreateRequest struct {
	Date          string  `json:"date" binding:"required,datetime=2006-01-02"`
	CrimeType     string  `json:"crime_type" binding:"required"`
	Severity      int     `json:"severity" binding:"required,gte=1,lte=10"`
	Description   string  `json:"description" binding:"max=1000"`
	LocationID    string  `json:"location_id" binding:"required"`
	PerpetratorID *int64  `json:"perpetrator_id,omitempty"`
	VictimID      *int64  `json:"victim_id,omitempty"`
	WitnessIDs    []int64 `json:"witness_ids,omitempty"`
}

// CrimeReport is the response for a newly filed crime, including the
// estimated impact on local risk.
type CrimeReport struct {
	Crime                Crime   `json:"crime"`
	RiskImpact           float64 `json:"risk_impact"`
	RelatedCitizensCount int     `json:"related_citizens_count"`
	InvestigationStatus  string  `json:"investigation_status"`
}

// CrimeStatistics aggregates crime data over an analysis window.
type CrimeStatistics struct {
	TotalCrimes     int            `json:"total_crimes"`
	CrimesByType    map[string]int `json:"crimes_by_type"`
	AverageSeverity float64        `json:"average_severity"`
	HighestSeverity int            `json:"highest_severity"`
	UniqueTypes     int            `json:"unique_types"`
	DateRange       string         `json:"date_range"`
}

// TimelineEntry is one day of criminal activity in the timeline view.
type TimelineEntry struct {
	Date              string `json:"date"`
	CrimesCount       int    `json:"crimes_count"`
	TotalSeverity     int    `json:"total_severity"`
	AffectedLocations int    `json:"affected_locations"`
	PrimaryCrimeType  string `json:"primary_crime_type"`
}

// CrimeTimeline is the daily series over an analysis window plus the trend
// detected by comparing the two halves of the window.
type CrimeTimeline struct {
	Entries     []TimelineEntry `json:"entries"`
	Trend       string          `json:"trend"`
	PeriodDays  int             `json:"period_days"`
	TotalCrimes int             `json:"total_crimes"`
}
