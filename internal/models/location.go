package models

// Location types used across the city graph.
var LocationTypes = []string{
	"Bank", "Jewelry Store", "Subway Station", "Dark Alley",
	"Park", "Cafe", "Apartment Block", "Shopping Mall",
	"Gas Station", "Warehouse",
}

// ValidLocationType reports whether t is a known location type.
func ValidLocationType(t string) bool {
	for _, lt := range LocationTypes {
		if lt == t {
			return true
		}
	}
	return false
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

// Location represents a place in the city. Crime counts are derived from the
// graph on read and never stored on the node.
type Location struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	LocationType         string  `json:"location_type"`
	EnvRisk              float64 `json:"env_risk"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	HistoricalCrimeCount int     `json:"historical_crime_count"`
	RecentCrimeCount     int     `json:"recent_crime_count"`
	RiskLevel            string  `json:"risk_level,omitempty"`
}

// LocationCreateRequest is the payload for adding a location.
type LocationCreateRequest struct {
	Name         string      `json:"name" binding:"required,min=1,max=200"`
	LocationType string      `json:"location_type" binding:"required"`
	EnvRisk      float64     `json:"env_risk" binding:"gte=0,lte=1"`
	Coordinates  Coordinates `json:"coordinates" binding:"required"`
}

// Hotspot is a location ranked by weighted criminal activity.
type Hotspot struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	LocationType    string  `json:"location_type"`
	CrimeCount      int     `json:"crime_count"`
	SeverityTotal   int     `json:"severity_total"`
	AverageSeverity float64 `json:"average_severity"`
	RiskScore       float64 `json:"risk_score"`
	LastCrimeDate   string  `json:"last_crime_date,omitempty"`
}

// LocationStatistics aggregates location data across the whole city.
type LocationStatistics struct {
	TotalLocations      int     `json:"total_locations"`
	LocationsWithCrimes int     `json:"locations_with_crimes"`
	AverageEnvRisk      float64 `json:"average_env_risk"`
	HighestRiskLocation string  `json:"highest_risk_location,omitempty"`
	TotalCrimeIncidents int     `json:"total_crime_incidents"`
	TopCrimeType        string  `json:"top_crime_type,omitempty"`
}
