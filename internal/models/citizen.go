package models

// Citizen status values
const (
	StatusActive    = "ACTIVE"
	StatusWatchlist = "WATCHLIST"
	StatusDetained  = "DETAINED"
	StatusCleared   = "CLEARED"
)

// ValidCitizenStatus reports whether s is a known citizen status.
func ValidCitizenStatus(s string) bool {
	switch s {
	case StatusActive, StatusWatchlist, StatusDetained, StatusCleared:
		return true
	}
	return false
}

// Citizen represents a registered inhabitant of the city.
// RiskSeed is generator ground truth and is never serialized to API clients.
type Citizen struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Born              int     `json:"born"`
	Job               string  `json:"job,omitempty"`
	Address           string  `json:"address,omitempty"`
	Status            string  `json:"status"`
	SocialNetworkSize int     `json:"social_network_size"`
	CriminalDegree    int     `json:"criminal_degree"`
	RiskSeed          float64 `json:"-"`
	IsHighRisk        bool    `json:"is_high_risk"`
	StatusSummary     string  `json:"status_summary,omitempty"`
}

// CitizenCreateRequest is the payload for registering a new citizen.
type CitizenCreateRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Born    int    `json:"born" binding:"required"`
	Job     string `json:"job" binding:"max=100"`
	Address string `json:"address" binding:"max=300"`
}

// CitizenStatusRequest updates the only mutable citizen field.
type CitizenStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Suspect tiers, by how far the risk seed sits above the watchlist threshold.
const (
	TierMonitor   = "MONITOR"
	TierIntervene = "INTERVENE"
)

// Suspect is a high-risk citizen surfaced by the watchlist query.
// The underlying risk seed drives the ranking and the tier but is not exposed.
type Suspect struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	AssociatedCriminals int    `json:"associated_criminals"`
	CriminalContacts    int    `json:"criminal_contacts"`
	Tier                string `json:"tier"`
}

// NetworkConnection is one neighbor in a citizen's social graph.
type NetworkConnection struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	IsCriminal bool   `json:"is_criminal"`
}

// CitizenNetwork is the social neighborhood of a citizen with risk analysis.
type CitizenNetwork struct {
	CitizenID          int64               `json:"citizen_id"`
	Connections        []NetworkConnection `json:"connections"`
	Total              int                 `json:"total"`
	CriminalPercentage float64             `json:"criminal_percentage"`
	RiskAnalysis       string              `json:"risk_analysis"`
}
