package domain

// EntityType classifies a watchlist entry.
type EntityType string

const (
	EntityIndividual   EntityType = "individual"
	EntityOrganization EntityType = "organization"
)

// WatchlistEntry is one sanctioned party in the watchlist snapshot. Entries
// are immutable once loaded; the refresh collaborator replaces the whole
// snapshot rather than mutating entries in place.
type WatchlistEntry struct {
	Name        string     `json:"name"`
	Aliases     []string   `json:"aliases,omitempty"`
	Type        EntityType `json:"type"`
	DateOfBirth string     `json:"date_of_birth,omitempty"`
	IDs         []string   `json:"ids,omitempty"`
	Programs    []string   `json:"programs,omitempty"`
	Remarks     string     `json:"remarks,omitempty"`
}
