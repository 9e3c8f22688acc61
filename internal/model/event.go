package model

// Table names carried on change events. They match the gorm table names so
// the mirror can route a row to its collection without extra lookup.
const (
	TableQuests      = "quests"
	TableRewards     = "rewards"
	TableSubmissions = "submissions"
	TableRedemptions = "redemptions"
	TableUsers       = "users"
)

const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// ChangeEvent is the wire form of one committed row change. New and Old are
// kept as loose maps so a single topic can carry every table; the mirror
// decodes them into the matching entity.
type ChangeEvent struct {
	Table string         `json:"table"`
	Op    string         `json:"op"`
	New   map[string]any `json:"new,omitempty"`
	Old   map[string]any `json:"old,omitempty"`
}

// Notification is what the store surfaces to the UI toast layer.
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Ref     string `json:"ref"`
}
