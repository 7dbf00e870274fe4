package model

// ImportEnvelope is the payload consumed from the contacts import topic.
type ImportEnvelope struct {
	ID       string     `json:"id"`        // producer-side id, used for logging only
	ClientID int64      `json:"client_id"` // owner of the contact
	Contact  RawContact `json:"contact"`
}

// NormalizedEvent is written to the outbox (and relayed to Kafka by Debezium)
// whenever a contact is stored through the API.
type NormalizedEvent struct {
	ContactID   string `json:"contact_id"`
	ClientID    int64  `json:"client_id"`
	FullNumber  string `json:"full_number"`
	CountryCode string `json:"country_code,omitempty"`
	Created     bool   `json:"created"`
}
