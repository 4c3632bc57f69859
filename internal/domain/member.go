package domain

// ConnectionID is the transport-assigned handle for one live
// connection. Unique for the lifetime of the connection, never reused
// after disconnect. The gateway only stores it, it never mints one.
type ConnectionID string

// Member is one client's presence in one room. A connection holds at
// most one Member record per room it has joined.
type Member struct {
	ConnectionID ConnectionID `json:"connectionId"`
	UserName     string       `json:"userName"`
}
