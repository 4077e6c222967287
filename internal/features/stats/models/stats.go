package models

// RawChannelRecord is a per-channel aggregate as produced by the collector
// and stored per day. Stored records carry more fields than the dashboard
// renders; the mapper drops the extras.
type RawChannelRecord struct {
	ChannelID    int64
	BoardKey     string
	Title        string
	Avatar       string
	City         string
	Enter        int64
	Leave        int64
	RequestCount int64
	MembersCount int64
}

// ChannelSummaryRow is the flat projection the dashboard's channel table
// renders. Field values are copied verbatim from the raw record.
type ChannelSummaryRow struct {
	Title        string `json:"title"`
	ChannelID    int64  `json:"channelId"`
	Enter        int64  `json:"enter"`
	Leave        int64  `json:"leave"`
	RequestCount int64  `json:"requestCount"`
}

// LinkDayStat is one day of invite-link activity.
type LinkDayStat struct {
	Date            string `json:"date"`
	Enter           int64  `json:"enter"`
	Leave           int64  `json:"leave"`
	Kick            int64  `json:"kick"`
	PendingRequests int64  `json:"pendingRequests"`
}

// RawLinkRecord is an invite link with its totals and per-day series as
// stored. Price and Limit are nil for links created without them; absence
// is preserved through normalization, never zero-filled. The per-day series
// keeps its storage name RefStats and is renamed on the wire.
type RawLinkRecord struct {
	ID              int64
	Title           string
	Price           *int64
	Limit           *int64
	Enter           int64
	Leave           int64
	Kick            int64
	PendingRequests int64
	RefStats        []LinkDayStat
}

// InviteLinkRow is the wire shape of an invite link.
type InviteLinkRow struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Price           *int64        `json:"price,omitempty"`
	Limit           *int64        `json:"limit,omitempty"`
	Enter           int64         `json:"enter"`
	Leave           int64         `json:"leave"`
	Kick            int64         `json:"kick"`
	PendingRequests int64         `json:"pendingRequests"`
	Stats           []LinkDayStat `json:"stats"`
}

// HistoryPoint is one day of channel membership history.
type HistoryPoint struct {
	Date     string `json:"date"`
	AllEnter int64  `json:"allEnter"`
	AllLeave int64  `json:"allLeave"`
}

// ChannelHistory wraps the daily series the detail chart consumes.
type ChannelHistory struct {
	Stats []HistoryPoint `json:"stats"`
}

// ChannelDetail is the response of the per-channel detail endpoint.
type ChannelDetail struct {
	ChannelID int64          `json:"channelId"`
	Title     string         `json:"title"`
	History   ChannelHistory `json:"history"`
}

// StatsRequest is the body of POST /getStats. Either a complete
// dateFrom/dateTo pair or a window tag selects the period; a complete pair
// wins. A half-populated pair is rejected as a validation error.
type StatsRequest struct {
	BoardKeys    []string `json:"board_key" binding:"required,min=1"`
	ChannelNames []string `json:"channelName"`
	City         string   `json:"city"`
	Window       string   `json:"window"`
	DateFrom     string   `json:"dateFrom"`
	DateTo       string   `json:"dateTo"`
}

// DetailsRequest is the body of POST /getDetailsStats and
// POST /getInviteLinks.
type DetailsRequest struct {
	ChannelID string `json:"channelId" binding:"required"`
	Window    string `json:"window"`
	DateFrom  string `json:"dateFrom"`
	DateTo    string `json:"dateTo"`
}

// StatsFilter is the repository-level filter derived from a StatsRequest.
type StatsFilter struct {
	BoardKeys    []string
	ChannelNames []string
	City         string
	DateFrom     string
	DateTo       string
}
