// Package mapper projects stored stats records onto the wire shapes the
// dashboard renders. All projections are 1:1 and order-preserving: a
// malformed record becomes a malformed row rather than being dropped or
// repaired. The store is trusted; no coercion or default substitution.
package mapper

import (
	"sort"

	"channel-stats-backend/internal/features/stats/models"
)

// ChannelSummaryRows projects raw channel aggregates onto the channel table
// shape. Extra stored fields are dropped; the five kept fields are copied
// verbatim. len(out) == len(in) always.
func ChannelSummaryRows(raw []models.RawChannelRecord) []models.ChannelSummaryRow {
	rows := make([]models.ChannelSummaryRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, models.ChannelSummaryRow{
			Title:        r.Title,
			ChannelID:    r.ChannelID,
			Enter:        r.Enter,
			Leave:        r.Leave,
			RequestCount: r.RequestCount,
		})
	}
	return rows
}

// InviteLinkRows projects stored invite links onto the wire shape. The only
// rename is refStats -> stats; nil Price/Limit stay nil.
func InviteLinkRows(raw []models.RawLinkRecord) []models.InviteLinkRow {
	rows := make([]models.InviteLinkRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, models.InviteLinkRow{
			ID:              r.ID,
			Title:           r.Title,
			Price:           r.Price,
			Limit:           r.Limit,
			Enter:           r.Enter,
			Leave:           r.Leave,
			Kick:            r.Kick,
			PendingRequests: r.PendingRequests,
			Stats:           r.RefStats,
		})
	}
	return rows
}

// SortedHistory returns a copy of the history series ordered by date
// ascending, the order the detail chart expects. Dates are YYYY-MM-DD, so
// lexicographic order is chronological.
func SortedHistory(points []models.HistoryPoint) []models.HistoryPoint {
	out := make([]models.HistoryPoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
