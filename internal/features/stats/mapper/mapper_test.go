package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-stats-backend/internal/features/stats/models"
)

func int64p(v int64) *int64 { return &v }

func TestChannelSummaryRowsEmpty(t *testing.T) {
	assert.Empty(t, ChannelSummaryRows(nil))
	assert.Empty(t, ChannelSummaryRows([]models.RawChannelRecord{}))
}

func TestChannelSummaryRowsProjection(t *testing.T) {
	raw := []models.RawChannelRecord{
		{
			ChannelID:    101,
			BoardKey:     "board-a",
			Title:        "Новости",
			Avatar:       "https://cdn.example/101.jpg",
			City:         "Москва",
			Enter:        42,
			Leave:        7,
			RequestCount: 13,
			MembersCount: 9001,
		},
		{ChannelID: 102, Title: "second"},
		// Malformed zero-value record passes through untouched.
		{},
	}

	rows := ChannelSummaryRows(raw)
	require.Len(t, rows, len(raw))

	assert.Equal(t, models.ChannelSummaryRow{
		Title:        "Новости",
		ChannelID:    101,
		Enter:        42,
		Leave:        7,
		RequestCount: 13,
	}, rows[0])

	// Input order is preserved, no implicit sort.
	assert.Equal(t, int64(102), rows[1].ChannelID)
	assert.Equal(t, models.ChannelSummaryRow{}, rows[2])
}

func TestInviteLinkRowsRenamesRefStats(t *testing.T) {
	series := []models.LinkDayStat{
		{Date: "2024-06-08", Enter: 3, Leave: 1, Kick: 0, PendingRequests: 2},
		{Date: "2024-06-09", Enter: 5},
	}
	raw := []models.RawLinkRecord{
		{
			ID:              1,
			Title:           "promo",
			Price:           int64p(500),
			Limit:           int64p(100),
			Enter:           8,
			Leave:           1,
			Kick:            0,
			PendingRequests: 2,
			RefStats:        series,
		},
	}

	rows := InviteLinkRows(raw)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, raw[0].ID, row.ID)
	assert.Equal(t, raw[0].Title, row.Title)
	assert.Equal(t, raw[0].Price, row.Price)
	assert.Equal(t, raw[0].Limit, row.Limit)
	assert.Equal(t, raw[0].Enter, row.Enter)
	assert.Equal(t, raw[0].Leave, row.Leave)
	assert.Equal(t, raw[0].Kick, row.Kick)
	assert.Equal(t, raw[0].PendingRequests, row.PendingRequests)
	assert.Equal(t, series, row.Stats)
}

func TestInviteLinkRowsPreservesAbsence(t *testing.T) {
	rows := InviteLinkRows([]models.RawLinkRecord{{ID: 2, Title: "free"}})
	require.Len(t, rows, 1)

	assert.Nil(t, rows[0].Price, "absent price must stay absent, not become 0")
	assert.Nil(t, rows[0].Limit, "absent limit must stay absent, not become 0")
	assert.Nil(t, rows[0].Stats)
}

func TestInviteLinkRowsLength(t *testing.T) {
	raw := make([]models.RawLinkRecord, 17)
	assert.Len(t, InviteLinkRows(raw), 17)
}

func TestSortedHistory(t *testing.T) {
	in := []models.HistoryPoint{
		{Date: "2024-06-10", AllEnter: 2},
		{Date: "2024-06-08", AllEnter: 1},
		{Date: "2024-06-09", AllEnter: 3},
	}

	out := SortedHistory(in)
	require.Len(t, out, 3)
	assert.Equal(t, "2024-06-08", out[0].Date)
	assert.Equal(t, "2024-06-09", out[1].Date)
	assert.Equal(t, "2024-06-10", out[2].Date)

	// Input slice is not mutated.
	assert.Equal(t, "2024-06-10", in[0].Date)
}
