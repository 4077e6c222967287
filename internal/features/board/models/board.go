package models

// Channel is a Telegram channel tracked by one of the user's bots.
type Channel struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Board is one collector bot and the channels it watches. The wire field
// is historically named "board", not "id".
type Board struct {
	Key      string    `json:"board"`
	Title    string    `json:"title"`
	Channels []Channel `json:"channels"`
}

// BoardsResponse is the body of POST /pressCode/getBoards.
type BoardsResponse struct {
	Boards []Board `json:"boards"`
}
