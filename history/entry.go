package history

import (
	"fmt"
	"time"
)

// Entry is a media item that was handed to a player.
type Entry struct {
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Player     string    `json:"player"`
	Plays      int       `json:"plays"`
	LastPlayed time.Time `json:"last_played"`
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s (%d plays, %s)", e.Title, e.Plays, e.LastPlayed.Format(time.DateTime))
}
