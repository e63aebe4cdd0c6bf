package entity

type Player struct {
	ID     string `json:"id"`
	Mark   Mark   `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Score  Score  `json:"score"`
}

// Score - session counters from the human's point of view.
type Score struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Record - counts a finished game. Unfinished games are ignored.
func (that *Score) Record(game *Game) {
	if !game.IsFinished() {
		return
	}

	switch game.Winner {
	case game.HumanMark:
		that.Wins++
	case game.BotMark:
		that.Losses++
	case PlayerTie:
		that.Draws++
	}
}
