package battle

import "github.com/osse101/BrandishReveal_Go/internal/domain"

// TeamScore is a team's aggregated running score
type TeamScore struct {
	TeamID int    `json:"team_id"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Score  int64  `json:"score"`
}

// Summary is reported once when a playback finishes
type Summary struct {
	BattleID     int64       `json:"battle_id,omitempty"`
	Resolution   Resolution  `json:"resolution"`
	WinnerTeamID int         `json:"winner_team_id"`
	WinnerLabel  string      `json:"winner_label,omitempty"`
	Refunded     bool        `json:"refunded"`
	Pot          int64       `json:"pot"`
	TotalPot     int64       `json:"total_pot"`
	Scores       []int64     `json:"scores"`
	TeamScores   []TeamScore `json:"team_scores"`
	Payouts      []int64     `json:"payouts"`
	RoundsPlayed int         `json:"rounds_played"`
}

// TeamScores sums running scores per team in first-seen order
func TeamScores(playerTeams []int, scores []int64) []TeamScore {
	var out []TeamScore
	index := make(map[int]int)
	for i, team := range playerTeams {
		pos, ok := index[team]
		if !ok {
			pos = len(out)
			index[team] = pos
			info := domain.TeamInfo(team)
			out = append(out, TeamScore{TeamID: team, Label: info.Name, Color: info.Color})
		}
		if i < len(scores) {
			out[pos].Score += scores[i]
		}
	}
	return out
}

// Payouts splits the pot across player slots. A refunded draw returns an equal
// share to everyone; otherwise the winning team's members split the pot and
// everyone else gets nothing. Shares round down.
func Payouts(playerTeams []int, winnerTeamID int, pot int64, refunded bool) []int64 {
	out := make([]int64, len(playerTeams))
	if len(playerTeams) == 0 {
		return out
	}
	if refunded {
		share := pot / int64(len(playerTeams))
		for i := range out {
			out[i] = share
		}
		return out
	}

	winners := 0
	for _, team := range playerTeams {
		if team == winnerTeamID {
			winners++
		}
	}
	if winners == 0 {
		return out
	}
	share := pot / int64(winners)
	for i, team := range playerTeams {
		if team == winnerTeamID {
			out[i] = share
		}
	}
	return out
}
