package domain

import (
	"fmt"
	"time"
)

// Rule is the scoring rule of a battle
type Rule string

const (
	RuleClassic  Rule = "classic"  // highest total wins
	RuleTerminal Rule = "terminal" // last round decides
	RuleLess     Rule = "less"     // lowest total wins
	RuleWhale    Rule = "whale"    // best single roll wins
)

// Mode is the team layout of a battle
type Mode string

const (
	Mode1v1     Mode = "1v1"
	Mode1v1v1   Mode = "1v1v1"
	Mode1v1v1v1 Mode = "1v1v1v1"
	Mode2v2     Mode = "2v2"
	Mode2v2v2   Mode = "2v2v2"
	Mode3v3     Mode = "3v3"
)

// TeamCount returns the number of teams a mode seats.
func (m Mode) TeamCount() int {
	switch m {
	case Mode1v1v1, Mode2v2v2:
		return 3
	case Mode1v1v1v1:
		return 4
	default:
		return 2
	}
}

// Roll is the authoritative result for one lane in one round
type Roll struct {
	PlayerIndex int    `json:"player_index" validate:"gte=0"`
	ItemName    string `json:"item_name" validate:"required"`
	ItemValue   int64  `json:"item_value" validate:"gte=0"`
	Tier        Tier   `json:"tier" validate:"required,tier"`
	UserID      string `json:"user_id,omitempty"`
	ItemID      *int   `json:"item_id,omitempty"`
}

// Round is one box-opening event within a battle
type Round struct {
	BoxName string `json:"box_name"`
	Rolls   []Roll `json:"rolls" validate:"dive"`
}

// BattleOutcome is the immutable battle record supplied by the outcome authority.
// The playback engine reads it and never writes to it.
type BattleOutcome struct {
	BattleID       int64     `json:"battle_id"`
	WinnerTeamID   int       `json:"winner_team_id" validate:"gte=0"`
	TotalPot       int64     `json:"total_pot" validate:"gte=0"`
	IsDraw         bool      `json:"is_draw"`
	Rounds         []Round   `json:"rounds" validate:"dive"`
	PlayerTeams    []int     `json:"player_teams" validate:"required,min=1,dive,gte=0"`
	TeamScores     []int64   `json:"team_scores,omitempty"`
	Rule           Rule      `json:"rule" validate:"omitempty,oneof=classic terminal less whale"`
	Mode           Mode      `json:"mode,omitempty"`
	JackpotEnabled bool      `json:"jackpot_enabled"`
	Boxes          []string  `json:"boxes,omitempty"`
	CompletedAt    time.Time `json:"completed_at,omitempty"`
}

// Lanes returns the number of player slots in the battle.
func (b *BattleOutcome) Lanes() int {
	return len(b.PlayerTeams)
}

// RoundCount is the number of rounds the battle is expected to play. The box list
// is preferred so that a short outcome is detected as missing data.
func (b *BattleOutcome) RoundCount() int {
	if len(b.Boxes) > len(b.Rounds) {
		return len(b.Boxes)
	}
	return len(b.Rounds)
}

// Round returns the round at index i, or false when the outcome has no data for it.
func (b *BattleOutcome) Round(i int) (Round, bool) {
	if i < 0 || i >= len(b.Rounds) {
		return Round{}, false
	}
	r := b.Rounds[i]
	if r.BoxName == "" && i < len(b.Boxes) {
		r.BoxName = b.Boxes[i]
	}
	return r, true
}

// TeamOf returns the team of a player slot, defaulting to 0 when unknown.
func (b *BattleOutcome) TeamOf(playerIndex int) int {
	if playerIndex < 0 || playerIndex >= len(b.PlayerTeams) {
		return 0
	}
	return b.PlayerTeams[playerIndex]
}

// DistinctTeams returns the team ids present in the battle, in first-seen order.
func (b *BattleOutcome) DistinctTeams() []int {
	return DistinctTeams(b.PlayerTeams)
}

// DistinctTeams returns the unique team ids of an assignment in first-seen order.
func DistinctTeams(playerTeams []int) []int {
	seen := make(map[int]bool, len(playerTeams))
	var teams []int
	for _, t := range playerTeams {
		if seen[t] {
			continue
		}
		seen[t] = true
		teams = append(teams, t)
	}
	return teams
}

// EffectiveRule returns the battle rule, defaulting to classic.
func (b *BattleOutcome) EffectiveRule() Rule {
	if b.Rule == "" {
		return RuleClassic
	}
	return b.Rule
}

// SpinOutcome is the immutable result of a single-player box opening
type SpinOutcome struct {
	ID       int64  `json:"id,omitempty"`
	BoxName  string `json:"box_name,omitempty"`
	ItemName string `json:"item_name" validate:"required"`
	Payout   int64  `json:"payout" validate:"gte=0"`
	Tier     Tier   `json:"tier" validate:"required,tier"`
	ItemIcon string `json:"item_icon,omitempty"`
	IsGolden bool   `json:"is_golden"`
}

// RollOutcome converts a battle roll into the spin outcome a lane lands on.
func RollOutcome(roll Roll, boxName, icon string) SpinOutcome {
	return SpinOutcome{
		BoxName:  boxName,
		ItemName: roll.ItemName,
		Payout:   roll.ItemValue,
		Tier:     roll.Tier,
		ItemIcon: icon,
	}
}

// HistoryRow is one flattened row of the battle history table:
// one row per (round, player).
type HistoryRow struct {
	BattleID       int64
	CreatedAt      time.Time
	Mode           Mode
	Rule           Rule
	JackpotEnabled bool
	TotalPot       int64
	WinnerTeamID   int
	IsDraw         bool
	RoundIndex     int
	PlayerIndex    int
	TeamIndex      int
	UserID         string
	IsBot          bool
	BoxID          int
	BoxName        string
	ItemID         int
	ItemName       string
	ItemValue      int64
	ItemTier       string
	Payout         int64
}

// Team holds the display identity of a team
type Team struct {
	Name  string
	Color string
}

var teams = []Team{
	{Name: "TEAM A", Color: "#6df9ff"},
	{Name: "TEAM B", Color: "#ef4444"},
	{Name: "TEAM C", Color: "#22c55e"},
	{Name: "TEAM D", Color: "#a855f7"},
	{Name: "TEAM E", Color: "#f97316"},
	{Name: "TEAM F", Color: "#ec4899"},
}

// TeamInfo returns the label and colour of a team id.
func TeamInfo(teamID int) Team {
	if teamID >= 0 && teamID < len(teams) {
		return teams[teamID]
	}
	return Team{Name: fmt.Sprintf("TEAM %d", teamID+1), Color: "#8d8d8d"}
}
