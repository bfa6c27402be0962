package domain

// PoolItem is one entry of a box's weighted item pool. Pools are used only to
// generate decorative filler; they carry no authority over outcomes.
type PoolItem struct {
	ItemID       int     `json:"item_id,omitempty"`
	Name         string  `json:"name"`
	Tier         Tier    `json:"tier"`
	Value        int64   `json:"value"`
	Image        string  `json:"image,omitempty"`
	Weight       float64 `json:"weight,omitempty"`
	WeightGolden float64 `json:"weight_golden,omitempty"`
}

// StripItem is one rendered cell of a reel strip
type StripItem struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Tier          Tier   `json:"tier"`
	Icon          string `json:"icon"`
	IsPlaceholder bool   `json:"is_placeholder,omitempty"`
	Payout        *int64 `json:"payout,omitempty"`
	PayoutLabel   string `json:"payout_label,omitempty"`
}

// JackpotSegment is one team's slice of the jackpot wheel
type JackpotSegment struct {
	TeamID   int     `json:"team_id"`
	Label    string  `json:"label"`
	Weight   float64 `json:"weight"`
	Color    string  `json:"color"`
	Percent  float64 `json:"percent"`
	StartDeg float64 `json:"start_deg"`
	EndDeg   float64 `json:"end_deg"`
}

// Width returns the angular width of the segment in degrees.
func (s JackpotSegment) Width() float64 {
	return s.EndDeg - s.StartDeg
}

// Contains reports whether an angle in [0, 360) falls inside the segment.
func (s JackpotSegment) Contains(angle float64) bool {
	return angle >= s.StartDeg && angle < s.EndDeg
}
