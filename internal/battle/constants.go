package battle

import "time"

// Phase is the stage a playback is in
type Phase string

const (
	PhaseIdle     Phase = "IDLE"
	PhaseRound    Phase = "ROUND"
	PhaseSettling Phase = "SETTLING"
	PhaseJackpot  Phase = "JACKPOT"
	PhaseTiebreak Phase = "TIEBREAK"
	PhaseFinished Phase = "FINISHED"
)

// Resolution records how the winner was determined
type Resolution string

const (
	ResolutionScore      Resolution = "score"
	ResolutionJackpot    Resolution = "jackpot"
	ResolutionTiebreak   Resolution = "tiebreak"
	ResolutionIncomplete Resolution = "incomplete"
	ResolutionSolo       Resolution = "solo"
)

// Timing
const (
	DefaultRevealDelay      = 500 * time.Millisecond
	DefaultSettleDelay      = 1000 * time.Millisecond
	DefaultFinalSettleDelay = 2000 * time.Millisecond
)

// Log messages
const (
	LogMsgPlaybackStarted  = "Battle playback started"
	LogMsgSoloStarted      = "Solo playback started"
	LogMsgRoundStarted     = "Round started"
	LogMsgRoundMissing     = "Round data missing, finishing playback"
	LogMsgRollOutOfRange   = "Roll player index outside lanes, ignored"
	LogMsgPoolFetchFailed  = "Failed to load item pool, using filler"
	LogMsgRoundScored      = "Round scored"
	LogMsgJackpotFallback  = "Jackpot wheel could not be planned, settling on score"
	LogMsgTiebreakFallback = "Tiebreak could not run, settling on score"
	LogMsgLandFailed       = "Lane refused landing"
	LogMsgBattleFinished   = "Battle playback finished"
)

// Error context
const (
	ErrContextPlay = "failed to start playback"
)
