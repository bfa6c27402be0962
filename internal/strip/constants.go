package strip

// Placeholder cell shown in place of rare items until the lane has teased
const (
	PlaceholderName = "LEGENDARY"
	PlaceholderIcon = "◆"
)

// Mystery is what an empty pool degrades to
const MysteryName = "Mystery"

// DefaultWeight applies to pool items without a positive weight
const DefaultWeight = 100.0

// Strip sizes
const (
	InitialLength = 25 // strip built on reset
	RestartLength = 30 // strip rebuilt when a finished reel starts again
	ExtendLength  = 20 // items appended while the reel runs out of track
	DecelLength   = 7  // filler between the current position and the target
	BufferLength  = 3  // filler after the target so the viewport never shows an edge
)

const (
	winnerIDPrefix = "WINNER-"
	teaseIDPrefix  = "TEASE-"
)
