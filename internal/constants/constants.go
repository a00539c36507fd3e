package constants

// Round modes. ModeShuffle resolves to one of the three concrete modes
// once per round.
const (
	ModeArtist  = "artist"
	ModeTrack   = "track"
	ModeLyrics  = "lyrics"
	ModeShuffle = "shuffle"
)

// Difficulties. DifficultyRandom resolves once per round.
const (
	DifficultyEasy   = "easy"
	DifficultyHard   = "hard"
	DifficultyRandom = "random"
)

// Retry budgets for the round-generation pipeline.
const (
	SelectMaxAttempts   = 6
	MaxCandidates       = 12
	MaxAttemptsPerTrack = 3
	QueueAttemptFactor  = 3
)

// Queue size bounds for /game/queue.
const (
	QueueMinCount = 5
	QueueMaxCount = 10
)

// RecentTracksMax bounds the recency window shared by all selections.
const RecentTracksMax = 50

// Masking parameters. Words of MinMaskableLen or fewer characters are
// never redacted.
const (
	MinMaskableLen       = 2
	DefaultMaskRatio     = 0.4
	LyricsBlankRatioEasy = 0.12
	LyricsBlankRatioHard = 0.25
	DisplayMaxChars      = 500
)

// Guess scoring thresholds (fixed policy, not per-request).
const (
	ScoreCorrectThreshold = 80
	ScoreCloseThreshold   = 60
)

// Player-facing result messages.
const (
	MsgCorrect    = "Correct!"
	MsgClose      = "So close!"
	MsgWrong      = "Wrong."
	MsgPerfect    = "Perfect!"
	MsgKeepTrying = "Keep trying!"
	MsgGaveUp     = "The answer was:"
)

// Routes.
const (
	RouteNewRound = "/game/new"
	RouteQueue    = "/game/queue"
	RouteSubmit   = "/game/submit"
	RouteHealthz  = "/healthz"
)

type contextKey string

// RequestIDKey carries the per-request correlation ID in the request context.
const RequestIDKey contextKey = "request_id"
