package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventMatchStart EventType = iota
	EventSetupError
	EventNewTurn
	EventPhaseChange
	EventDraw
	EventDrawSkipped
	EventFatigue
	EventPrepare
	EventDeploy
	EventFieldFull
	EventCastPower
	EventPowerBlocked
	EventEffect
	EventAttack
	EventHeroDamage
	EventDeath
	EventShift
	EventHandSizeDiscard
	EventStatusExpired
	EventEndTurn
	EventWin
	EventTie
	EventTurnLimit
	EventMatchEnd
)

var eventTypeNames = map[EventType]string{
	EventMatchStart:      "MatchStart",
	EventSetupError:      "SetupError",
	EventNewTurn:         "NewTurn",
	EventPhaseChange:     "PhaseChange",
	EventDraw:            "Draw",
	EventDrawSkipped:     "DrawSkipped",
	EventFatigue:         "Fatigue",
	EventPrepare:         "Prepare",
	EventDeploy:          "Deploy",
	EventFieldFull:       "FieldFull",
	EventCastPower:       "CastPower",
	EventPowerBlocked:    "PowerBlocked",
	EventEffect:          "Effect",
	EventAttack:          "Attack",
	EventHeroDamage:      "HeroDamage",
	EventDeath:           "Death",
	EventShift:           "Shift",
	EventHandSizeDiscard: "HandSizeDiscard",
	EventStatusExpired:   "StatusExpired",
	EventEndTurn:         "EndTurn",
	EventWin:             "Win",
	EventTie:             "Draw(tie)",
	EventTurnLimit:       "TurnLimit",
	EventMatchEnd:        "MatchEnd",
}

func (e EventType) String() string {
	if s, ok := eventTypeNames[e]; ok {
		return s
	}
	return "Unknown"
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 before the first turn)
	Phase   string    // current phase name (e.g. "Attack")
	Player  int       // acting player (1 or 2, 0 for system events)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
