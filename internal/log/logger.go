package log

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.LastEvent()))
}

// --- ZapLogger: forwards events to a zap logger at debug level ---

type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	e := l.LastEvent()
	l.z.Debug(e.Details,
		zap.Int("seq", e.Seq),
		zap.Int("turn", e.Turn),
		zap.String("phase", e.Phase),
		zap.Int("player", e.Player),
		zap.Stringer("type", e.Type),
		zap.String("card", e.Card),
	)
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 16 chars for alignment
	for len(phase) < 16 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewMatchStartEvent(first int, hp1, hp2 int) GameEvent {
	return GameEvent{
		Player:  first,
		Type:    EventMatchStart,
		Details: fmt.Sprintf("Match begins: P1 %d HP, P2 %d HP. %s goes first", hp1, hp2, playerName(first)),
	}
}

func NewSetupErrorEvent(phase string, reason string) GameEvent {
	return GameEvent{
		Phase:   phase,
		Type:    EventSetupError,
		Details: fmt.Sprintf("Setup error: %s", reason),
	}
}

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, playerName(player)),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string, prep int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s (prep %d)", playerName(player), cardName, prep),
	}
}

func NewDrawSkippedEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDrawSkipped,
		Details: fmt.Sprintf("%s skips the first draw", playerName(player)),
	}
}

func NewFatigueEvent(turn int, phase string, player int, damage, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFatigue,
		Details: fmt.Sprintf("%s has no cards left: fatigue %d, HP %d → %d", playerName(player), damage, oldHP, newHP),
	}
}

func NewPrepareEvent(turn int, phase string, player int, cardName string, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPrepare,
		Card:    cardName,
		Details: fmt.Sprintf("%s prepares %s (%d left)", playerName(player), cardName, remaining),
	}
}

func NewDeployEvent(turn int, phase string, player int, cardName string, atk, hp, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeploy,
		Card:    cardName,
		Details: fmt.Sprintf("%s deploys %s (ATK %d, HP %d) to slot %d", playerName(player), cardName, atk, hp, slot+1),
	}
}

func NewFieldFullEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventFieldFull,
		Card:    cardName,
		Details: fmt.Sprintf("%s cannot deploy %s: field is full", playerName(player), cardName),
	}
}

func NewCastPowerEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCastPower,
		Card:    cardName,
		Details: fmt.Sprintf("%s casts %s", playerName(player), cardName),
	}
}

func NewPowerBlockedEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventPowerBlocked,
		Card:    cardName,
		Details: fmt.Sprintf("%s holds %s: no valid target", playerName(player), cardName),
	}
}

func NewEffectEvent(turn int, phase string, player int, cardName string, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEffect,
		Card:    cardName,
		Details: fmt.Sprintf("%s: %s", cardName, details),
	}
}

func NewAttackEvent(turn int, phase string, player int, attacker string, defender string, damage, hpLeft int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttack,
		Card:    attacker,
		Details: fmt.Sprintf("%s attacks %s for %d (HP left %d)", attacker, defender, damage, hpLeft),
	}
}

// NewHeroDamageEvent records damage to the hero of player.
func NewHeroDamageEvent(turn int, phase string, player int, source string, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHeroDamage,
		Card:    source,
		Details: fmt.Sprintf("%s hits %s's hero: HP %d → %d", source, playerName(player), oldHP, newHP),
	}
}

func NewDeathEvent(turn int, phase string, player int, cardName string, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeath,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s in slot %d dies", playerName(player), cardName, slot+1),
	}
}

func NewShiftEvent(turn int, phase string, player int, cardName string, from, to int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShift,
		Card:    cardName,
		Details: fmt.Sprintf("%s shifts from slot %d to slot %d", cardName, from+1, to+1),
	}
}

func NewHandSizeDiscardEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHandSizeDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s (hand size limit)", playerName(player), cardName),
	}
}

func NewStatusExpiredEvent(turn int, phase string, player int, cardName string, status string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatusExpired,
		Card:    cardName,
		Details: fmt.Sprintf("%s is no longer %s", cardName, status),
	}
}

func NewEndTurnEvent(turn int, phase string, player int, handSize int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEndTurn,
		Details: fmt.Sprintf("%s ends turn with %d card(s) in hand", playerName(player), handSize),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewTieEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventTie,
		Details: fmt.Sprintf("The match is a draw (%s)", reason),
	}
}

func NewTurnLimitEvent(turn int, phase string, maxTurns int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventTurnLimit,
		Details: fmt.Sprintf("Turn limit reached (%d turns)", maxTurns),
	}
}

func NewMatchEndEvent(turn int, phase string, result string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventMatchEnd,
		Details: result,
	}
}
