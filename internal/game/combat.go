package game

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// ErrCombatOver is returned when a round is requested after the encounter
// has already been decided.
var ErrCombatOver = errors.New("combat is over")

// Encounter holds all state for one fight. The monster instance lives only
// as long as the encounter.
type Encounter struct {
	Target  world.Coord // room the player is trying to enter
	Monster *entity.Monster
	Rounds  int
	Outcome combat.Outcome
	Log     []string
}

// NewEncounter spawns a fresh monster from the template.
func NewEncounter(ctx context.Context, target world.Coord, def *gamedata.MonsterDef, boss bool) *Encounter {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("monster", def.ID),
		attribute.Bool("boss", boss),
		attribute.String("room", target.Key()),
	)
	span.End()

	return &Encounter{
		Target:  target,
		Monster: entity.NewMonster(def, boss),
		Outcome: combat.Ongoing,
		Log:     []string{def.Name + " blocks the way!"},
	}
}

// Round resolves one round against the player.
func (e *Encounter) Round(ctx context.Context, player combat.Combatant) (combat.RoundResult, error) {
	if e.Outcome.IsTerminal() {
		return combat.RoundResult{}, ErrCombatOver
	}

	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "combat.round")
	defer span.End()

	result := combat.ResolveRound(player, e.Monster)
	e.Rounds++
	e.Outcome = result.Outcome
	e.Log = append(e.Log, result.Log...)

	span.SetAttributes(
		attribute.Int("round", e.Rounds),
		attribute.Int("player_actions", result.PlayerActions),
		attribute.Int("monster_actions", result.MonsterActions),
		attribute.Int("player_hp", result.PlayerHP),
		attribute.Int("monster_hp", result.MonsterHP),
		attribute.String("outcome", result.Outcome.String()),
	)

	if result.Outcome.IsTerminal() {
		e.end(ctx, result.Outcome.String(), player.GetHP())
	}
	return result, nil
}

// Abandon ends an ongoing encounter without a winner.
func (e *Encounter) Abandon(ctx context.Context, playerHP int) {
	e.end(ctx, "retreat", playerHP)
}

func (e *Encounter) end(ctx context.Context, outcome string, playerHP int) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("turns_taken", e.Rounds),
		attribute.Int("player_hp_remaining", playerHP),
		attribute.String("monster", e.Monster.ID()),
	)
	span.End()
}
