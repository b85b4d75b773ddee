package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

var (
	// ErrRunOver is returned for commands issued after the run has ended.
	ErrRunOver = errors.New("run is over")
	// ErrInCombat is returned when trying to move during an encounter.
	ErrInCombat = errors.New("in combat")
	// ErrNotInCombat is returned for combat commands outside an encounter.
	ErrNotInCombat = errors.New("not in combat")
)

const (
	treasureHeal = 15
	trapDamage   = 8
	maxMessages  = 50
)

// Session is one run: a dungeon, the player's progress through it and the
// current encounter, if any. Calls must be serialized by the caller.
type Session struct {
	ID     uuid.UUID
	seed   int64
	logger zerolog.Logger

	cfg       Config
	dungeon   *world.Dungeon
	explore   *world.Exploration
	player    *entity.Player
	encounter *Encounter
	state     State
	messages  []string
}

// NewSession generates a dungeon and places a fresh player in the start room.
func NewSession(ctx context.Context, cfg Config, logger zerolog.Logger) (*Session, error) {
	if cfg.Monsters == nil {
		return nil, errors.New("no monster registry configured")
	}
	if cfg.Player == nil {
		return nil, errors.New("no player template configured")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return newSession(ctx, cfg, seed, rand.New(rand.NewSource(seed)), logger)
}

func newSession(ctx context.Context, cfg Config, seed int64, rng world.Rand, logger zerolog.Logger) (*Session, error) {
	id := uuid.New()

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	dcfg := cfg.Dungeon
	dcfg.Monsters = cfg.Monsters
	d, err := world.Generate(ctx, dcfg, rng)
	if err != nil {
		return nil, fmt.Errorf("generating dungeon: %w", err)
	}

	s := &Session{
		ID:      id,
		seed:    seed,
		logger:  logger.With().Str("session", id.String()).Logger(),
		cfg:     cfg,
		dungeon: d,
		explore: world.NewExploration(d),
		player:  entity.NewPlayerFromDef(cfg.Player),
		state:   StateExplore,
	}

	if err := d.Shortfall(); err != nil {
		s.logger.Warn().Err(err).Msg("dungeon smaller than requested")
	}

	bossKey := "none"
	if boss, ok := d.Boss(); ok {
		bossKey = boss.Key()
	}
	span.SetAttributes(
		attribute.String("session.id", id.String()),
		attribute.Int64("seed", seed),
		attribute.Int("dungeon.rooms", d.Len()),
		attribute.String("dungeon.start", d.Start().Key()),
		attribute.String("dungeon.boss", bossKey),
	)
	s.logger.Info().
		Int64("seed", seed).
		Int("rooms", d.Len()).
		Str("start", d.Start().Key()).
		Str("boss", bossKey).
		Msg("dungeon generated")

	s.say("You enter the dungeon.")
	return s, nil
}

// Seed returns the seed the dungeon was generated from.
func (s *Session) Seed() int64 { return s.seed }

// Dungeon returns the room graph.
func (s *Session) Dungeon() *world.Dungeon { return s.dungeon }

// Exploration returns the player's exploration state.
func (s *Session) Exploration() *world.Exploration { return s.explore }

// Player returns the player.
func (s *Session) Player() *entity.Player { return s.player }

// Encounter returns the active encounter, or nil.
func (s *Session) Encounter() *Encounter { return s.encounter }

// State returns the run state.
func (s *Session) State() State { return s.state }

// Messages returns the message log, oldest first.
func (s *Session) Messages() []string { return s.messages }

// Enter tries to move the player into target. Entering an uncleared combat
// room starts an encounter instead of moving.
func (s *Session) Enter(ctx context.Context, target world.Coord) (world.EnterOutcome, error) {
	switch {
	case s.state.IsOver():
		return world.EnterOutcome{}, ErrRunOver
	case s.state == StateCombat:
		return world.EnterOutcome{}, ErrInCombat
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.enter")
	defer span.End()
	span.SetAttributes(
		attribute.String("from", s.explore.Current().Key()),
		attribute.String("to", target.Key()),
	)

	firstVisit := !s.explore.HasVisited(target)
	out, err := s.explore.Enter(target)
	if err != nil {
		s.logger.Debug().Err(err).Str("target", target.Key()).Msg("transition rejected")
		span.SetAttributes(attribute.Bool("rejected", true))
		return out, err
	}

	switch out.Kind {
	case world.CombatStarted:
		def := s.cfg.Monsters.GetByID(out.MonsterID)
		if def == nil {
			return world.EnterOutcome{}, fmt.Errorf("%w: %q", world.ErrUnknownMonsterTemplate, out.MonsterID)
		}
		s.encounter = NewEncounter(ctx, target, def, out.IsBoss)
		s.state = StateCombat
		s.say(s.encounter.Log[0])
		s.logger.Info().Str("room", target.Key()).Str("monster", def.ID).Bool("boss", out.IsBoss).Msg("combat started")
	case world.Moved:
		s.logger.Debug().Str("room", target.Key()).Msg("moved")
		if firstVisit {
			room, _ := s.dungeon.RoomAt(target)
			s.applyRoom(room)
		}
	}
	return out, nil
}

// applyRoom runs the first-entry effect of a non-combat room.
func (s *Session) applyRoom(room *world.Room) {
	switch room.Type {
	case world.RoomTreasure:
		healed := s.player.Heal(treasureHeal)
		s.say(fmt.Sprintf("You find a healing draught and recover %d HP.", healed))
	case world.RoomTrap:
		// A trap hurts but never kills.
		dmg := trapDamage
		if dmg >= s.player.HP {
			dmg = s.player.HP - 1
		}
		taken := s.player.TakeDamage(dmg)
		s.say(fmt.Sprintf("A trap springs! You lose %d HP.", taken))
	case world.RoomPuzzle:
		s.say("Strange mechanisms cover the walls of this room.")
	case world.RoomRiddle:
		s.say("Words are carved above the door: what walks on four legs at dawn?")
	default:
		s.say("An empty chamber.")
	}
}

// Attack resolves one combat round.
func (s *Session) Attack(ctx context.Context) (combat.RoundResult, error) {
	if s.state.IsOver() {
		return combat.RoundResult{}, ErrRunOver
	}
	if s.encounter == nil {
		return combat.RoundResult{}, ErrNotInCombat
	}

	enc := s.encounter
	result, err := enc.Round(ctx, s.player)
	if err != nil {
		return result, err
	}
	for _, line := range result.Log {
		s.say(line)
	}

	switch result.Outcome {
	case combat.Victory:
		s.encounter = nil
		if err := s.explore.ResolveCombatVictory(enc.Target); err != nil {
			return result, err
		}
		s.logger.Info().Str("monster", enc.Monster.ID()).Int("rounds", enc.Rounds).Int("hp", s.player.HP).Msg("combat won")
		if enc.Monster.Boss {
			s.state = StateWon
			s.say("The dungeon falls silent. You are victorious!")
			s.logger.Info().Msg("run won")
		} else {
			s.state = StateExplore
		}
	case combat.Defeat:
		s.state = StateLost
		s.logger.Info().Str("monster", enc.Monster.ID()).Int("rounds", enc.Rounds).Msg("run lost")
	}
	return result, nil
}

// Retreat abandons the current encounter. The player stays where they were
// and the monster will be back at full strength next time.
func (s *Session) Retreat(ctx context.Context) error {
	if s.state.IsOver() {
		return ErrRunOver
	}
	if s.encounter == nil {
		return ErrNotInCombat
	}
	s.encounter.Abandon(ctx, s.player.HP)
	s.say("You retreat from " + s.encounter.Monster.Name + ".")
	s.logger.Info().Str("monster", s.encounter.Monster.ID()).Msg("retreated")
	s.encounter = nil
	s.state = StateExplore
	return nil
}

// Search reports the unexplored exits of the current room.
func (s *Session) Search() []world.Coord {
	targets := s.explore.SearchTargets()
	if len(targets) == 0 {
		s.say("You search the walls but find nothing new.")
		return nil
	}
	cur := s.explore.Current()
	for _, t := range targets {
		if d, ok := world.DirectionBetween(cur, t); ok {
			s.say("You find a passage leading " + d.String() + ".")
		}
	}
	return targets
}

func (s *Session) say(msg string) {
	s.messages = append(s.messages, msg)
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}
