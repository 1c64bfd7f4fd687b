package zone

import (
	"context"
	"errors"
	"fmt"

	"scumguard/internal/config"
	"scumguard/internal/store"
)

var ErrNoPlayer = errors.New("no acting player resolved")

// PlayerClasses are the entity classes that mark a player, newest schema
// first. Add new variants at the front.
var PlayerClasses = []string{
	"BP_Prisoner_ES",
	"FPrisonerEntity",
}

// Store is the subset of store.Store the resolver reads.
type Store interface {
	PlayerEntitySystems(ctx context.Context, class string) ([]int64, error)
	UserProfileForEntitySystem(ctx context.Context, entitySystemID int64) (int64, bool, error)
	UserName(ctx context.Context, userProfileID int64) (string, bool, error)
	BasesOwnedBy(ctx context.Context, userProfileID int64) ([]int64, error)
	BaseElements(ctx context.Context, baseIDs []int64) ([]store.BaseElement, error)
}

// RuleSource supplies the current run configuration. It is consulted on
// every Zones call.
type RuleSource interface {
	Load() config.RunConfig
}

type Resolver struct {
	store   Store
	rules   RuleSource
	classes []string
}

func NewResolver(s Store, rules RuleSource) *Resolver {
	return &Resolver{store: s, rules: rules, classes: PlayerClasses}
}

// UserProfileID finds the acting player: the single flags = 0 entity of the
// first player class that has any. Zero matches move on to the next class;
// more than one is ambiguous and resolves nothing.
func (r *Resolver) UserProfileID(ctx context.Context) (int64, error) {
	for _, class := range r.classes {
		systems, err := r.store.PlayerEntitySystems(ctx, class)
		if err != nil {
			return 0, fmt.Errorf("resolving player of class %s: %w", class, err)
		}
		switch len(systems) {
		case 0:
			continue
		case 1:
			id, ok, err := r.store.UserProfileForEntitySystem(ctx, systems[0])
			if err != nil {
				return 0, err
			}
			if !ok {
				return 0, fmt.Errorf("%w: entity system %d has no user profile", ErrNoPlayer, systems[0])
			}
			return id, nil
		default:
			return 0, fmt.Errorf("%w: %d candidates of class %s", ErrNoPlayer, len(systems), class)
		}
	}
	return 0, ErrNoPlayer
}

func (r *Resolver) UserName(ctx context.Context, userProfileID int64) (string, bool, error) {
	return r.store.UserName(ctx, userProfileID)
}

// Zones returns one zone per base element of the player's bases whose asset
// has a rule in the current configuration. Elements are visited in the
// order the store returns them.
func (r *Resolver) Zones(ctx context.Context, userProfileID int64) ([]Zone, error) {
	rules := r.rules.Load().Rules()

	bases, err := r.store.BasesOwnedBy(ctx, userProfileID)
	if err != nil {
		return nil, err
	}
	if len(bases) == 0 {
		return []Zone{}, nil
	}

	elements, err := r.store.BaseElements(ctx, bases)
	if err != nil {
		return nil, err
	}

	zones := make([]Zone, 0, len(elements))
	for _, e := range elements {
		rule, ok := rules[e.Asset]
		if !ok {
			continue
		}
		zones = append(zones, newZone(e, rule))
	}
	return zones, nil
}

func newZone(e store.BaseElement, rule config.ZoneRule) Zone {
	z := Zone{X: e.X, Y: e.Y, Asset: e.Asset, Radius: rule.Radius, Shape: rule.Shape}
	if z.Radius == 0 {
		z.Radius = config.DefaultRadius
	}
	if z.Shape == "" {
		z.Shape = config.DefaultShape
	}
	return z
}
