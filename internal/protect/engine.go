// Package protect runs the scan-and-protect loop over the save database.
package protect

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"scumguard/internal/status"
	"scumguard/internal/store"
	"scumguard/internal/zone"
)

// UnknownPlayer is reported when no acting player resolves.
const UnknownPlayer = "N/A"

type Store interface {
	ExpiringItems(ctx context.Context) ([]int64, error)
	ItemPositions(ctx context.Context, itemIDs []int64) (map[int64]store.Position, error)
	ClearCanExpire(ctx context.Context, itemIDs []int64) (int64, error)
}

type Resolver interface {
	UserProfileID(ctx context.Context) (int64, error)
	UserName(ctx context.Context, userProfileID int64) (string, bool, error)
	Zones(ctx context.Context, userProfileID int64) ([]zone.Zone, error)
}

type StatusWriter interface {
	Update(f status.Fields) error
}

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Result is the outcome of one scan. Err set means the scan stopped at the
// failing step; the loop carries on regardless.
type Result struct {
	Player    string
	Zones     int
	Expiring  int
	Located   int
	Protected int64
	Err       error
}

type Engine struct {
	store    Store
	resolver Resolver
	status   StatusWriter
	log      logrus.FieldLogger
	interval time.Duration

	state atomic.Int32
}

func New(s Store, r Resolver, w StatusWriter, log logrus.FieldLogger, interval time.Duration) *Engine {
	return &Engine{
		store:    s,
		resolver: r,
		status:   w,
		log:      log.WithField("component", "protect"),
		interval: interval,
	}
}

func (e *Engine) State() State {
	return State(e.state.Load())
}

// Run scans until ctx is done. Cancellation is checked before each scan and
// right after it; a scan already under way runs to completion and a pending
// sleep is cut short. Scan failures are logged and never end the loop.
func (e *Engine) Run(ctx context.Context) error {
	e.state.Store(int32(StateRunning))
	defer e.state.Store(int32(StateStopped))

	for {
		if ctx.Err() != nil {
			e.state.Store(int32(StateStopping))
			return nil
		}

		res := e.Iterate(context.WithoutCancel(ctx))
		if ctx.Err() != nil {
			e.state.Store(int32(StateStopping))
			return nil
		}
		if res.Err != nil {
			e.log.WithError(res.Err).Errorf("[ERROR] %v", res.Err)
		}

		select {
		case <-ctx.Done():
			e.state.Store(int32(StateStopping))
			return nil
		case <-time.After(e.interval):
		}
	}
}

// Iterate performs one read, test, write and report pass.
func (e *Engine) Iterate(ctx context.Context) Result {
	res := Result{Player: UnknownPlayer}

	ids, err := e.store.ExpiringItems(ctx)
	if err != nil {
		res.Err = fmt.Errorf("fetching expiring items: %w", err)
		return res
	}
	res.Expiring = len(ids)

	positions, err := e.store.ItemPositions(ctx, ids)
	if err != nil {
		res.Err = fmt.Errorf("fetching item positions: %w", err)
		return res
	}
	res.Located = len(positions)

	zones, err := e.playerZones(ctx, &res)
	if err != nil {
		res.Err = err
		return res
	}
	res.Zones = len(zones)

	protected := ProtectedItems(positions, zones)
	n, err := e.store.ClearCanExpire(ctx, protected)
	if err != nil {
		res.Err = fmt.Errorf("clearing can_expire: %w", err)
		return res
	}
	res.Protected = n
	if len(protected) > 0 {
		e.log.Infof("[Save] %d Items have been saved!", n)
	}

	if err := e.status.Update(status.Fields{PlayerName: &res.Player, ZoneCount: &res.Zones}); err != nil {
		e.log.WithError(err).Warn("[LOGIC] Error writing data.ini")
	}

	return res
}

func (e *Engine) playerZones(ctx context.Context, res *Result) ([]zone.Zone, error) {
	profileID, err := e.resolver.UserProfileID(ctx)
	if errors.Is(err, zone.ErrNoPlayer) {
		e.log.WithError(err).Debug("no acting player")
		return []zone.Zone{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving player: %w", err)
	}

	name, ok, err := e.resolver.UserName(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("resolving player name: %w", err)
	}
	if ok {
		res.Player = name
	}

	zones, err := e.resolver.Zones(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("resolving zones: %w", err)
	}
	return zones, nil
}

// ProtectedItems returns, in ascending order, the ids whose position falls
// inside at least one zone.
func ProtectedItems(positions map[int64]store.Position, zones []zone.Zone) []int64 {
	if len(zones) == 0 {
		return nil
	}
	var ids []int64
	for id, pos := range positions {
		if _, ok := zone.FirstContaining(zones, pos.X, pos.Y); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
