package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Caller is the identity a feed is personalised for. The zero value is anonymous.
type Caller struct {
	id int64
}

func Anonymous() Caller {
	return Caller{}
}

func UserCaller(id int64) Caller {
	if id <= 0 {
		return Caller{}
	}
	return Caller{id: id}
}

// ID returns the caller's user id and whether the caller is signed in.
func (c Caller) ID() (int64, bool) {
	return c.id, c.id > 0
}

func (c Caller) IsAuthor(authorID int64) bool {
	return c.id > 0 && c.id == authorID
}

// Reaction is the caller's own reaction to a row. Liked and disliked exclude each other.
type Reaction uint8

const (
	ReactionNone Reaction = iota
	ReactionLiked
	ReactionDisliked
)

func (r Reaction) String() string {
	switch r {
	case ReactionLiked:
		return "LIKED"
	case ReactionDisliked:
		return "DISLIKED"
	default:
		return "NONE"
	}
}

func (r Reaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Reaction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "LIKED":
		*r = ReactionLiked
	case "DISLIKED":
		*r = ReactionDisliked
	case "NONE", "":
		*r = ReactionNone
	default:
		return fmt.Errorf("unknown reaction %q", s)
	}
	return nil
}

// Signals are the derived per-row values of one page, keyed by row id.
type Signals[A, R any] struct {
	Aggregates map[int64]A
	Mine       map[int64]R
}

// LoadSignals runs the aggregate batch and, for a signed-in caller, the caller batch, once each
// for the whole page. Each batch resolves every id of the page in one round trip. Nothing is queried for an empty page; anonymous callers get an empty Mine.
func LoadSignals[A, R any](ctx context.Context, ids []int64, caller Caller,
	aggregates func(ctx context.Context, ids []int64) (map[int64]A, error),
	mine func(ctx context.Context, ids []int64, callerID int64) (map[int64]R, error),
) (Signals[A, R], error) {
	out := Signals[A, R]{
		Aggregates: map[int64]A{},
		Mine:       map[int64]R{},
	}
	if len(ids) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		agg, err := aggregates(gctx, ids)
		if err != nil {
			return fmt.Errorf("load aggregates: %w", err)
		}
		if agg != nil {
			out.Aggregates = agg
		}
		return nil
	})

	if callerID, ok := caller.ID(); ok && mine != nil {
		g.Go(func() error {
			m, err := mine(gctx, ids, callerID)
			if err != nil {
				return fmt.Errorf("load caller relations: %w", err)
			}
			if m != nil {
				out.Mine = m
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Signals[A, R]{}, err
	}
	return out, nil
}
