package scene

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BrandonKowalski/navstack/pkg/navstack/cache"
	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	naverrors "github.com/BrandonKowalski/navstack/pkg/navstack/errors"
	"github.com/BrandonKowalski/navstack/pkg/navstack/flatten"
	"github.com/BrandonKowalski/navstack/pkg/navstack/gesture"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
	"github.com/BrandonKowalski/navstack/pkg/navstack/wrapper"
)

// Scene renders successive navigation trees through a surface cache.
// It is not safe for concurrent use; call it from the render thread only.
type Scene struct {
	content   ContentResolver
	wrappers  wrapper.Resolver
	layout    wrapper.DefaultLayout
	flattener *flatten.Flattener
	surfaces  *cache.Cache
	logger    *slog.Logger
	width     float64

	gestureOpts []gesture.Option
	back        *gesture.Controller

	tree     *navnode.Tree
	result   *flatten.Result
	previous *flatten.Result

	pairLocks []string
	settled   bool
}

// Option configures a Scene.
type Option func(*Scene)

// WithWrappers sets the wrapper resolver. Without one every container uses
// the default layout.
func WithWrappers(r wrapper.Resolver) Option {
	return func(s *Scene) {
		s.wrappers = r
	}
}

// WithLayout sets the default layout, which decides pane slot visibility.
func WithLayout(l wrapper.DefaultLayout) Option {
	return func(s *Scene) {
		s.layout = l
	}
}

// WithFlattener replaces the default flattener.
func WithFlattener(f *flatten.Flattener) Option {
	return func(s *Scene) {
		s.flattener = f
	}
}

// WithCache sets the surface cache. Defaults to a new cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Scene) {
		s.surfaces = c
	}
}

// WithGesture passes options to the back gesture controller.
func WithGesture(opts ...gesture.Option) Option {
	return func(s *Scene) {
		s.gestureOpts = append(s.gestureOpts, opts...)
	}
}

// WithWidth sets the horizontal travel of push and pop transitions.
func WithWidth(width float64) Option {
	return func(s *Scene) {
		s.width = width
	}
}

// WithLogger sets the logger. Defaults to the navstack internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scene) {
		s.logger = logger
	}
}

// New creates an empty Scene resolving destinations through content.
func New(content ContentResolver, opts ...Option) *Scene {
	s := &Scene{
		content: content,
		width:   constants.DefaultBackWidth,
		settled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = internal.GetInternalLogger()
	}
	if s.flattener == nil {
		s.flattener = flatten.New(flatten.DefaultOptions())
	}
	if s.surfaces == nil {
		s.surfaces = cache.New(cache.WithLogger(s.logger))
	}
	s.back = gesture.New(s.surfaces, append([]gesture.Option{gesture.WithLogger(s.logger)}, s.gestureOpts...)...)
	return s
}

// Tree returns the tree of the last successful Apply, or nil.
func (s *Scene) Tree() *navnode.Tree { return s.tree }

// Result returns the flatten result of the last successful Apply, or nil.
func (s *Scene) Result() *flatten.Result { return s.result }

// Cache returns the surface cache.
func (s *Scene) Cache() *cache.Cache { return s.surfaces }

// Gesture returns the back gesture controller.
func (s *Scene) Gesture() *gesture.Controller { return s.back }

// Apply makes tree the current navigation state. It checks that every
// reachable screen has content, flattens tree against the prior one, renders
// surfaces the cache does not hold yet, moves transition locks to the new
// animation pairs and reconciles the cache.
//
// On error the scene keeps its prior tree and result, and output rendered
// by the failed call is dropped from the cache.
func (s *Scene) Apply(tree *navnode.Tree) (*flatten.Result, error) {
	if err := s.checkContent(tree); err != nil {
		return nil, err
	}

	result := s.flattener.Flatten(tree, s.tree)

	var created []string
	for _, surface := range result.Surfaces {
		fresh, err := s.materialize(tree, surface)
		if err != nil {
			for _, id := range created {
				s.surfaces.Discard(id)
			}
			return nil, fmt.Errorf("render surface %q: %w", surface.ID, err)
		}
		if fresh {
			created = append(created, surface.ID)
		}
	}

	locks := s.lockPairs(result.AnimationPairs)
	s.releasePairs()
	s.pairLocks = locks
	s.settled = len(result.AnimationPairs) == 0

	evicted := s.surfaces.Reconcile(result.LiveSet(), result.Hints)

	s.previous, s.result, s.tree = s.result, result, tree
	s.reconcileGesture()

	s.logger.Debug("navigation state applied",
		"surfaces", len(result.Surfaces),
		"pairs", len(result.AnimationPairs),
		"evicted", evicted,
		"cross_node", result.Hints.IsCrossNodeTypeNavigation,
	)
	return result, nil
}

// SettleTransitions marks the transitions of the last Apply as finished and
// releases the locks that kept their outgoing surfaces alive.
func (s *Scene) SettleTransitions() {
	s.releasePairs()
	s.settled = true
	if s.result != nil {
		s.surfaces.Reconcile(s.result.LiveSet(), s.result.Hints)
	}
}

// Settled reports whether no transition is in flight.
func (s *Scene) Settled() bool {
	return s.settled
}

// Close aborts any gesture, drops every lock and destroys all cached output.
func (s *Scene) Close() {
	s.back.Abort()
	s.releasePairs()
	s.settled = true
	s.surfaces.Destroy()
}

func (s *Scene) checkContent(tree *navnode.Tree) error {
	for _, screen := range tree.ReachableScreens() {
		if _, ok := s.content.Resolve(screen.Destination); !ok {
			return naverrors.NewMissingContentError(screen.NodeKey, screen.Destination)
		}
	}
	return nil
}

// materialize makes sure the cache holds output for surface. Existing
// output is reused as is. Reports whether a new entry was rendered.
func (s *Scene) materialize(tree *navnode.Tree, surface flatten.Surface) (bool, error) {
	fresh := false
	_, err := s.surfaces.GetOrCreate(surface.ID, func() (any, error) {
		fresh = true
		return s.render(tree, surface)
	})
	return fresh && err == nil, err
}

func (s *Scene) render(tree *navnode.Tree, surface flatten.Surface) (any, error) {
	key := surface.Metadata[constants.MetaKey]
	n, ok := tree.Lookup(key)
	if !ok {
		return nil, naverrors.NewDefectError("render", surface.ID, naverrors.ErrUnknownEntry)
	}

	switch {
	case surface.Mode == flatten.ModeWrapper:
		return wrapper.RenderWith(s.wrappers, s.layout, n)
	case surface.NodeType == navnode.KindScreen:
		return s.renderScreen(n.(navnode.Screen))
	default:
		return Region{
			Container: key,
			Branch:    surface.Metadata[constants.MetaBranch],
			Role:      surface.Metadata[constants.MetaRole],
		}, nil
	}
}

func (s *Scene) renderScreen(screen navnode.Screen) (any, error) {
	fn, ok := s.content.Resolve(screen.Destination)
	if !ok {
		return nil, naverrors.NewMissingContentError(screen.NodeKey, screen.Destination)
	}
	return fn(screen)
}

// renderEntry renders the entry surface id of a node that may not be on the
// active path, such as the surface beneath the top of a back stack.
func (s *Scene) renderEntry(id string) error {
	_, err := s.surfaces.GetOrCreate(id, func() (any, error) {
		if n, ok := s.tree.Lookup(id); ok {
			if screen, ok := n.(navnode.Screen); ok {
				return s.renderScreen(screen)
			}
		}
		if key, ok := strings.CutSuffix(id, constants.WrapperSuffix); ok {
			if n, ok := s.tree.Lookup(key); ok {
				return wrapper.RenderWith(s.wrappers, s.layout, n)
			}
		}
		return nil, naverrors.NewDefectError("render", id, naverrors.ErrUnknownEntry)
	})
	return err
}

// lockPairs locks both sides of every pair whose output is cached. Previous
// surfaces of a first pass have no output and are skipped.
func (s *Scene) lockPairs(pairs []flatten.AnimationPair) []string {
	var locked []string
	for _, pair := range pairs {
		for _, id := range []string{pair.CurrentID, pair.PreviousID} {
			if _, ok := s.surfaces.Get(id); ok {
				s.surfaces.Lock(id)
				locked = append(locked, id)
			}
		}
	}
	return locked
}

func (s *Scene) releasePairs() {
	for _, id := range s.pairLocks {
		s.surfaces.Unlock(id)
	}
	s.pairLocks = nil
}

// reconcileGesture aborts a tracking gesture whose surfaces no longer form
// the back edge of the current result. Committing and cancelling gestures
// run to completion on their own.
func (s *Scene) reconcileGesture() {
	st := s.back.State()
	if st.Phase != gesture.PhaseTracking {
		return
	}
	edge := s.result.Back
	if edge != nil && edge.CurrentID == st.CurrentKey && edge.PreviousID == st.PreviousKey {
		return
	}
	s.logger.Debug("back gesture aborted by navigation", "current", st.CurrentKey, "previous", st.PreviousKey)
	s.back.Abort()
}
