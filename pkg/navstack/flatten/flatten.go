package flatten

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
)

// Options configures a Flattener.
type Options struct {
	// Durations assigns an animation length to each transition type.
	// Missing entries yield zero-length animations.
	Durations map[TransitionType]time.Duration
}

// DefaultOptions returns the standard transition durations.
func DefaultOptions() Options {
	return Options{
		Durations: map[TransitionType]time.Duration{
			TransitionPush:      constants.DefaultPushDuration,
			TransitionPop:       constants.DefaultPopDuration,
			TransitionTabSwitch: constants.DefaultTabSwitchDuration,
			TransitionCrossFade: constants.DefaultCrossFadeDuration,
		},
	}
}

// Flattener turns navigation trees into ordered surface lists. It holds no
// state between passes; one value may be shared freely.
type Flattener struct {
	opts Options
}

// New creates a Flattener.
func New(opts Options) *Flattener {
	return &Flattener{opts: opts}
}

var defaultFlattener = New(DefaultOptions())

// Flatten flattens current against previous using DefaultOptions.
func Flatten(current, previous *navnode.Tree) *Result {
	return defaultFlattener.Flatten(current, previous)
}

// Flatten produces the surface list for current. previous is the tree of the
// prior pass, or nil on the first pass. Identical inputs always produce
// identical results.
func (f *Flattener) Flatten(current, previous *navnode.Tree) *Result {
	p := &pass{
		opts:        f.opts,
		prev:        previous,
		cacheable:   make(map[string]RenderingMode),
		invalidated: make(map[string]RenderingMode),
		levelCount:  make(map[int]int),
	}

	root := current.Root()
	ctx := frame{}
	if previous != nil {
		prevRoot := previous.Root()
		if prevRoot.Key() != root.Key() {
			if id := entrySurfaceID(prevRoot); id != "" {
				ctx.previous = id
				ctx.transition = TransitionCrossFade
			}
			if prevRoot.Kind() != root.Kind() {
				p.cross = true
			}
		}
	}

	p.visit(root, ctx)
	if p.back != nil {
		p.markCacheable(p.back.edge.PreviousID, p.back.mode)
	}

	slices.SortStableFunc(p.surfaces, func(a, b Surface) int {
		return cmp.Compare(a.ZOrder, b.ZOrder)
	})

	return &Result{
		Surfaces:       p.surfaces,
		AnimationPairs: p.pairs,
		Hints:          p.hints(),
		Back:           p.backEdge(),
	}
}

// frame is the context handed from a node to its children.
type frame struct {
	parent     string
	previous   string
	transition TransitionType
	depth      int
	stacks     int // enclosing stacks at the same depth
}

// containerChange classifies how a Tab or Pane relates to the prior tree.
type containerChange int

const (
	changeInitial containerChange = iota // no prior tree
	changeEntry                          // was not reachable, or was another kind
	changeSame                           // reachable before under the same kind
)

type pass struct {
	opts Options
	prev *navnode.Tree

	surfaces    []Surface
	pairs       []AnimationPair
	cacheable   map[string]RenderingMode
	invalidated map[string]RenderingMode
	levelCount  map[int]int
	cross       bool
	back        *backCandidate
}

// backCandidate is the deepest back edge seen so far in a pass.
type backCandidate struct {
	edge          BackEdge
	mode          RenderingMode
	depth, stacks int
}

// offerBack keeps the edge of the deepest stack. A stack nested directly in
// another wins over it; of two at the same level the first one visited wins.
func (p *pass) offerBack(c backCandidate) {
	if b := p.back; b != nil && (c.depth < b.depth || c.depth == b.depth && c.stacks <= b.stacks) {
		return
	}
	p.back = &c
}

func (p *pass) backEdge() *BackEdge {
	if p.back == nil {
		return nil
	}
	edge := p.back.edge
	return &edge
}

func (p *pass) visit(n navnode.Node, ctx frame) {
	switch node := n.(type) {
	case navnode.Screen:
		p.visitScreen(node, ctx)
	case navnode.Stack:
		p.visitStack(node, ctx)
	case navnode.Tab:
		p.visitTab(node, ctx)
	case navnode.Pane:
		p.visitPane(node, ctx)
	default:
		// Trees are validated on construction, so this is unreachable.
		panic(fmt.Sprintf("flatten: unsupported node %T", n))
	}
}

func (p *pass) visitScreen(n navnode.Screen, ctx frame) {
	s := Surface{
		ID:              n.NodeKey,
		ZOrder:          p.z(ctx.depth),
		NodeType:        navnode.KindScreen,
		Mode:            ModeContent,
		ParentWrapperID: ctx.parent,
		Metadata: map[string]string{
			constants.MetaKind:        navnode.KindScreen.String(),
			constants.MetaKey:         n.NodeKey,
			constants.MetaDestination: n.Destination,
		},
	}
	p.animateFrom(&s, ctx.previous, ctx.transition)
	p.emit(s)
	p.markCacheable(s.ID, ModeContent)
}

func (p *pass) visitStack(n navnode.Stack, ctx frame) {
	active, ok := n.Active()
	if !ok {
		return
	}

	child := ctx
	if prevStack, ok := p.prevReachable(n.NodeKey).(navnode.Stack); ok {
		if prevActive, ok := prevStack.Active(); ok && prevActive.Key() != active.Key() {
			if id := entrySurfaceID(prevActive); id != "" {
				child.previous = id
				child.transition = stackTransition(prevStack, n, prevActive, active)
			}
			if prevActive.Kind() != active.Kind() {
				p.cross = true
			}
		}
	}

	if n.ActiveIndex >= 1 {
		below := n.Children[n.ActiveIndex-1]
		current, previous := entrySurfaceID(active), entrySurfaceID(below)
		if current != "" && previous != "" {
			p.offerBack(backCandidate{
				edge:   BackEdge{CurrentID: current, PreviousID: previous},
				mode:   entryMode(below),
				depth:  ctx.depth,
				stacks: ctx.stacks,
			})
		}
	}

	child.stacks++
	p.visit(active, child)
}

func stackTransition(prev, cur navnode.Stack, prevActive, active navnode.Node) TransitionType {
	if prevActive.Kind() != active.Kind() {
		return TransitionCrossFade
	}
	switch {
	case cur.ActiveIndex > prev.ActiveIndex:
		return TransitionPush
	case cur.ActiveIndex < prev.ActiveIndex:
		return TransitionPop
	default:
		return TransitionCrossFade
	}
}

func (p *pass) visitTab(n navnode.Tab, ctx frame) {
	wrapperID := navnode.WrapperID(n.NodeKey)
	contentID := navnode.TabContentID(n.NodeKey, n.ActiveIndex)

	change, prevNode := p.classify(n)
	prevBranch := -1
	switch change {
	case changeInitial:
		if i, ok := n.Previous(); ok {
			prevBranch = i
		}
	case changeSame:
		prevBranch = prevNode.(navnode.Tab).ActiveIndex
	}
	switched := prevBranch >= 0 && prevBranch != n.ActiveIndex

	p.emitWrapper(n, wrapperID, ctx, change, switched)

	content := Surface{
		ID:              contentID,
		ZOrder:          p.z(ctx.depth + 1),
		NodeType:        navnode.KindTab,
		Mode:            ModeContent,
		ParentWrapperID: wrapperID,
		Metadata: map[string]string{
			constants.MetaKind:      navnode.KindTab.String(),
			constants.MetaKey:       n.NodeKey,
			constants.MetaContainer: n.NodeKey,
			constants.MetaBranch:    strconv.Itoa(n.ActiveIndex),
		},
	}
	if switched {
		deactivated := navnode.TabContentID(n.NodeKey, prevBranch)
		p.animateFrom(&content, deactivated, TransitionTabSwitch)
		p.markInvalidated(deactivated, ModeContent)
	}
	p.emit(content)
	p.markCacheable(contentID, ModeContent)

	p.visit(n.Active(), frame{parent: contentID, depth: ctx.depth + 2})
}

func (p *pass) visitPane(n navnode.Pane, ctx frame) {
	wrapperID := navnode.WrapperID(n.NodeKey)

	change, prevNode := p.classify(n)
	p.emitWrapper(n, wrapperID, ctx, change, false)

	if change == changeSame {
		for _, slot := range prevNode.(navnode.Pane).VisibleSlots() {
			if !slotVisible(n, slot.Role) {
				p.markInvalidated(navnode.PaneContentID(n.NodeKey, slot.Role), ModeContent)
			}
		}
	}

	for _, slot := range n.VisibleSlots() {
		contentID := navnode.PaneContentID(n.NodeKey, slot.Role)
		p.emit(Surface{
			ID:              contentID,
			ZOrder:          p.z(ctx.depth + 1),
			NodeType:        navnode.KindPane,
			Mode:            ModeContent,
			ParentWrapperID: wrapperID,
			Animation:       p.spec(TransitionNone),
			Metadata: map[string]string{
				constants.MetaKind:      navnode.KindPane.String(),
				constants.MetaKey:       n.NodeKey,
				constants.MetaContainer: n.NodeKey,
				constants.MetaRole:      slot.Role.String(),
			},
		})
		p.markCacheable(contentID, ModeContent)
		p.visit(slot.Node, frame{parent: contentID, depth: ctx.depth + 2})
	}
}

// emitWrapper emits the chrome surface of a Tab or Pane. On entry the
// wrapper takes over the incoming transition and is recached; otherwise it
// is reused as is and never animates.
func (p *pass) emitWrapper(n navnode.Node, id string, ctx frame, change containerChange, switched bool) {
	w := Surface{
		ID:              id,
		ZOrder:          p.z(ctx.depth),
		NodeType:        n.Kind(),
		Mode:            ModeWrapper,
		ParentWrapperID: ctx.parent,
		Animation:       p.spec(TransitionNone),
		Metadata: map[string]string{
			constants.MetaKind: n.Kind().String(),
			constants.MetaKey:  n.Key(),
		},
	}

	switch change {
	case changeEntry:
		p.cross = true
		p.animateFrom(&w, ctx.previous, ctx.transition)
		p.markCacheable(id, ModeWrapper)
	case changeInitial:
		if !switched {
			p.markCacheable(id, ModeWrapper)
		}
	}
	p.emit(w)
}

// classify compares a container against the prior tree.
func (p *pass) classify(n navnode.Node) (containerChange, navnode.Node) {
	if p.prev == nil {
		return changeInitial, nil
	}
	prev := p.prevReachable(n.Key())
	if prev == nil || prev.Kind() != n.Kind() {
		return changeEntry, nil
	}
	return changeSame, prev
}

func (p *pass) prevReachable(key string) navnode.Node {
	if p.prev == nil {
		return nil
	}
	e, ok := p.prev.Entry(key)
	if !ok || !e.Reachable {
		return nil
	}
	return e.Node
}

func (p *pass) animateFrom(s *Surface, previous string, t TransitionType) {
	if previous == "" || t == TransitionNone {
		s.Animation = p.spec(TransitionNone)
		return
	}
	s.PreviousSurfaceID = previous
	s.Animation = p.spec(t)
	p.pairs = append(p.pairs, AnimationPair{CurrentID: s.ID, PreviousID: previous, Type: t})
}

func (p *pass) spec(t TransitionType) AnimationSpec {
	return AnimationSpec{Type: t, Duration: p.opts.Durations[t]}
}

func (p *pass) emit(s Surface) {
	p.surfaces = append(p.surfaces, s)
}

// z hands out the next z-order at depth. Each depth owns a band of
// ZLevelStep values, so deeper surfaces always sort above shallower ones.
func (p *pass) z(depth int) int {
	z := depth*constants.ZLevelStep + p.levelCount[depth]
	p.levelCount[depth]++
	return z
}

func (p *pass) markCacheable(id string, mode RenderingMode) {
	p.cacheable[id] = mode
}

func (p *pass) markInvalidated(id string, mode RenderingMode) {
	p.invalidated[id] = mode
}

func slotVisible(p navnode.Pane, r navnode.Role) bool {
	for _, slot := range p.Slots {
		if slot.Role == r {
			return slot.Visible
		}
	}
	return false
}

// entrySurfaceID returns the id of the outermost surface n produces when
// flattened, or "" if it produces none.
func entrySurfaceID(n navnode.Node) string {
	switch node := n.(type) {
	case navnode.Screen:
		return node.NodeKey
	case navnode.Stack:
		if active, ok := node.Active(); ok {
			return entrySurfaceID(active)
		}
		return ""
	case navnode.Tab, navnode.Pane:
		return navnode.WrapperID(n.Key())
	default:
		return ""
	}
}

func entryMode(n navnode.Node) RenderingMode {
	switch node := n.(type) {
	case navnode.Stack:
		if active, ok := node.Active(); ok {
			return entryMode(active)
		}
		return ModeContent
	case navnode.Tab, navnode.Pane:
		return ModeWrapper
	default:
		return ModeContent
	}
}
