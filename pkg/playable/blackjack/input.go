package blackjack

import (
	"fmt"

	"casinotable/pkg/chips"
)

// Point is a logical position on the table, already adjusted for display scaling
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned region, Max is exclusive
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Contains returns true if the point is inside the rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Widget is anything laid out on the table
type Widget interface {
	Bounds() Rect
}

// Clickable widgets react to a pointer press
type Clickable interface {
	Widget
	Click(g *Game) error
}

// Hoverable widgets track whether the pointer is over them
type Hoverable interface {
	Widget
	SetHover(hovered bool)
	Hovered() bool
}

// DropTarget widgets accept held chips
type DropTarget interface {
	Widget
	AreaID() int
}

// Grabbable widgets let the pointer lift chips off a stack
type Grabbable interface {
	Widget
	Grab(p Point) (denomination int, index int)
}

// Button triggers a game action
type Button struct {
	Rect    Rect
	Action  Action
	hovered bool
}

// Bounds returns the button's region
func (b *Button) Bounds() Rect { return b.Rect }

// Click performs the button's action
func (b *Button) Click(g *Game) error {
	return g.Do(b.Action)
}

// SetHover sets the hover state
func (b *Button) SetHover(hovered bool) { b.hovered = hovered }

// Hovered returns the hover state
func (b *Button) Hovered() bool { return b.hovered }

// BetSpot is a betting area for one seat
type BetSpot struct {
	Rect    Rect
	Seat    int
	hovered bool
}

// Bounds returns the spot's region
func (b *BetSpot) Bounds() Rect { return b.Rect }

// AreaID returns the seat the spot belongs to
func (b *BetSpot) AreaID() int { return b.Seat }

// Click makes the spot the target of keyboard chip grabs
func (b *BetSpot) Click(g *Game) error {
	return g.SelectSeat(b.Seat)
}

// SetHover sets the hover state
func (b *BetSpot) SetHover(hovered bool) { b.hovered = hovered }

// Hovered returns the hover state
func (b *BetSpot) Hovered() bool { return b.hovered }

// ChipStack is one denomination column of the free pile
// Chips are drawn bottom-up, each ChipHeight tall.
type ChipStack struct {
	Rect         Rect
	Denomination int
	ChipHeight   int
}

// Bounds returns the stack's region
func (c *ChipStack) Bounds() Rect { return c.Rect }

// Grab returns the chip index under the pointer, counted from the bottom
func (c *ChipStack) Grab(p Point) (int, int) {
	height := c.ChipHeight
	if height <= 0 {
		height = 1
	}

	return c.Denomination, (c.Rect.Max.Y - 1 - p.Y) / height
}

// Layout is the set of widgets on the table, topmost last
type Layout struct {
	Widgets []Widget
}

// DefaultLayout returns a simple geometry for the given seats and denominations
// Chip stacks sit along the bottom edge, betting spots across the middle and buttons on the right.
func DefaultLayout(seats int, denominations []int) *Layout {
	l := &Layout{}
	for i, denomination := range denominations {
		x := 20 + i*60
		l.Widgets = append(l.Widgets, &ChipStack{
			Rect:         Rect{Min: Point{X: x, Y: 400}, Max: Point{X: x + 50, Y: 600}},
			Denomination: denomination,
			ChipHeight:   4,
		})
	}

	for seat := 0; seat < seats; seat++ {
		x := 120 + seat*200
		l.Widgets = append(l.Widgets, &BetSpot{
			Rect: Rect{Min: Point{X: x, Y: 250}, Max: Point{X: x + 120, Y: 350}},
			Seat: seat,
		})
	}

	buttons := []Action{ActionDeal, ActionHit, ActionStand, ActionDouble, ActionSplit, ActionRepeatBet, ActionChangeBet, ActionClearBets, ActionExit}
	for i, action := range buttons {
		y := 20 + i*45
		l.Widgets = append(l.Widgets, &Button{
			Rect:   Rect{Min: Point{X: 700, Y: y}, Max: Point{X: 790, Y: y + 40}},
			Action: action,
		})
	}

	return l
}

// At returns the topmost widget at the point
func (l *Layout) At(p Point) Widget {
	for i := len(l.Widgets) - 1; i >= 0; i-- {
		if l.Widgets[i].Bounds().Contains(p) {
			return l.Widgets[i]
		}
	}

	return nil
}

func (l *Layout) dropTargetAt(p Point) (DropTarget, bool) {
	for i := len(l.Widgets) - 1; i >= 0; i-- {
		if target, ok := l.Widgets[i].(DropTarget); ok && target.Bounds().Contains(p) {
			return target, true
		}
	}

	return nil, false
}

// Key is a keyboard key
type Key rune

// Special keys
const (
	KeyTab    Key = '\t'
	KeyEnter  Key = '\r'
	KeyEscape Key = 27
	KeySpace  Key = ' '
)

// chipKeys maps number keys to the chip grabbed onto the active seat
var chipKeys = map[Key]int{
	'1': 1,
	'2': 5,
	'3': 10,
	'4': 25,
	'5': 100,
}

// HandleKey performs the action bound to a key
func (g *Game) HandleKey(key Key) error {
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}

	if amount, ok := chipKeys[key]; ok {
		return g.Bet(g.selectedSeat, amount)
	}

	switch key {
	case 'h':
		return g.Do(ActionHit)
	case 's':
		return g.Do(ActionStand)
	case 'd':
		return g.Do(ActionDouble)
	case 'p':
		return g.Do(ActionSplit)
	case KeySpace, KeyEnter, '\n':
		return g.Do(ActionDeal)
	case 'r':
		return g.Do(ActionRepeatBet)
	case 'c':
		return g.Do(ActionChangeBet)
	case 'u':
		return g.Do(ActionClearBets)
	case KeyTab:
		return g.SelectSeat((g.selectedSeat + 1) % g.options.Seats)
	case 'q', KeyEscape:
		return g.Do(ActionExit)
	case 'y':
		return g.Do(ActionConfirmExit)
	case 'n':
		return g.Do(ActionCancelExit)
	}

	return fmt.Errorf("no action bound to key %q", rune(key))
}

// HandlePointerDown picks up chips or clicks whatever is under the pointer
func (g *Game) HandlePointerDown(p Point) error {
	g.pointer = p
	widget := g.layout.At(p)
	if widget == nil {
		return nil
	}

	if grabbable, ok := widget.(Grabbable); ok {
		denomination, index := grabbable.Grab(p)
		return g.pickUp(denomination, index)
	}

	if clickable, ok := widget.(Clickable); ok {
		return clickable.Click(g)
	}

	return nil
}

// HandlePointerUp drops any held chips
func (g *Game) HandlePointerUp(p Point) error {
	g.pointer = p
	if g.held.IsEmpty() {
		return nil
	}

	if target, ok := g.layout.dropTargetAt(p); ok {
		return g.events.Publish(BetAreaHit{AreaID: target.AreaID(), Chips: g.held.Chips()})
	}

	return g.events.Publish(StackDropped{Position: p, Chips: g.held.Chips()})
}

// HandlePointerMove updates hover state
func (g *Game) HandlePointerMove(p Point) {
	g.pointer = p
	for _, widget := range g.layout.Widgets {
		if hoverable, ok := widget.(Hoverable); ok {
			hoverable.SetHover(hoverable.Bounds().Contains(p))
		}
	}
}

func (g *Game) pickUp(denomination, index int) error {
	if err := g.checkAction(ActionBet); err != nil {
		return err
	}

	if !g.held.IsEmpty() {
		return nil
	}

	// clamp to the top chip so a click above a short stack still lifts something
	for _, stack := range g.free.Stacks() {
		if stack.Denomination == denomination && index >= stack.Height {
			index = stack.Height - 1
		}
	}

	if index < 0 {
		index = 0
	}

	lifted, err := g.free.SplitAt(denomination, index)
	if err != nil {
		return err
	}

	g.held.Deposit(lifted...)
	return g.events.Publish(StackPickedUp{Denomination: denomination, Index: index, Chips: lifted})
}

// onEvent moves held chips in response to drag events
func (g *Game) onEvent(event Event) error {
	switch e := event.(type) {
	case BetAreaHit:
		hand, err := g.seatHand(e.AreaID)
		if err != nil {
			chips.MoveAll(g.held, g.free)
			return err
		}

		if err := g.checkMaxBet(hand, g.held.Total()); err != nil {
			chips.MoveAll(g.held, g.free)
			return err
		}

		chips.MoveAll(g.held, hand.Bet)
		g.selectedSeat = e.AreaID
	case StackDropped:
		chips.MoveAll(g.held, g.free)
	}

	return nil
}
