package chips

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInsufficientFunds is returned when a container holds less than the requested amount
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount is returned for negative amounts
var ErrInvalidAmount = errors.New("amount must not be negative")

// ErrStackNotFound is returned when a split refers to a stack that does not exist
var ErrStackNotFound = errors.New("stack not found")

// Kind describes what a container is used for
// Kinds only differ in how they are laid out, never in how they behave.
type Kind string

// Kind constants
const (
	KindFree Kind = "free"
	KindBet  Kind = "bet"
	KindRack Kind = "rack"
	KindHeld Kind = "held"
)

// Stack is a view of all chips of one denomination in a container
type Stack struct {
	Denomination int `json:"denomination"`
	Height       int `json:"height"`
}

// Value returns the total value of the stack
func (s Stack) Value() int {
	return s.Denomination * s.Height
}

// Container is an unordered collection of chips
type Container struct {
	Kind Kind
	Name string

	chips         []Chip
	denominations Denominations
}

// NewContainer returns an empty container
func NewContainer(kind Kind, name string, denominations Denominations) *Container {
	if denominations == nil {
		denominations = DefaultDenominations
	}

	return &Container{
		Kind:          kind,
		Name:          name,
		chips:         make([]Chip, 0),
		denominations: denominations,
	}
}

func (c *Container) String() string {
	return fmt.Sprintf("%s:%s($%d)", c.Kind, c.Name, c.Total())
}

// Total returns the value of every chip in the container
func (c *Container) Total() int {
	return ChipsToCash(c.chips)
}

// Len returns the number of chips
func (c *Container) Len() int {
	return len(c.chips)
}

// IsEmpty returns true if the container has no chips
func (c *Container) IsEmpty() bool {
	return len(c.chips) == 0
}

// Chips returns a copy of the chips in the container
func (c *Container) Chips() []Chip {
	chips := make([]Chip, len(c.chips))
	copy(chips, c.chips)
	return chips
}

// Deposit adds chips to the container
func (c *Container) Deposit(chips ...Chip) {
	c.chips = append(c.chips, chips...)
}

// Withdraw removes chips worth exactly amount
// The remaining chips are re-denominated into canonical chips for (total - amount), and the
// returned chips are the canonical chips for amount. The container is unchanged on error.
func (c *Container) Withdraw(amount int) ([]Chip, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	total := c.Total()
	if amount > total {
		return nil, fmt.Errorf("cannot withdraw $%d from %s: %w", amount, c, ErrInsufficientFunds)
	}

	c.chips = c.denominations.CashToChips(total - amount)
	return c.denominations.CashToChips(amount), nil
}

// TakeAll empties the container and returns its chips
func (c *Container) TakeAll() []Chip {
	chips := c.chips
	c.chips = make([]Chip, 0)
	return chips
}

// Stacks returns a height-ordered view of the container, largest denomination first
func (c *Container) Stacks() []Stack {
	heights := make(map[int]int)
	for _, chip := range c.chips {
		heights[chip.Denomination]++
	}

	stacks := make([]Stack, 0, len(heights))
	for denomination, height := range heights {
		stacks = append(stacks, Stack{
			Denomination: denomination,
			Height:       height,
		})
	}

	sort.Slice(stacks, func(i, j int) bool {
		return stacks[i].Denomination > stacks[j].Denomination
	})

	return stacks
}

// SplitAt removes every chip at or above index in the stack of the given denomination
// Index 0 is the bottom of the stack, so SplitAt(d, 0) lifts the whole stack.
func (c *Container) SplitAt(denomination, index int) ([]Chip, error) {
	height := 0
	for _, chip := range c.chips {
		if chip.Denomination == denomination {
			height++
		}
	}

	if height == 0 {
		return nil, fmt.Errorf("no $%d stack in %s: %w", denomination, c, ErrStackNotFound)
	}

	if index < 0 || index >= height {
		return nil, fmt.Errorf("index %d outside $%d stack of height %d: %w", index, denomination, height, ErrStackNotFound)
	}

	keep := make([]Chip, 0, len(c.chips))
	extracted := make([]Chip, 0, height-index)
	position := 0
	for _, chip := range c.chips {
		if chip.Denomination != denomination {
			keep = append(keep, chip)
			continue
		}

		if position >= index {
			extracted = append(extracted, chip)
		} else {
			keep = append(keep, chip)
		}
		position++
	}

	c.chips = keep
	return extracted, nil
}

// Transfer withdraws amount from one container and deposits it into another
func Transfer(from, to *Container, amount int) error {
	chips, err := from.Withdraw(amount)
	if err != nil {
		return err
	}

	to.Deposit(chips...)
	return nil
}

// MoveAll moves every chip from one container into another and returns the value moved
func MoveAll(from, to *Container) int {
	chips := from.TakeAll()
	to.Deposit(chips...)
	return ChipsToCash(chips)
}
