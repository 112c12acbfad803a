package chips

import (
	"errors"
	"fmt"
)

// ErrContainerNotEmpty is returned when a container holding chips is unregistered
var ErrContainerNotEmpty = errors.New("container is not empty")

// Economy keeps the ledger for every container taking part in a round
// Chips only enter through CashIn and only leave through CashOut or PayCommission.
type Economy struct {
	denominations Denominations
	containers    []*Container

	cashIn     int
	cashOut    int
	commission int
}

// NewEconomy returns an empty ledger
func NewEconomy(denominations Denominations) *Economy {
	if denominations == nil {
		denominations = DefaultDenominations
	}

	return &Economy{
		denominations: denominations,
	}
}

// Denominations returns the denominations used by the economy
func (e *Economy) Denominations() Denominations {
	return e.denominations
}

// NewContainer creates and registers a container
func (e *Economy) NewContainer(kind Kind, name string) *Container {
	c := NewContainer(kind, name, e.denominations)
	e.containers = append(e.containers, c)
	return c
}

// Register adds containers to the ledger
func (e *Economy) Register(containers ...*Container) {
	e.containers = append(e.containers, containers...)
}

// Unregister removes an empty container from the ledger
func (e *Economy) Unregister(c *Container) error {
	if !c.IsEmpty() {
		return fmt.Errorf("cannot unregister %s: %w", c, ErrContainerNotEmpty)
	}

	for i, registered := range e.containers {
		if registered == c {
			e.containers = append(e.containers[:i], e.containers[i+1:]...)
			return nil
		}
	}

	return nil
}

// Containers returns the registered containers
func (e *Economy) Containers() []*Container {
	containers := make([]*Container, len(e.containers))
	copy(containers, e.containers)
	return containers
}

// CashIn converts money into chips in the container
func (e *Economy) CashIn(c *Container, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}

	c.Deposit(e.denominations.CashToChips(amount)...)
	e.cashIn += amount
	return nil
}

// CashOut converts every chip in the container back into money
func (e *Economy) CashOut(c *Container) int {
	amount := ChipsToCash(c.TakeAll())
	e.cashOut += amount
	return amount
}

// PayCommission irreversibly removes chips from play
func (e *Economy) PayCommission(c *Container, amount int) error {
	if _, err := c.Withdraw(amount); err != nil {
		return err
	}

	e.commission += amount
	return nil
}

// Total returns the value of every registered container
func (e *Economy) Total() int {
	total := 0
	for _, c := range e.containers {
		total += c.Total()
	}

	return total
}

// CashedIn returns the total money converted into chips
func (e *Economy) CashedIn() int {
	return e.cashIn
}

// CashedOut returns the total money converted out of chips
func (e *Economy) CashedOut() int {
	return e.cashOut
}

// Commission returns the total paid out of play
func (e *Economy) Commission() int {
	return e.commission
}

// Audit checks that no chip value was created or destroyed
func (e *Economy) Audit() error {
	expected := e.cashIn - e.cashOut - e.commission
	if total := e.Total(); total != expected {
		return fmt.Errorf("chip conservation violated: containers hold $%d, ledger expects $%d", total, expected)
	}

	return nil
}
