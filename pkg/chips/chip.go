package chips

import (
	"errors"
	"fmt"
)

// ErrInvalidDenominations is returned when a denomination set cannot represent every amount
var ErrInvalidDenominations = errors.New("denominations must be positive, strictly descending, and end with 1")

// Chip is a single token of a fixed denomination
type Chip struct {
	Denomination int `json:"denomination"`
}

func (c Chip) String() string {
	return fmt.Sprintf("$%d", c.Denomination)
}

// Denominations is a strictly descending set of chip values
type Denominations []int

// DefaultDenominations are the chips the house plays with
var DefaultDenominations = Denominations{100, 25, 10, 5, 1}

// Validate ensures the set can represent any non-negative amount
func (d Denominations) Validate() error {
	if len(d) == 0 {
		return ErrInvalidDenominations
	}

	for i, value := range d {
		if value <= 0 {
			return ErrInvalidDenominations
		}

		if i > 0 && value >= d[i-1] {
			return ErrInvalidDenominations
		}
	}

	if d[len(d)-1] != 1 {
		return ErrInvalidDenominations
	}

	return nil
}

// Contains returns true if the denomination is part of the set
func (d Denominations) Contains(denomination int) bool {
	for _, value := range d {
		if value == denomination {
			return true
		}
	}

	return false
}

// CashToChips greedily breaks an amount into chips, largest denomination first
// A non-positive amount returns no chips.
func (d Denominations) CashToChips(amount int) []Chip {
	chips := make([]Chip, 0)
	for _, value := range d {
		for amount >= value {
			chips = append(chips, Chip{Denomination: value})
			amount -= value
		}
	}

	return chips
}

// CashToChips breaks an amount into the default denominations
func CashToChips(amount int) []Chip {
	return DefaultDenominations.CashToChips(amount)
}

// ChipsToCash returns the total value of the chips
func ChipsToCash(chips []Chip) int {
	total := 0
	for _, chip := range chips {
		total += chip.Denomination
	}

	return total
}
