package deck

// Card identifies a card, optionally pinned to a specific printing.
// A zero PrintingID means "any printing" wherever the card is used for lookup.
type Card struct {
	// Name is the card's oracle name.
	Name string

	// PrintingID is the provider UUID of a specific printing, if known.
	PrintingID string

	// CollectorNumber is the printing's collector number, if known.
	CollectorNumber string

	// SetCode is the printing's set code, if known.
	SetCode string
}

// IsValid reports whether the card resolves to usable card data.
// A card with an empty name cannot be added, removed, or looked up.
func (c Card) IsValid() bool {
	return c.Name != ""
}

// SamePrinting reports whether two cards refer to the same physical printing.
// Cards with the same name but different printing metadata are distinct rows
// in a deck.
func (c Card) SamePrinting(o Card) bool {
	return c.Name == o.Name &&
		c.PrintingID == o.PrintingID &&
		c.CollectorNumber == o.CollectorNumber
}
