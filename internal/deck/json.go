package deck

import "encoding/json"

// MarshalJSON encodes the remaining cards in order, supporting lossless
// state snapshots.
func (d Deck) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.cards)
}

// UnmarshalJSON restores a deck view from its snapshot form.
func (d *Deck) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &d.cards)
}
