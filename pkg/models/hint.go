package models

// HintType identifies one of the four supplementary memory aids a user can
// attach to a word.
type HintType string

const (
	// HintMeaning is a free-form reminder of what the word means
	HintMeaning HintType = "meaning"
	// HintPhoneticSound describes how the word sounds
	HintPhoneticSound HintType = "phoneticsound"
	// HintPhoneticAssociation links the sound to a familiar word or image
	HintPhoneticAssociation HintType = "phoneticassociation"
	// HintWriting is a reminder of how the word is written
	HintWriting HintType = "writing"
)

// HintTypes lists all hint types in presentation order.
var HintTypes = []HintType{HintMeaning, HintPhoneticSound, HintPhoneticAssociation, HintWriting}

// Valid reports whether t is one of the four known hint types.
func (t HintType) Valid() bool {
	switch t {
	case HintMeaning, HintPhoneticSound, HintPhoneticAssociation, HintWriting:
		return true
	}
	return false
}
