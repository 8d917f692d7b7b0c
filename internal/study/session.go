package study

import (
	"time"

	"github.com/pkg/errors"

	"github.com/example/vocabot/pkg/models"
)

// State identifies where a study session currently is.
type State int

const (
	// StateStudying means a word is on offer but its details are hidden
	StateStudying State = iota
	// StateViewingDetails means the current word has been revealed
	StateViewingDetails
	// StateCreatingHint is a side trip authoring a hint that did not exist
	StateCreatingHint
	// StateEditingHint is a side trip changing an existing hint
	StateEditingHint
	// StateCompleted means the candidate stream is exhausted; terminal
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateStudying:
		return "studying"
	case StateViewingDetails:
		return "viewing_details"
	case StateCreatingHint:
		return "creating_hint"
	case StateEditingHint:
		return "editing_hint"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Op is a session operation subject to state validation.
type Op int

const (
	OpReveal Op = iota
	OpAnswer
	OpUseHint
	OpBeginHintEdit
	OpSaveHint
	OpCancelHintEdit
	OpToggleSkip
)

func (o Op) String() string {
	switch o {
	case OpReveal:
		return "reveal"
	case OpAnswer:
		return "answer"
	case OpUseHint:
		return "use_hint"
	case OpBeginHintEdit:
		return "begin_hint_edit"
	case OpSaveHint:
		return "save_hint"
	case OpCancelHintEdit:
		return "cancel_hint_edit"
	case OpToggleSkip:
		return "toggle_skip"
	}
	return "unknown"
}

// allowedOps is the single source of truth for which operations each state
// accepts. Answering requires the word to have been revealed first; hint
// authoring only accepts save or cancel; a completed session accepts
// nothing. Skip toggling is independent of the studying loop and works from
// any state that still has a current word.
var allowedOps = map[State]map[Op]bool{
	StateStudying: {
		OpReveal:        true,
		OpUseHint:       true,
		OpBeginHintEdit: true,
		OpToggleSkip:    true,
	},
	StateViewingDetails: {
		OpAnswer:        true,
		OpUseHint:       true,
		OpBeginHintEdit: true,
		OpToggleSkip:    true,
	},
	StateCreatingHint: {
		OpSaveHint:       true,
		OpCancelHintEdit: true,
		OpToggleSkip:     true,
	},
	StateEditingHint: {
		OpSaveHint:       true,
		OpCancelHintEdit: true,
		OpToggleSkip:     true,
	},
	StateCompleted: {},
}

// SessionState is one user's active study session. It is owned by the single
// conversation that created it and persisted in a SessionStore between
// calls; nothing else mutates it.
type SessionState struct {
	Handle     string
	UserID     int64
	LanguageID int64
	State      State
	// ReturnTo is the state to resume when a hint authoring side trip ends
	ReturnTo State
	// Settings are captured when the session begins; a session keeps its
	// word ordering even if the user reconfigures mid-study
	Settings    *models.UserLanguageSettings
	CurrentWord *models.Word
	WordShown   bool
	// UsedHints collects the hint types consumed for the current word; the
	// set resets every time the session advances
	UsedHints map[models.HintType]struct{}
	// EditingHint is the hint type being authored during a side trip
	EditingHint models.HintType
	// Cursor is the word_number the next candidate search starts from
	Cursor    int
	StartedAt time.Time
}

// checkOp validates an operation against the current state and rejects
// anything touching a session that has no word on offer.
func (s *SessionState) checkOp(op Op) error {
	if !allowedOps[s.State][op] {
		return errors.Wrapf(models.ErrInvalidSessionState, "%s not allowed in state %s", op, s.State)
	}
	if s.CurrentWord == nil {
		return errors.Wrapf(models.ErrInvalidSessionState, "%s called with no current word", op)
	}
	return nil
}

// advanceTo positions the session on the next candidate word, or completes
// it when the stream is exhausted. Hint usage is per word and resets here.
func (s *SessionState) advanceTo(word *models.Word) {
	s.CurrentWord = word
	s.WordShown = false
	s.UsedHints = nil
	s.EditingHint = ""
	if word == nil {
		s.State = StateCompleted
		return
	}
	s.State = StateStudying
	s.Cursor = word.WordNumber + 1
}

func (s *SessionState) markHintUsed(t models.HintType) {
	if s.UsedHints == nil {
		s.UsedHints = make(map[models.HintType]struct{})
	}
	s.UsedHints[t] = struct{}{}
}

// hintUsed reports whether any hint was consumed for the current word.
func (s *SessionState) hintUsed() bool {
	return len(s.UsedHints) > 0
}
