package domain

// LevelState is the flat aggregated record published for one hierarchy
// level after every rebuild. Consumers (buttons, progress bars, displays)
// react to it without reaching into the stores.
type LevelState struct {
	CurrentIndex  int             `json:"current_index"` // -1 when nothing is current
	CurrentID     string          `json:"current_id,omitempty"`
	Total         int             `json:"total"`
	Complete      bool            `json:"complete"`
	Validity      map[string]bool `json:"validity,omitempty"`
	ActiveIndices []int           `json:"active_indices,omitempty"`
	Progress      int             `json:"progress"`
}

// FormState is the full published snapshot of the engine: one LevelState per
// level plus the raw leaf values. It is pushed as one batched update per
// logical change so consumers never observe a half-applied move.
type FormState struct {
	FormID   string               `json:"form_id"`
	Behavior Behavior             `json:"behavior"`
	Levels   map[Level]LevelState `json:"levels"`
	Values   map[string]string    `json:"values"`
}

// NewFormState creates an empty snapshot for a form.
func NewFormState(formID string, behavior Behavior) *FormState {
	levels := make(map[Level]LevelState, len(Levels))
	for _, l := range Levels {
		levels[l] = LevelState{CurrentIndex: -1}
	}
	return &FormState{
		FormID:   formID,
		Behavior: behavior,
		Levels:   levels,
		Values:   make(map[string]string),
	}
}

// Clone returns a deep copy, used by stores to isolate persisted snapshots
// from the live engine.
func (s *FormState) Clone() *FormState {
	if s == nil {
		return nil
	}
	next := &FormState{
		FormID:   s.FormID,
		Behavior: s.Behavior,
		Levels:   make(map[Level]LevelState, len(s.Levels)),
		Values:   make(map[string]string, len(s.Values)),
	}
	for l, ls := range s.Levels {
		cp := ls
		if ls.Validity != nil {
			cp.Validity = make(map[string]bool, len(ls.Validity))
			for k, v := range ls.Validity {
				cp.Validity[k] = v
			}
		}
		if ls.ActiveIndices != nil {
			cp.ActiveIndices = append([]int(nil), ls.ActiveIndices...)
		}
		next.Levels[l] = cp
	}
	for k, v := range s.Values {
		next.Values[k] = v
	}
	return next
}
