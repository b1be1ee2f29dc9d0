package listing

// Flags are the per-grant choices a user makes from the list.
type Flags struct {
	Saved   bool `json:"saved"`
	Applied bool `json:"applied"`
}

// State maps grant ids to the user's flags. Missing ids mean both flags are
// false. State is owned by the caller; Derive only reads it.
type State map[string]Flags

// Get returns the flags for id.
func (s State) Get(id string) Flags {
	if s == nil {
		return Flags{}
	}
	return s[id]
}

// ToggleSaved flips the saved flag for id and returns the new value.
func (s State) ToggleSaved(id string) bool {
	flags := s[id]
	flags.Saved = !flags.Saved
	s[id] = flags
	return flags.Saved
}

// MarkApplied sets the applied flag for id. Applying cannot be undone from the
// list.
func (s State) MarkApplied(id string) {
	flags := s[id]
	flags.Applied = true
	s[id] = flags
}
