package domain

import "fmt"

// FilterState is the transient selection a visitor makes on the projects
// screen. The zero value is the default: no tag, featured projects only.
type FilterState struct {
	ActiveTag string `json:"active_tag"`
	ShowAll   bool   `json:"show_all"`
}

// SelectTag returns the state after the visitor picks tag. Picking the tag
// that is already active clears it; picking "" always clears.
func (s FilterState) SelectTag(tag string) FilterState {
	if tag == s.ActiveTag {
		tag = ""
	}
	s.ActiveTag = tag
	return s
}

// ClearTag returns the state with no tag filter ("All").
func (s FilterState) ClearTag() FilterState {
	s.ActiveTag = ""
	return s
}

// ToggleShowAll flips between featured-only and every project.
func (s FilterState) ToggleShowAll() FilterState {
	s.ShowAll = !s.ShowAll
	return s
}

// Matches is the inclusion predicate applied by VisibleProjects.
func (s FilterState) Matches(p Project) bool {
	if s.ActiveTag != "" && !p.HasTag(s.ActiveTag) {
		return false
	}
	return s.ShowAll || p.Featured
}

// Action kinds accepted by Apply.
const (
	ActionSelectTag     = "select_tag"
	ActionToggleShowAll = "toggle_show_all"
	ActionClear         = "clear"
)

// Action is a user command against a FilterState.
type Action struct {
	Kind string `json:"kind"`
	Tag  string `json:"tag,omitempty"`
}

// Apply runs a single action and returns the resulting state.
func (s FilterState) Apply(a Action) (FilterState, error) {
	switch a.Kind {
	case ActionSelectTag:
		return s.SelectTag(a.Tag), nil
	case ActionToggleShowAll:
		return s.ToggleShowAll(), nil
	case ActionClear:
		return s.ClearTag(), nil
	default:
		return s, fmt.Errorf("%w: %q", ErrInvalidAction, a.Kind)
	}
}
