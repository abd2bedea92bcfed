package planner

import "fmt"

// OnboardingState is the state of the completed-course checklist.
type OnboardingState int

const (
	// NotStarted is the initial state and the state after a major change.
	NotStarted OnboardingState = iota
	// InProgress means the checklist draft is being edited.
	InProgress
	// Confirmed means the draft has been committed as the completed set.
	Confirmed
)

func (s OnboardingState) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Confirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("OnboardingState(%d)", int(s))
	}
}

// Onboarding tracks the completed-course checklist. The draft is invisible
// to the eligibility reducer until Confirm commits it.
type Onboarding struct {
	draft     Set[string]
	confirmed Completion
	state     OnboardingState
}

// State returns the current checklist state.
func (o Onboarding) State() OnboardingState {
	return o.state
}

// Draft returns the codes currently ticked on the checklist.
func (o Onboarding) Draft() Set[string] {
	return o.draft
}

// IsChecked reports whether code is ticked on the checklist.
func (o Onboarding) IsChecked(code string) bool {
	return o.draft.Has(code)
}

// Completion returns the last confirmed completed set, or Unestablished if
// the checklist was never confirmed.
func (o Onboarding) Completion() Completion {
	return o.confirmed
}

// Begin opens the checklist for editing.
func (o Onboarding) Begin() (Onboarding, error) {
	switch o.state {
	case NotStarted:
		o.state = InProgress
		return o, nil
	case InProgress:
		return o, nil
	default:
		return o, fmt.Errorf("%w: begin from %s", ErrInvalidTransition, o.state)
	}
}

// Toggle ticks or unticks a course code. Toggling from NotStarted begins the
// checklist implicitly.
func (o Onboarding) Toggle(code string) (Onboarding, error) {
	if o.state == Confirmed {
		return o, ErrChecklistLocked
	}
	o.state = InProgress
	o.draft = ToggleMembership(o.draft, code)
	return o, nil
}

// Confirm commits the draft as the authoritative completed set. Confirming
// an untouched checklist establishes an empty completed set.
func (o Onboarding) Confirm() (Onboarding, error) {
	if o.state == Confirmed {
		return o, fmt.Errorf("%w: checklist already confirmed", ErrInvalidTransition)
	}
	o.confirmed = Established(o.draft.clone())
	o.state = Confirmed
	return o, nil
}

// Edit reopens a confirmed checklist. The draft is seeded from the confirmed
// set, which stays authoritative until the next Confirm.
func (o Onboarding) Edit() (Onboarding, error) {
	if o.state != Confirmed {
		return o, fmt.Errorf("%w: edit from %s", ErrInvalidTransition, o.state)
	}
	o.draft = o.confirmed.Codes().clone()
	o.state = InProgress
	return o, nil
}

// Reset returns the checklist to NotStarted with an empty draft and no
// established completed set.
func (o Onboarding) Reset() Onboarding {
	return Onboarding{}
}
