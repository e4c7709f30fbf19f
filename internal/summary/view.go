package summary

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

type Event int

const (
	EventLoad Event = iota
	EventNextMonth
	EventPrevMonth
)

// CategoryView is the state of the monthly resume screen. Every transition
// returns a new value; the receiver is never modified.
type CategoryView struct {
	State   State
	Month   Month
	Summary *CategorySummary
}

func NewCategoryView(m Month) CategoryView {
	return CategoryView{State: StateIdle, Month: m}
}

// Apply moves the view to Loading for the month the event selects.
// The previous summary is dropped so nothing stale is shown while loading.
func (v CategoryView) Apply(ev Event) CategoryView {
	next := CategoryView{State: StateLoading, Month: v.Month}

	switch ev {
	case EventNextMonth:
		next.Month = v.Month.Next()
	case EventPrevMonth:
		next.Month = v.Month.Prev()
	}

	return next
}

// Complete settles a load. Results for a month other than the one being
// loaded come from a superseded load and are ignored, as are completions
// arriving when nothing is loading.
func (v CategoryView) Complete(s CategorySummary) CategoryView {
	if v.State != StateLoading || s.Month != v.Month {
		return v
	}

	return CategoryView{State: StateReady, Month: v.Month, Summary: &s}
}
