package plan

// ExecutionObserver is notified after each action's Execute returns,
// letting internal/metrics record counters/histograms without plan
// importing prometheus directly.
type ExecutionObserver func(kind Kind, schedulingClass int, seconds float64, err error)

// OnExecute registers the observer the next Execute pass reports to;
// nil (the default) disables observation.
func (p *Planner) OnExecute(observer ExecutionObserver) {
	p.observer = observer
}
