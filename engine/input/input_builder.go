package input

// MapperOption is a functional option for configuring a Mapper.
type MapperOption func(*mapperImpl)

// WithViolationReporter sets the function invoked by ActionReportViolations,
// typically a dump of the vehicle's constraint violations to the log.
//
// Parameters:
//   - report: the function to invoke
//
// Returns:
//   - MapperOption: functional option to set the reporter
func WithViolationReporter(report func()) MapperOption {
	return func(m *mapperImpl) {
		m.onReport = report
	}
}

// WithBinding adds or replaces a key binding at construction.
//
// Parameters:
//   - keyCode: the raw key code
//   - action: the action to bind
//
// Returns:
//   - MapperOption: functional option to add the binding
func WithBinding(keyCode uint32, action Action) MapperOption {
	return func(m *mapperImpl) {
		m.bindings[keyCode] = action
	}
}
