package client

// Consumer routes the core cares about: a lost session redirects to the
// import flow unless the user is already at an entry point.
const (
	RouteHome   = "/"
	RouteImport = "/import"
)

// Notifier surfaces a short user-facing message.
type Notifier interface {
	Notify(message string)
}

// Navigator reports and changes the consumer's current route.
type Navigator interface {
	Location() string
	Navigate(route string)
}

// IsEntryPoint reports whether route is an allow-listed entry point that a
// failed authentication must not redirect away from (avoids redirect loops).
func IsEntryPoint(route string) bool {
	return route == RouteHome || route == RouteImport
}

// NopNotifier discards notifications. Used by headless consumers.
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}

// NopNavigator is a Navigator for consumers without routes; it always
// reports the home entry point.
type NopNavigator struct{}

func (NopNavigator) Location() string { return RouteHome }
func (NopNavigator) Navigate(string)  {}
