// Package event provides a synchronous pub-sub bus and the events the wizard
// engine publishes.
//
// Hosts subscribe to react to wizard activity without the engine knowing
// about them: a TUI shows a toast on [NavigationDeniedEvent], a CLI marks the
// auth session onboarded on [WizardFinishedEvent].
//
//	bus := event.NewBus(logger)
//	bus.Subscribe(event.TypeNavigationDenied, func(e event.Event) {
//	    denied := e.(event.NavigationDeniedEvent)
//	    notify("finish the earlier steps before opening " + denied.TargetID)
//	})
//
// Event types follow the pattern "category.action": wizard.started,
// wizard.finished, step.advanced, step.completed, step.skipped, step.back,
// commit.failed, navigation.denied.
//
// [Bus] is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine; a panicking handler is logged and skipped.
package event
