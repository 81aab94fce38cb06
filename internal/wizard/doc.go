// Package wizard implements the multi-step wizard engine that drives
// onboarding flows.
//
// The engine is headless. A host (the terminal UI, the line-mode prompter,
// a test) builds a [Registry] of [Step] values, hands it to [New] and then
// drives the resulting [Controller] with Next, Prev, Goto and Skip. The host
// renders [Controller.ActiveSteps] and the current step's payload; the
// engine never knows what a step is about.
//
// # State
//
// All state lives in a single [State] value that changes only through
// [Reduce], a pure function over the actions Initialize, CommitStarted,
// CommitSucceeded, CommitFailed, Back, Jump and Skip. The controller adds
// the effects around it: running commits through the [Executor], writing
// the [PositionMirror], logging, and publishing events.
//
// # Rules
//
//   - A step id enters the completion set only after its commit succeeds,
//     or when initialization resumes past it from the mirror.
//   - Goto is admitted only when every earlier step is complete.
//   - Skip moves forward without completing the step it leaves.
//   - While a transition is in flight every other transition returns Busy.
//   - After Close every transition, including a commit still running,
//     is discarded.
//
// Failures never escape as panics or errors: a rejected commit sets
// LastError and returns Rejected.
package wizard
