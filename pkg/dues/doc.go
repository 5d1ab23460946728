// Package dues holds the client dues model and the escalation policy.
//
// A ClientDue's recorded Status is a fact that may lag the policy.
// PolicyStatus derives what the day-1/day-3/day-5 flow implies from days
// overdue, which is always recomputed from the due date:
//
//	days := client.DaysOverdue(clock())
//	step, ok := dues.StepFor(days) // ok is false when not overdue
//
// Client data comes from a Repository. FixtureRepository serves the
// embedded YAML fixtures and never changes.
package dues
