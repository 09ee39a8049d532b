// Package todo holds the in-memory task list for one running session.
//
// A List owns an ordered collection of tasks addressed by zero-based
// position. Positions are contiguous and insertion order is preserved;
// the list never sorts or filters on its own. All mutation goes through
// the List: tasks are created by Add, destroyed by Remove, and changed
// by Edit, MarkCompleted, and MarkIncomplete.
//
// # Index policy
//
//   - Remove ignores an out-of-range index. Removing something that is
//     not there is treated as already done.
//   - Edit, MarkCompleted, and MarkIncomplete report ErrIndexOutOfRange
//     instead, since silently skipping a requested change would lose the
//     caller's intent.
//
// Callers driving the list from a selection UI are expected to derive
// indices from the current list state, so the error path is a guard, not
// a control-flow mechanism.
//
// # Fields
//
// Task fields are free-form text. Due dates and priorities carry no
// semantic validation; "tomorrow" and "High" are as valid as
// "2024-01-01" and "3". The only non-text state is the completion flag,
// which starts false and toggles freely in both directions.
package todo
