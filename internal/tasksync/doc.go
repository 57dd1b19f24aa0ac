// Package tasksync keeps a rendered task list consistent with a remote task
// collection.
//
// The Client never patches its view. Every operation ends with a reload: the
// whole collection is fetched again and the view is replaced with a fresh
// projection of it. The view therefore only ever shows the last successful
// fetch, and re-rendering an unchanged server state produces an identical
// list.
//
// Operations are not serialized against each other. Two mutations issued
// back to back run two independent request/reload cycles and the view ends
// up showing whichever reload finished last.
package tasksync
