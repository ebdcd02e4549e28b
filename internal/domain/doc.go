// Package domain defines the core business entities of the curricula
// application: users, courses, lessons, exercises, exercise attempts, and
// per-user progress snapshots. Entities are plain records with foreign-key
// fields; related rows are fetched on demand through the store layer rather
// than traversed through a live object graph.
package domain
