// Package condition implements the visibility expression evaluator: flat
// "{field} op value" clauses joined left-to-right by && and ||, a nine
// operator comparison set, and the field→dependents graph that keeps
// re-evaluation proportional to what actually changed.
package condition
