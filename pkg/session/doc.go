/*
Package session orchestrates concurrent access to persisted form sessions.

It serializes Load/Save/Delete per session ID with refcounted local locks and
optionally a distributed locker, so multiple replicas can share one state
store without losing updates.
*/
package session
