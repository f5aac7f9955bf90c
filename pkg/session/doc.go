/*
Package session orchestrates concurrent access to per-call survey sessions.

Each session is owned by exactly one phone call, but saves, loads and
finalizations can race on reconnects and hang-up cleanup. The Manager
serializes access per session id with reference-counted in-process locks and
an optional distributed locker for multi-replica deployments.
*/
package session
