// Package cli provides the interactive userkeeper command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// A background watcher pings the server and the prompt shows whether the
// server is reachable and who is logged in.
//
// Key features:
//   - Register / Login / Logout
//   - Show, list, update and delete users
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
