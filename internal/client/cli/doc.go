// Package cli provides the interactive expense tracker command-line client.
//
// It wires configuration, the local session database, API services and an
// interactive REPL. Typical flow: resume a saved session if the server still
// accepts it, otherwise ask the user to register or log in, then execute
// commands until exit.
//
// Key features:
//   - Register / Login / Logout (the session survives restarts)
//   - List expenses with a running total
//   - Add / Edit / Delete expenses
//   - Export expenses as CSV when the server has exports enabled
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
