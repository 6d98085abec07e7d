// Package client contains client-side building blocks for the expense CLI.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the Client interface) covering register, login,
//     the session check and expense CRUD.
//  2. A concrete HTTP implementation (see HTTPClient) that injects the bearer
//     token into each request and forgets it when the server answers 401.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable, a rejected token is ErrUnauthorized
// and any other non-2xx answer is an *APIError carrying the server message.
package client
