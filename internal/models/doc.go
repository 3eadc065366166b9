// Package models defines the domain entities shared by the catalog, credential and watchlist stores.
//
//   - [Movie] : catalog entry keyed by its exact title
//   - [Credential] : username/password pair as kept in the credentials file
//   - [MirroredMovie] : a [Movie] row in the SQLite catalog mirror, with ID, sequence and timestamps
//
// Constructors validate their input, so an invalid entity cannot be built through them.
// All of them implement [Model].
package models
