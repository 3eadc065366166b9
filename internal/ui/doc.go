// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI moves through three views:
//  1. [LoginView] : Log in, or press ctrl+r to register a new account
//  2. [CatalogView] : Browse the catalog and add the selected movie to the watchlist
//  3. [WatchlistView] : Review the logged-in user's watchlist and remove entries
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Logins run as commands so a slow password hash does not freeze input; watchlist edits run inside Update.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
