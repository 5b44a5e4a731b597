// Package ui implements the interactive movie browser using bubbletea's Elm architecture.
//
// The TUI mirrors the routes of a single-page client:
//  1. [HomeView] : the movie collection with the filter/sort panel
//  2. [DetailView] : one movie's full record with per-image fallbacks
//  3. [SavedView] : the session user's saved movies
//  4. [LoginView] / [SignupView] : credential forms
//
// The root [Model] implements the standard Init/Update/View pattern. Every
// network call runs as a tea.Cmd tagged with a generation number; a response
// whose generation has been superseded (rapid detail navigation, a filter
// change racing an older fetch) is discarded instead of winning a last-write
// race. The session store is injected and only mutated through its
// Login/Logout entry points; views read it to decide what to fetch and
// whether save toggles are allowed.
//
// Save toggles are optimistic: the card flips immediately and a transient
// confirmation shows, and when the call fails the flip is rolled back with a
// failure notice.
package ui
