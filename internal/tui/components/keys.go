package components

import "github.com/charmbracelet/bubbles/key"

// MovieListKeyMap defines key bindings for list navigation
type MovieListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Escape   key.Binding
	Enter    key.Binding
}

// DefaultMovieListKeyMap returns the default list key bindings
func DefaultMovieListKeyMap() MovieListKeyMap {
	return MovieListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept filter"),
		),
	}
}

// RatingKeyMap defines key bindings for the star rating input
type RatingKeyMap struct {
	Increase key.Binding
	Decrease key.Binding
	Commit   key.Binding
	Digit    key.Binding
}

// DefaultRatingKeyMap returns the default rating key bindings
func DefaultRatingKeyMap() RatingKeyMap {
	return RatingKeyMap{
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "more stars"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "fewer stars"),
		),
		Commit: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "rate"),
		),
		Digit: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "rate 1-10"),
		),
	}
}
