package tui

type View int

const (
	ViewBoard View = iota
	ViewDetail
)

// focus tracks which part of the board view receives keys.
type focus int

const (
	focusInput focus = iota
	focusCards
)
