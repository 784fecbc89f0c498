package tui

type copiedMsg struct {
	key string
	err error
}

type clearStatusMsg struct{}
