package game

type MessageKey struct {
	Key     Key
	Pressed bool
}

type MessageResize struct {
	Width, Height int
}

// published by the GameStateSystem on every mode switch
type MessageModeChange struct {
	From, To Mode
}
