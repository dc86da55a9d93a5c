package chat

// Messenger is the platform delivery adapter. Each transport (Telegram,
// HTTP, ...) implements this to carry prompts and rejection reasons back
// to the participant; the engine itself performs no network I/O.
type Messenger interface {
	SendText(chatID, text string) error

	// SendChoices presents a question with a fixed option set, rendered
	// as buttons where the platform supports them.
	SendChoices(chatID, text string, options []string) error
}
