package entity

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

type MessageKind string

// Message - transient status line shown to the user, replaced on every response.
type Message struct {
	Kind MessageKind
	Text string
}

func SuccessMessage(text string) Message {
	return Message{Kind: MessageSuccess, Text: text}
}

func ErrorMessage(text string) Message {
	return Message{Kind: MessageError, Text: text}
}
