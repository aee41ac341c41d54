package state

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithMessageLimit keeps at most limit messages, evicting the oldest first.
// A limit of zero or less keeps every message.
func WithMessageLimit(limit int) SessionOption {
	return func(s *SessionStore) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// SessionStore holds the chat transcript and input state of a game session.
// It is meant to be owned by the UI goroutine and is not safe for concurrent use.
type SessionStore struct {
	messages        []Message
	start           int
	limit           int
	currentLocation string
	isLoading       bool
	userInput       string
}

func NewSessionStore(opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		messages:        []Message{},
		currentLocation: DefaultLocation,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddMessage appends message to the end of the transcript.
func (s *SessionStore) AddMessage(message Message) {
	if s.limit == 0 || len(s.messages) < s.limit {
		s.messages = append(s.messages, message)
		return
	}
	// ring buffer: overwrite the oldest slot
	s.messages[s.start] = message
	s.start = (s.start + 1) % s.limit
}

// Messages returns a copy of the transcript, oldest first.
func (s *SessionStore) Messages() []Message {
	out := make([]Message, 0, len(s.messages))
	out = append(out, s.messages[s.start:]...)
	out = append(out, s.messages[:s.start]...)
	return out
}

func (s *SessionStore) CurrentLocation() string {
	return s.currentLocation
}

func (s *SessionStore) SetCurrentLocation(location string) {
	s.currentLocation = location
}

func (s *SessionStore) IsLoading() bool {
	return s.isLoading
}

func (s *SessionStore) SetLoading(status bool) {
	s.isLoading = status
}

func (s *SessionStore) UserInput() string {
	return s.userInput
}

func (s *SessionStore) SetUserInput(input string) {
	s.userInput = input
}

func (s *SessionStore) ClearUserInput() {
	s.SetUserInput("")
}
