package model

// Speaker tags one side of the interview conversation. The values match the
// role names the generation API expects, so a Turn maps straight onto a
// chat-history entry.
type Speaker string

const (
	SpeakerAI        Speaker = "model"
	SpeakerCandidate Speaker = "user"
)

// Turn is one utterance in the conversation history passed to the model.
type Turn struct {
	Speaker Speaker
	Text    string
}
