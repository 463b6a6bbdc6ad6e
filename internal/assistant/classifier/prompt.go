package classifier

import (
	_ "embed"
	"strings"

	"github.com/orderchat-poc/server/internal/assistant/model"
)

//go:embed template/intent_prompt.txt
var intentSystemPrompt string

// renderSystemPrompt fills the embedded intent prompt. Known tokens only, so
// the JSON examples in the template survive untouched.
func renderSystemPrompt(cfg model.AssistantPromptConfig) string {
	return strings.NewReplacer(
		"{business_name}", cfg.BusinessName,
		"{business_type}", cfg.BusinessType,
	).Replace(intentSystemPrompt)
}

// buildContext assembles the user-visible prompt: recent plain-text turns for
// context, then the current utterance to classify. Structured turns (rendered
// tables) are skipped; they carry no classification signal and bloat the prompt.
func buildContext(history []model.Turn, utterance string, maxTurns int) string {
	recent := trimTail(history, maxTurns)

	var b strings.Builder
	b.WriteString("<conversation_context>\n")
	for _, t := range recent {
		if t.Content == "" || t.Structured {
			continue
		}
		switch t.Speaker {
		case model.SpeakerUser:
			b.WriteString("UserMessage(" + t.Content + ")\n")
		case model.SpeakerAssistant:
			b.WriteString("AssistantMessage(" + t.Content + ")\n")
		}
	}
	b.WriteString("</conversation_context>\n")
	b.WriteString("<current_message_to_analyze>\n")
	b.WriteString("UserMessage(" + utterance + ")\n")
	b.WriteString("</current_message_to_analyze>")
	return b.String()
}

func trimTail(turns []model.Turn, maxTurns int) []model.Turn {
	if maxTurns <= 0 || len(turns) <= maxTurns {
		return turns
	}
	return turns[len(turns)-maxTurns:]
}
