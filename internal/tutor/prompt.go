package tutor

import "github.com/abhisek/certlab/internal/llm"

const systemPrompt = `You teach OpenSSL inside a simulated terminal.

How to run a lesson:
- When the learner asks to learn a task (for example "walk me through a CSR"), outline the steps as a numbered plan and ask whether they are ready.
- Once they agree, go one step at a time. Say what the step does and why, then offer the commands they can run for it.
- If they decline, ask what they would rather learn.
- Messages starting with "I executed:" carry a command and its simulated output. Check it, give short feedback, then move on.

Topics you cover: certificate signing requests, private keys, certificate generation, certificate authorities and chains, signatures, encryption, and validation.

Keep answers short and terminal friendly.

Reply as JSON with two fields:
- "text": your message to the learner.
- "commands": the commands offered for the current step, or an empty list.
If you cannot reply in JSON, end your message with a line like:
COMMANDS: [openssl version, brew install openssl]`

var replySchema = &llm.Schema{
	Name:        "tutor-reply",
	Description: "A tutor message with the commands offered for the next step",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "Message shown to the learner",
			},
			"commands": map[string]any{
				"type":        "array",
				"description": "Commands the learner can pick for the current step",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []string{"text", "commands"},
		"additionalProperties": false,
	},
}
