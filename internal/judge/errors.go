package judge

import "fmt"

// Kind classifies a judgment failure. The set is closed; the CLI boundary
// maps every kind to a deny decision.
type Kind int

const (
	// KindInvalidJSON: the response could not be parsed as JSON.
	KindInvalidJSON Kind = iota
	// KindNoResponse: the model returned no text at all.
	KindNoResponse
	// KindSchemaValidation: parsed JSON never matched the output schema.
	KindSchemaValidation
	// KindCodeFence: the response wrapped JSON in markdown code fences.
	KindCodeFence
	// KindInvalidPrefix: non-whitespace content before the JSON object.
	KindInvalidPrefix
	// KindInvalidSuffix: trailing content after the closing brace.
	KindInvalidSuffix
)

// Error is a judgment failure. Each kind carries the payload needed to
// render both its terminal message and the corrective instruction sent
// back into the conversation.
type Error struct {
	Kind     Kind
	Detail   string // parser or schema validator message
	Leading  string // offending prefix text, KindInvalidPrefix
	Trailing string // offending suffix text, KindInvalidSuffix
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidJSON:
		return fmt.Sprintf("response is not valid JSON: %s", e.Detail)
	case KindNoResponse:
		return "no response received from judgment model"
	case KindSchemaValidation:
		return fmt.Sprintf("response does not match the output schema: %s", e.Detail)
	case KindCodeFence:
		return "response contains markdown code fences"
	case KindInvalidPrefix:
		return fmt.Sprintf("response has invalid characters before the JSON object: %q", e.Leading)
	case KindInvalidSuffix:
		return fmt.Sprintf("response has text after the closing brace: %q", e.Trailing)
	}
	return "unknown judgment error"
}

// Corrective renders the follow-up instruction describing exactly what was
// wrong with the previous reply. The format-specific variants carry worked
// examples; specificity here is what makes the retry loop converge.
func (e *Error) Corrective() string {
	switch e.Kind {
	case KindNoResponse:
		return "Please provide a response in valid JSON format."
	case KindInvalidJSON:
		return fmt.Sprintf("Your previous response was not valid JSON. Error: %s. "+
			"Please return ONLY raw JSON without any markdown formatting or code blocks.", e.Detail)
	case KindSchemaValidation:
		return fmt.Sprintf("Your previous response did not match the required schema. Error: %s. "+
			"Please return a valid response matching the output schema.", e.Detail)
	case KindCodeFence:
		return "Your response contains markdown code fences (```).\n" +
			"Do NOT wrap the JSON in markdown code blocks like ```json ... ```.\n" +
			"Return ONLY the raw JSON object.\n\n" +
			"WRONG:\n" +
			"```json\n" +
			`{"permissionDecision": "allow"}` + "\n" +
			"```\n\n" +
			"CORRECT:\n" +
			`{"permissionDecision": "allow"}`
	case KindInvalidPrefix:
		return fmt.Sprintf("Your response has invalid characters before the JSON object.\n"+
			"Found: %q\n\n"+
			"Do NOT include:\n"+
			"- Emojis (⏺, ✓, etc.)\n"+
			"- Explanatory text ('Sure!', 'Here is the result:', etc.)\n"+
			"- Any other characters\n\n"+
			"Your response must start directly with {.\n\n"+
			"WRONG:\n"+
			"⏺ {\"permissionDecision\": \"allow\"}\n"+
			"Sure! Here is the JSON: {\"permissionDecision\": \"allow\"}\n\n"+
			"CORRECT:\n"+
			"{\"permissionDecision\": \"allow\"}", e.Leading)
	case KindInvalidSuffix:
		return fmt.Sprintf("Your response has text after the closing }.\n"+
			"Found: %q\n\n"+
			"Do NOT include explanatory text after the JSON.\n\n"+
			"WRONG:\n"+
			"{\"permissionDecision\": \"allow\"}\n"+
			"Hope this helps!\n\n"+
			"CORRECT:\n"+
			"{\"permissionDecision\": \"allow\"}", e.Trailing)
	}
	return "Please return ONLY a valid JSON object matching the output schema."
}
