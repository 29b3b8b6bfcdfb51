package bedrock

import (
	"context"
	"fmt"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/instruction"
)

// CondenseInstruction asks the model to rewrite the composed instruction
// into one cohesive paragraph fitting the agent's character budget. The
// schema examples themselves must survive the rewrite, so the prompt
// asks for minimal changes to them.
func CondenseInstruction(ctx context.Context, llm LLMClient, instructionText string) (string, error) {
	question := fmt.Sprintf(
		"Craft a comprehensive and cohesive paragraph instruction for the Bedrock agent, ensuring the instruction "+
			"text includes all 7 contextual details and examples provided. The instruction should be detailed, precise "+
			"with a maximum length of %d characters. Clearly outline the agent's tasks and how it should interact "+
			"with users, incorporating the provided contextual details and examples with minimal changes. Avoid any "+
			"introductory phrases such as 'Here is your...'.\n\n"+
			"<Contextual details and examples>\n%s\n</Contextual details and examples>",
		instruction.CharBudget, instructionText)

	condensed, err := llm.Complete(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to condense instruction: %w", err)
	}
	return condensed, nil
}
