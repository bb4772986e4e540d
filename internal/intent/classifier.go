package intent

import (
	"context"
	"fmt"
)

// classificationPrompt embeds the few-shot exemplars the model is steered
// with. The example pairs and their order are a behavioral contract; changing
// them changes how queries classify.
const classificationPrompt = `You are a Kubernetes assistant. Given a user query, identify the Kubernetes action needed. Here are some examples:

- "How many pods are in the default namespace?" -> count pods
- "List all pods in the default namespace." -> list all pods
- "What is the status of the pod named 'example-pod'?" -> check pod status
- "How many nodes are there in the cluster?" -> count nodes
- "Is the API server accessible?" -> check API server
- "Which pod is spawned by my-deployment?" -> list pods for deployment

Based on this, interpret the following query: "%s"`

// CompletionClient is the completion-service capability the classifier needs.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classifier turns a user query into raw intent text via the completion service.
type Classifier struct {
	llm CompletionClient
}

// NewClassifier creates a classifier backed by the given completion client.
func NewClassifier(llm CompletionClient) *Classifier {
	return &Classifier{llm: llm}
}

// Classify sends the instructional prompt plus the user query to the
// completion service and returns the raw response text. Any completion-service
// failure is returned to the caller; it is never swallowed here.
func (c *Classifier) Classify(ctx context.Context, query string) (string, error) {
	raw, err := c.llm.Complete(ctx, fmt.Sprintf(classificationPrompt, query))
	if err != nil {
		return "", fmt.Errorf("intent classification unavailable: %w", err)
	}
	return raw, nil
}

// BuildPrompt returns the full prompt for a query. Exposed for tests that
// assert the exemplar text is preserved.
func BuildPrompt(query string) string {
	return fmt.Sprintf(classificationPrompt, query)
}
