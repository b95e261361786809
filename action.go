package s3sender

import (
	"fmt"
	"strings"

	"github.com/relaypipe/s3sender/errors"
)

// Action identifies one of the operations the sender can be configured to
// perform. The set is closed; unknown tokens are rejected at configuration
// time rather than at dispatch.
type Action int

const (
	// ActionCreateBucket creates the configured bucket ("mkBucket").
	ActionCreateBucket Action = iota
	// ActionDeleteBucket deletes the configured bucket ("rmBucket").
	ActionDeleteBucket
	// ActionUpload puts an object into the configured bucket ("upload").
	ActionUpload
	// ActionDownload retrieves an object and persists it locally ("download").
	ActionDownload
	// ActionCopy copies an object to a destination bucket ("copy").
	ActionCopy
	// ActionDelete removes an object from the configured bucket ("delete").
	ActionDelete
)

// actionTokens maps the canonical configuration tokens to actions.
// Lookup is case-insensitive.
var actionTokens = map[string]Action{
	"mkbucket": ActionCreateBucket,
	"rmbucket": ActionDeleteBucket,
	"upload":   ActionUpload,
	"download": ActionDownload,
	"copy":     ActionCopy,
	"delete":   ActionDelete,
}

// actionNames holds the canonical token per action, in declaration order.
var actionNames = []string{"mkBucket", "rmBucket", "upload", "download", "copy", "delete"}

// String returns the canonical configuration token for the action.
func (a Action) String() string {
	if int(a) < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves a single configuration token to an Action.
func ParseAction(token string) (Action, error) {
	action, ok := actionTokens[strings.ToLower(token)]
	if !ok {
		return 0, errors.NewError("parseAction", errors.ErrConfiguration).
			WithMessage(fmt.Sprintf("unknown action [%s], supported actions are: %s",
				token, strings.Join(actionNames, ", ")))
	}
	return action, nil
}

// ParseActions tokenizes an action list on whitespace and commas and resolves
// every token. An empty list is a configuration error: a sender with nothing
// to do is misconfigured.
func ParseActions(actions string) ([]Action, error) {
	tokens := tokenizeActions(actions)
	if len(tokens) == 0 {
		return nil, errors.NewError("parseActions", errors.ErrConfiguration).
			WithMessage("no actions specified, supported actions are: " + strings.Join(actionNames, ", "))
	}

	parsed := make([]Action, 0, len(tokens))
	for _, token := range tokens {
		action, err := ParseAction(token)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, action)
	}
	return parsed, nil
}

// tokenizeActions splits the configured action string on whitespace and commas.
func tokenizeActions(actions string) []string {
	return strings.FieldsFunc(actions, func(r rune) bool {
		switch r {
		case ' ', ',', '\t', '\n', '\r', '\f':
			return true
		}
		return false
	})
}
