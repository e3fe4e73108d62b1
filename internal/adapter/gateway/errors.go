package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"session-hub/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

// messageKinds is the finite mapping from Kratos UI message codes to the
// error taxonomy. It is the single place to update when the provider
// changes codes; anything unmapped falls through to the status mapping
// and finally to ErrUnknown.
var messageKinds = map[int64]error{
	4000001: domain.ErrInvalidEmail,       // malformed property value
	4000002: domain.ErrInvalidEmail,       // required property missing
	4000005: domain.ErrWeakPassword,       // password policy violation
	4000006: domain.ErrInvalidCredentials, // credentials are invalid
	4000007: domain.ErrEmailAlreadyInUse,  // account with identifier exists
	4000032: domain.ErrWeakPassword,       // password too short
	4000034: domain.ErrWeakPassword,       // password found in breaches
}

// translate converts a Kratos API failure into exactly one taxonomy error.
func (g *KratosGateway) translate(ctx context.Context, err error, resp *http.Response) error {
	var apiErr *kratos.GenericOpenAPIError
	if errors.As(err, &apiErr) {
		switch model := apiErr.Model().(type) {
		case kratos.LoginFlow:
			if kind := kindFromMessages(collectMessages(&model.Ui)); kind != nil {
				return kind
			}
		case kratos.RegistrationFlow:
			if kind := kindFromMessages(collectMessages(&model.Ui)); kind != nil {
				return kind
			}
		case kratos.ErrorBrowserLocationChangeRequired:
			return domain.ErrPopupBlocked
		}
		if kind := kindFromBody(apiErr.Body()); kind != nil {
			return kind
		}
	}

	if resp != nil {
		return g.kindFromStatus(ctx, resp.StatusCode, err)
	}
	return domain.ErrNetworkFailure
}

// translateFederated adds the federated-only conditions on top of the
// general table: redirect demands and dead flows are low-severity,
// distinguishable from credential errors.
func (g *KratosGateway) translateFederated(ctx context.Context, err error, resp *http.Response) error {
	var apiErr *kratos.GenericOpenAPIError
	if errors.As(err, &apiErr) {
		if _, ok := apiErr.Model().(kratos.ErrorBrowserLocationChangeRequired); ok {
			return domain.ErrPopupBlocked
		}
	}
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnprocessableEntity:
			return domain.ErrPopupBlocked
		case http.StatusGone, http.StatusForbidden:
			return domain.ErrPopupCancelled
		}
	}
	return g.translate(ctx, err, resp)
}

// kindFromMessages scans flow UI messages in order and returns the first
// mapped kind.
func kindFromMessages(messages []kratos.UiText) error {
	for _, message := range messages {
		if kind, ok := messageKinds[message.Id]; ok {
			return kind
		}
	}
	return nil
}

// collectMessages flattens container- and node-level messages.
func collectMessages(ui *kratos.UiContainer) []kratos.UiText {
	messages := append([]kratos.UiText{}, ui.Messages...)
	for _, node := range ui.Nodes {
		messages = append(messages, node.Messages...)
	}
	return messages
}

// kindFromBody is the fallback for error payloads the SDK did not decode
// into a flow model: scan the raw body for UI message ids.
func kindFromBody(body []byte) error {
	var payload struct {
		Ui struct {
			Messages []struct {
				Id int64 `json:"id"`
			} `json:"messages"`
			Nodes []struct {
				Messages []struct {
					Id int64 `json:"id"`
				} `json:"messages"`
			} `json:"nodes"`
		} `json:"ui"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	ids := make([]int64, 0, len(payload.Ui.Messages))
	for _, m := range payload.Ui.Messages {
		ids = append(ids, m.Id)
	}
	for _, n := range payload.Ui.Nodes {
		for _, m := range n.Messages {
			ids = append(ids, m.Id)
		}
	}
	for _, id := range ids {
		if kind, ok := messageKinds[id]; ok {
			return kind
		}
	}
	return nil
}

// kindFromStatus maps HTTP statuses with no usable message to the
// taxonomy. Unmapped combinations are logged for follow-up and reported
// as ErrUnknown rather than surfaced verbatim.
func (g *KratosGateway) kindFromStatus(ctx context.Context, status int, original error) error {
	switch {
	case status == http.StatusUnauthorized:
		return domain.ErrInvalidCredentials
	case status == http.StatusConflict:
		return domain.ErrEmailAlreadyInUse
	case status == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case status >= http.StatusInternalServerError:
		return domain.ErrNetworkFailure
	default:
		g.logger.ErrorContext(ctx, "unmapped identity provider error",
			"status", status, "error", original)
		return domain.ErrUnknown
	}
}
