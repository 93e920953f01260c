package workflow

import (
	"context"

	"github.com/frahmantamala/epic-events-crm/internal/auth"
)

// Authenticator verifies the credentials typed at the login prompt.
type Authenticator interface {
	Authenticate(ctx context.Context, dto auth.LoginDTO) (*auth.Identity, error)
}

func loginSchema() []Field {
	return []Field{
		{Name: "username", Label: "Username", Type: FieldText},
		{Name: "password", Label: "Password", Type: FieldPassword},
	}
}

// Login prompts for credentials until they are accepted or input ends.
// Rejected attempts are rendered and asked again.
func (h *BaseHandler) Login(ctx context.Context, authenticator Authenticator) (*auth.Identity, error) {
	for {
		values, err := h.Collect(ctx, "Log in", loginSchema())
		if err != nil {
			return nil, err
		}

		identity, err := authenticator.Authenticate(ctx, auth.LoginDTO{
			Username: values.Text("username"),
			Password: values["password"],
		})
		if err == nil {
			h.Presenter.ShowMessage(MessageInfo, "Welcome "+identity.String()+".")
			return identity, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		h.ShowError(ctx, err)
	}
}
