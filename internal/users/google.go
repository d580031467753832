package users

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// IDTokenVerifier validates Google ID tokens against the OAuth client ID the
// frontend obtained the token for.
type IDTokenVerifier struct {
	Audience string
}

func (v *IDTokenVerifier) Verify(ctx context.Context, token string) (string, string, error) {
	payload, err := idtoken.Validate(ctx, token, v.Audience)
	if err != nil {
		return "", "", fmt.Errorf("validate id token: %w", err)
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", "", fmt.Errorf("id token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)
	return email, name, nil
}
