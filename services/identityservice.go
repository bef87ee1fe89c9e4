package services

import (
	"context"
	"fmt"

	"firebase.google.com/go/auth"

	"tarefas/model"
)

// IdentityVerifier turns a sign-in credential into an identity.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (model.Identity, error)
}

// FirebaseIdentityVerifier checks ID tokens minted by Firebase Authentication
// (Google provider on the web client).
type FirebaseIdentityVerifier struct {
	client *auth.Client
}

func NewFirebaseIdentityVerifier(client *auth.Client) *FirebaseIdentityVerifier {
	return &FirebaseIdentityVerifier{client: client}
}

func (v *FirebaseIdentityVerifier) VerifyIDToken(ctx context.Context, idToken string) (model.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	if email == "" {
		return model.Identity{}, fmt.Errorf("%w: token carries no email", ErrInvalidIDToken)
	}
	if name == "" {
		name = email
	}
	return model.Identity{Email: email, Name: name}, nil
}
