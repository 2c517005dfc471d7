package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/authgate/internal/common"
)

func (a *App) Register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	displayName, err := GetSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	ident, err := a.client.Register(ctx, email, displayName, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			fmt.Fprintln(a.out, "Registration failed: email already registered")
		} else {
			fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		}
		return
	}

	fmt.Fprintf(a.out, "Registered %s (id=%d)\n", ident.Email, ident.ID)
}
