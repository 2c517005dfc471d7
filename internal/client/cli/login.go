package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/authgate/internal/common"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
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

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Fprintln(a.out, "Login unsuccessful: invalid email or password")
		} else {
			fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		}
		return
	}

	a.token = token
	a.email = email
	fmt.Fprintln(a.out, "Login successful")
}
