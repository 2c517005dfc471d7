package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/authgate/internal/common"
)

func (a *App) Whoami(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	profile, err := a.client.Profile(ctx, a.token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// The server rejects every bad token the same way; the most
			// likely cause for a once-working token is expiry.
			fmt.Fprintln(a.out, "Session no longer valid, please log in again")
			a.token = ""
			a.email = ""
		} else {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return
	}

	fmt.Fprintf(a.out, "id=%d email=%s token expires %s\n",
		profile.ID, profile.Email, profile.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
}
