// Copyright (c) 2026 Critica. All rights reserved.

package auth

import "fmt"

const signupEmailSubject = "Your Critica confirmation code"

// signupEmailBody renders the plain-text confirmation email.
func signupEmailBody(username, code string) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your confirmation code is: %s\n\n"+
			"Exchange it at POST /api/v1/auth/token to receive an access token.\n"+
			"If you did not request this code, you can ignore this email.\n",
		username, code,
	)
}
