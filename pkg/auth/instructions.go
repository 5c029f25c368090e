package auth

import (
	"fmt"
	"io"
	"strings"
)

// ShowCredentialGuide writes instructions for obtaining API credentials
func ShowCredentialGuide(w io.Writer) {
	fmt.Fprintln(w, "This tool authenticates with an OAuth client ID and client secret.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STEP 1: Sign in to your Dovetale enterprise account")
	fmt.Fprintln(w, "STEP 2: Open the API settings and create an API client")
	fmt.Fprintln(w, "STEP 3: Copy the client ID and client secret")
	fmt.Fprintln(w, "STEP 4: Run 'dovetale auth login' and paste them when asked")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Alternatively set DOVETALE_CLIENT_ID and DOVETALE_CLIENT_SECRET,")
	fmt.Fprintln(w, "or pass --client-id and --client-secret.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The secret grants full API access for your account. Never share it.")
	fmt.Fprintln(w, strings.Repeat("=", 72))
}

// ShowQuickGuide writes a one-line reminder of where credentials come from
func ShowQuickGuide(w io.Writer) {
	fmt.Fprintln(w, "No credentials found. Run 'dovetale auth login' or set DOVETALE_CLIENT_ID and DOVETALE_CLIENT_SECRET.")
}
