// Package dovetale provides a client for the Dovetale social media data API.
//
// A Client exchanges its OAuth2 client credentials for a bearer token when it
// is created and uses that token for every call. It can look up a profile by
// URL, username or platform id, add profiles to a tracked list, and page
// through a list's contents.
//
// Example usage:
//
//	client, err := dovetale.NewClient(ctx, clientID, clientSecret)
//	if err != nil {
//	    if errors.IsAuthenticationFailed(err) {
//	        // check the credentials
//	    }
//	    return err
//	}
//
//	resp, err := client.GetTwitterProfileByUsername(ctx, "XCELTALENT")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Get("followers_count").Int())
//
//	_, err = client.AddProfileToList(ctx, 42, dovetale.ByURL("https://twitter.com/XCELTALENT"))
//
// Responses are returned as the API sent them. Use Response.Decode to
// unmarshal into your own types or Response.Get for gjson path lookups.
package dovetale
