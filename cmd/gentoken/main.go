// Dev tool that mints an identity token for a subject id using the
// configured signing secret.
package main

import (
	"fmt"
	"os"

	"github.com/gatherly/server/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: gentoken <subject-id>")
		os.Exit(2)
	}

	secret := os.Getenv("JWT_SECRET")
	tokens, err := auth.NewTokenService(secret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (set JWT_SECRET)\n", err)
		os.Exit(1)
	}

	token, err := tokens.Issue(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Identity token:")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' -X POST http://localhost:8080/graphql -d '{\"query\":\"{ events { id name } }\"}'\n", token)
}
