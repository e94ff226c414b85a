// Command hash produces a bcrypt hash for a password, for seeding
// accounts directly in the database.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	var password string

	if len(os.Args) >= 2 {
		password = os.Args[1]
	} else {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		password = string(raw)
	}

	if password == "" {
		fmt.Println("Usage: go run cmd/hash/main.go [password]")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Hash: %s\n", string(hash))
}
