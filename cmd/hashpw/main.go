// Command hashpw prints a bcrypt hash for a password, for use as the
// ADMIN_RESET_PASSWORD_HASH value that guards the factory reset
// endpoint.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/goaltrack/internal/utils"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: hashpw <password>")
	}
	hash, err := utils.HashPassword(os.Args[1], bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}
