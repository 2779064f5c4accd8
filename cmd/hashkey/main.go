// Command hashkey prints the bcrypt hash to put in API_KEY_HASH.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hashkey [-cost N] <api-key>")
		os.Exit(2)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(flag.Arg(0)), *cost)
	if err != nil {
		log.Fatalf("failed to hash key: %v", err)
	}
	fmt.Println(string(hashed))
}
