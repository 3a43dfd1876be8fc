package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/roamsim/roamsim/scripts/internal"
)

// Operational entry point for one-off tasks that are not worth an admin
// endpoint of their own.
//
// Usage:
//
//	go run scripts/manual/main.go reconcile <session_id>
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "reconcile":
		if len(os.Args) != 3 {
			usage()
		}
		if err := internal.ReconcileSession(os.Args[2]); err != nil {
			fmt.Printf("reconcile failed: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
	}
}

func usage() {
	fmt.Println("usage: go run scripts/manual/main.go reconcile <session_id>")
	os.Exit(1)
}
