// Command seed-account inserts an account directly into the store, for
// bootstrapping an environment without going through the HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/fritzgwapo0907/to-do-server/config"
	"github.com/fritzgwapo0907/to-do-server/database"
	"github.com/fritzgwapo0907/to-do-server/models"
	"github.com/fritzgwapo0907/to-do-server/store"
)

// readPassword reads a password from the terminal without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	username := flag.String("username", "", "username for the new account")
	fname := flag.String("fname", "", "first name")
	lname := flag.String("lname", "", "last name")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "-username is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	if password != confirm {
		fmt.Fprintln(os.Stderr, "Passwords do not match")
		os.Exit(1)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.Database.Driver); err != nil {
		fmt.Fprintf(os.Stderr, "Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	st := store.New(db, cfg.QueryTimeout())
	err = st.CreateAccount(context.Background(), models.Account{
		Username:  *username,
		Password:  password,
		FirstName: *fname,
		LastName:  *lname,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created account %q\n", *username)
}
