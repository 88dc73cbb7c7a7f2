package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/buildline/buildline/scripts/internal"
	"github.com/joho/godotenv"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "seed-organization",
		Description: "Create a user with an owned organization",
		Run:         internal.SeedOrganization,
	},
	{
		Name:        "set-subscription",
		Description: "Apply a subscription status to an organization as a billing event would",
		Run:         internal.SetSubscription,
	},
}

func main() {
	// local .env carries BUILDLINE_ overrides for the target database
	_ = godotenv.Load()

	var (
		listCommands bool
		cmdName      string
		email        string
		password     string
		orgName      string
		orgID        string
		status       string
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&email, "user-email", "", "Email of the user to create")
	flag.StringVar(&password, "user-password", "", "Password of the user to create")
	flag.StringVar(&orgName, "org-name", "", "Organization name")
	flag.StringVar(&orgID, "org-id", "", "Organization ID for operations")
	flag.StringVar(&status, "status", "", "Subscription status to apply")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	setEnv := map[string]string{
		"USER_EMAIL":          email,
		"USER_PASSWORD":       password,
		"ORGANIZATION_NAME":   orgName,
		"ORGANIZATION_ID":     orgID,
		"SUBSCRIPTION_STATUS": status,
	}
	for k, v := range setEnv {
		if v != "" {
			os.Setenv(k, v)
		}
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
