// Command adsearch searches a directory for user and computer accounts and
// prints the results as a table or as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	adsearch "github.com/adtools/adsearch-go"
)

var (
	flagServer   string
	flagBaseDN   string
	flagUser     string
	flagPassword string
	flagExact    bool
	flagJSON     bool
	flagVerbose  bool

	rootCmd = &cobra.Command{
		Use:           "adsearch",
		Short:         "Search a directory for user and computer accounts",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	usersCmd = &cobra.Command{
		Use:   "users",
		Short: "Search for user accounts",
		RunE:  runUsers,
	}

	computersCmd = &cobra.Command{
		Use:   "computers",
		Short: "Search for computer accounts",
		RunE:  runComputers,
	}

	userQuery     adsearch.UserQuery
	computerQuery adsearch.ComputerQuery
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagServer, "server", os.Getenv("ADSEARCH_SERVER"),
		"directory URL, e.g. ldaps://dc01.example.com:636")
	pf.StringVar(&flagBaseDN, "base-dn", os.Getenv("ADSEARCH_BASE_DN"),
		"search base DN")
	pf.StringVar(&flagUser, "user", os.Getenv("ADSEARCH_USER"),
		"bind DN or UPN; empty for an anonymous bind")
	pf.StringVar(&flagPassword, "password", os.Getenv("ADSEARCH_PASSWORD"),
		"bind password")
	pf.BoolVar(&flagExact, "exact", false, "match criteria exactly instead of as substrings")
	pf.BoolVar(&flagJSON, "json", false, "emit the full records as JSON")
	pf.BoolVar(&flagVerbose, "verbose", false, "log directory operations to stderr")

	uf := usersCmd.Flags()
	uf.StringVar(&userQuery.FirstName, "first-name", "", "first name criterion")
	uf.StringVar(&userQuery.LastName, "last-name", "", "last name criterion")
	uf.StringVar(&userQuery.UserName, "user-name", "", "account name criterion")
	uf.StringVar(&userQuery.Email, "email", "", "mail address criterion")

	cf := computersCmd.Flags()
	cf.StringVar(&computerQuery.ComputerName, "name", "", "computer name criterion")
	cf.StringVar(&computerQuery.IPAddress, "ip", "", "IP address criterion (always exact)")

	rootCmd.AddCommand(usersCmd, computersCmd)
}

func newClient() (*adsearch.Client, error) {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return adsearch.New(&adsearch.Config{
		Server: flagServer,
		BaseDN: flagBaseDN,
		Logger: logger,
	}, flagUser, flagPassword)
}

func matchMode() adsearch.MatchMode {
	if flagExact {
		return adsearch.MatchExact
	}
	return adsearch.MatchWildcard
}

func runUsers(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	userQuery.Match = matchMode()
	users, err := client.SearchUsersContext(context.Background(), userQuery)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(users)
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, u.DisplayRow())
	}
	return renderTable(adsearch.UserDisplayFields(), rows)
}

func runComputers(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	computerQuery.Match = matchMode()
	computers, err := client.SearchComputersContext(context.Background(), computerQuery)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(computers)
	}

	rows := make([][]string, 0, len(computers))
	for _, c := range computers {
		rows = append(rows, c.DisplayRow())
	}
	return renderTable(adsearch.ComputerDisplayFields(), rows)
}

func renderTable(header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Printf("%d result(s)\n", len(rows))
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
