// Command licensegate-admin is the operator CLI for a licensegate server.
//
// It talks to the server's /admin endpoints over HTTP, authenticated by the
// admin key (flag -k or the ADMIN_KEY environment variable).
//
// Usage:
//
//	licensegate-admin [-s address] [-k admin-key] <command> [arguments]
//
// Commands:
//
//	add           register a new license
//	set-strategy  replace a license's strategy configuration
//	list          list all licenses
//	stats <key>   show the per-action aggregation of a license's history
//	delete <key>  delete a license with its strategy and history
//	status        probe the server health endpoint
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"licensegate/internal/adapter"
	"licensegate/internal/logger"
	"licensegate/models"
)

func main() {
	var (
		address  string
		adminKey string
		timeout  time.Duration
	)

	flag.StringVar(&address, "s", envOr("SERVER_ADDRESS", "http://localhost:5000"), "licensegate server address")
	flag.StringVar(&adminKey, "k", os.Getenv("ADMIN_KEY"), "admin key (defaults to the ADMIN_KEY environment variable)")
	flag.DurationVar(&timeout, "t", 15*time.Second, "request timeout")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	log := logger.NewLogger("licensegate-admin")

	client, err := adapter.NewHTTPAdminClient(address, adminKey, timeout, log)
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command, commandArgs := args[0], args[1:]

	switch command {
	case "add":
		err = runAdd(ctx, client, commandArgs)
	case "set-strategy":
		err = runSetStrategy(ctx, client, commandArgs)
	case "list":
		err = runList(ctx, client)
	case "stats":
		err = runStats(ctx, client, commandArgs)
	case "delete":
		err = runDelete(ctx, client, commandArgs)
	case "status":
		err = runStatus(ctx, client)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: licensegate-admin [-s address] [-k admin-key] <command> [arguments]

Commands:
  add           register a new license
  set-strategy  replace a license's strategy configuration
  list          list all licenses
  stats <key>   show the per-action aggregation of a license's history
  delete <key>  delete a license with its strategy and history
  status        probe the server health endpoint

Flags:
`)
	flag.PrintDefaults()
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
	os.Exit(1)
}

func runAdd(ctx context.Context, client adapter.AdminClient, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	username := fs.String("username", "", "unique account login (required)")
	fullName := fs.String("full-name", "", "display name of the license owner")
	licenseKey := fs.String("key", "", "license key to issue (required)")
	hwid := fs.String("hwid", "", "device fingerprint to bind the license to")
	expiresAt := fs.String("expires", "", "expiration timestamp in RFC 3339 format (empty: never)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	request := models.AddLicenseRequest{
		Username:   *username,
		FullName:   *fullName,
		LicenseKey: *licenseKey,
		HWID:       *hwid,
		ExpiresAt:  *expiresAt,
	}

	if err := client.AddUser(ctx, request); err != nil {
		return err
	}

	fmt.Println(okStyle.Render("license created"))
	return nil
}

func runSetStrategy(ctx context.Context, client adapter.AdminClient, args []string) error {
	fs := flag.NewFlagSet("set-strategy", flag.ExitOnError)
	licenseKey := fs.String("key", "", "license key (required)")
	file := fs.String("file", "", `JSON file with the strategy payload ("-" for stdin)`)
	maxGoal := fs.Float64("max-goal", 0, "goal threshold (0: server default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload, err := readStrategyPayload(*file)
	if err != nil {
		return err
	}

	request := models.SetStrategyRequest{
		LicenseKey: *licenseKey,
		Strategy:   payload,
		MaxGoal:    *maxGoal,
	}

	if err := client.SetStrategy(ctx, request); err != nil {
		return err
	}

	fmt.Println(okStyle.Render("strategy updated"))
	return nil
}

func readStrategyPayload(file string) (map[string]any, error) {
	if file == "" {
		return nil, fmt.Errorf("missing -file with the strategy payload")
	}

	var reader io.Reader
	if file == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open strategy file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var payload map[string]any
	if err := json.NewDecoder(reader).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode strategy payload: %w", err)
	}

	return payload, nil
}

func runList(ctx context.Context, client adapter.AdminClient) error {
	licenses, err := client.ListUsers(ctx)
	if err != nil {
		return err
	}

	if len(licenses) == 0 {
		fmt.Println(helpStyle.Render("no licenses"))
		return nil
	}

	rows := make([][]string, 0, len(licenses))
	for _, license := range licenses {
		expires := "never"
		if license.ExpiresAt != nil {
			expires = license.ExpiresAt.Format(time.RFC3339)
		}

		active := "yes"
		if !license.Active {
			active = "no"
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", license.ID),
			license.Username,
			license.FullName,
			license.LicenseKey,
			license.HWID,
			active,
			expires,
		})
	}

	fmt.Println(renderTable([]string{"ID", "USERNAME", "FULL NAME", "KEY", "HWID", "ACTIVE", "EXPIRES"}, rows))
	return nil
}

func runStats(ctx context.Context, client adapter.AdminClient, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: stats <license-key>")
	}

	stats, err := client.UserStats(ctx, args[0])
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Println(helpStyle.Render("no recorded actions"))
		return nil
	}

	rows := make([][]string, 0, len(stats))
	for _, row := range stats {
		rows = append(rows, []string{
			row.Action,
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%.2f", row.TotalAmount),
			fmt.Sprintf("%.2f", row.TotalProfit),
		})
	}

	fmt.Println(renderTable([]string{"ACTION", "COUNT", "TOTAL AMOUNT", "TOTAL PROFIT"}, rows))
	return nil
}

func runDelete(ctx context.Context, client adapter.AdminClient, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <license-key>")
	}

	if err := client.DeleteUser(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println(okStyle.Render("license deleted"))
	return nil
}

func runStatus(ctx context.Context, client adapter.AdminClient) error {
	health, err := client.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", okStyle.Render(health.Status), helpStyle.Render(health.Timestamp))
	return nil
}
