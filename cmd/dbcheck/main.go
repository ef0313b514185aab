// dbcheck makes one connection attempt against MONGODB_URI and reports the
// outcome. It exits non-zero when the database cannot be reached.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/seoforge/seo-api/database"
	"github.com/spf13/cobra"
)

var (
	uriFlag     string
	dbFlag      string
	timeoutFlag time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "dbcheck",
	Short:         "Check that the configured MongoDB is reachable",
	Long:          "Loads .env, resolves MONGODB_URI (or --uri) and makes a single connect + ping attempt. No retries.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

func init() {
	rootCmd.Flags().StringVar(&uriFlag, "uri", "", "MongoDB connection string (default: $MONGODB_URI)")
	rootCmd.Flags().StringVar(&dbFlag, "db", "", "Database name override (default: $MONGODB_DATABASE, then the URI path)")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 10*time.Second, "Upper bound for the attempt")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	uri := uriFlag
	if uri == "" {
		uri = os.Getenv("MONGODB_URI")
	}
	if uri == "" {
		return fmt.Errorf("MONGODB_URI is not set and --uri was not given")
	}
	override := dbFlag
	if override == "" {
		override = os.Getenv("MONGODB_DATABASE")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cluster:  %s\n", database.ExtractClusterHost(uri))
	fmt.Fprintf(out, "Database: %s\n", database.DatabaseName(uri, override))

	ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
	defer cancel()

	start := time.Now()
	client, err := database.Connect(ctx, uri)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	fmt.Fprintf(out, "✅ Connected in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
