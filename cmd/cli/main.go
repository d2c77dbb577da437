package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finsight-cli",
		Short: "FinSight CLI tool",
		Long:  `A command line interface for interacting with the FinSight transaction insights API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinSight API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Analytics over the transaction ledger",
	}

	for _, kind := range []string{"summary", "categories", "monthly", "recurring", "anomalies", "forecast"} {
		kind := kind
		insightsCmd.AddCommand(&cobra.Command{
			Use:   kind,
			Short: fmt.Sprintf("Fetch the %s insight", kind),
			Run: func(cmd *cobra.Command, args []string) {
				fetchInsight(kind)
			},
		})
	}
	rootCmd.AddCommand(insightsCmd)

	uploadCmd := &cobra.Command{
		Use:   "upload <statement-file>",
		Short: "Upload a CSV or PDF statement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			uploadStatement(args[0])
		},
	}
	rootCmd.AddCommand(uploadCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full ledger as CSV to stdout",
		Run: func(cmd *cobra.Command, args []string) {
			exportLedger()
		},
	}
	rootCmd.AddCommand(exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func fetchInsight(kind string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/insights/" + kind)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println(prettyJSON(body))
}

func uploadStatement(path string) {
	endpoint := "/api/v1/transactions/upload-csv"
	if filepath.Ext(path) == ".pdf" {
		endpoint = "/api/v1/transactions/upload-pdf"
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("Failed to open statement: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		fmt.Printf("Failed to build upload: %v\n", err)
		os.Exit(1)
	}
	if _, err := io.Copy(part, file); err != nil {
		fmt.Printf("Failed to read statement: %v\n", err)
		os.Exit(1)
	}
	writer.Close()

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+endpoint, writer.FormDataContentType(), &buf)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Upload FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Printf("Upload OK\n%s\n", prettyJSON(body))
}

func exportLedger() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/transactions/export/csv")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Export FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Print(string(body))
}

func prettyJSON(body []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}
