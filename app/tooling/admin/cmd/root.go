// Package cmd contains the admin app commands.
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var url string

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer a running sociora node",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// =============================================================================

// post sends the value as JSON to the node and prints the response body.
func post(path string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s%s", url, path), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	show(resp)
}

// get queries the node and prints the response body.
func get(path string) {
	resp, err := http.Get(fmt.Sprintf("%s%s", url, path))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	show(resp)
}

func show(resp *http.Response) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s\n%s\n", resp.Status, body)
}
