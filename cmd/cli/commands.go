package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// httpClient carries trace headers on every API call so server-side spans
// join the client's when a collector is configured.
var httpClient = &http.Client{
	Timeout:   30 * time.Second,
	Transport: otelhttp.NewTransport(http.DefaultTransport),
}

var followCmd = &cobra.Command{
	Use:   "follow <from> <to>",
	Short: "Record that one user follows another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := postJSON("/api/v1/follow", map[string]string{
			"from": args[0],
			"to":   args[1],
		})
		if err != nil {
			return err
		}
		printResult(body, fmt.Sprintf("✓ %s now follows %s", args[0], args[1]))
		return nil
	},
}

var listenCmd = &cobra.Command{
	Use:   "listen <user> <music>",
	Short: "Record that a user listened to a music",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := postJSON("/api/v1/listen", map[string]string{
			"user":  args[0],
			"music": args[1],
		})
		if err != nil {
			return err
		}
		printResult(body, fmt.Sprintf("✓ %s listened to %s", args[0], args[1]))
		return nil
	},
}

var recommendLimit int

var recommendCmd = &cobra.Command{
	Use:   "recommend <user>",
	Short: "Fetch ranked recommendations for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("/api/v1/recommendations?user=%s&limit=%d",
			url.QueryEscape(args[0]), recommendLimit)
		body, err := getJSON(endpoint)
		if err != nil {
			return err
		}

		if output == "json" {
			fmt.Println(string(body))
			return nil
		}

		var resp struct {
			User string `json:"user"`
			List []struct {
				MusicID string  `json:"musicId"`
				Rating  float64 `json:"rating"`
			} `json:"list"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		fmt.Printf("Recommendations for %s:\n", resp.User)
		for i, item := range resp.List {
			fmt.Printf("%2d. %-12s %.4f\n", i+1, item.MusicID, item.Rating)
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all users from the server's store",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := postJSON("/api/v1/admin/reset", map[string]string{})
		if err != nil {
			return err
		}
		printResult(body, "✓ User store reset")
		return nil
	},
}

func init() {
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 5, "number of musics to return")
}

func postJSON(endpoint string, payload interface{}) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := httpClient.Post(apiURL+endpoint, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return readAPIResponse(resp)
}

func getJSON(endpoint string) ([]byte, error) {
	resp, err := httpClient.Get(apiURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return readAPIResponse(resp)
}

func readAPIResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp map[string]interface{}
		json.Unmarshal(body, &errResp)
		if msg, ok := errResp["message"].(string); ok {
			return nil, fmt.Errorf("API error: %s", msg)
		}
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	return body, nil
}

func printResult(body []byte, message string) {
	if output == "json" {
		fmt.Println(string(body))
	} else {
		fmt.Println(message)
	}
}
