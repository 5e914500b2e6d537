// Command smoke exercises a running indice API end to end: login, generate,
// enrich, export.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/fatih/color"
)

const sampleText = `Go concurrency is built on goroutines, lightweight threads managed by the
runtime, and channels, typed conduits used to pass values between them. The
select statement waits on several channel operations. The sync package adds
mutexes and wait groups, and context carries cancellation across API boundaries.`

type client struct {
	baseURL string
	http    *http.Client
}

// Request helper
func (c *client) send(method, path string, body interface{}) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody, err
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "API base URL")
	password := flag.String("password", os.Getenv("APP_PASSWORD"), "Access password")
	model := flag.String("model", "", "Model identifier (default: server default)")
	flag.Parse()

	jar, _ := cookiejar.New(nil)
	c := &client{baseURL: *baseURL, http: &http.Client{Jar: jar, Timeout: 5 * time.Minute}}

	color.Cyan("🚀 indice smoke test against %s\n", *baseURL)
	failed := 0

	step := func(name string, wantStatus int, method, path string, body interface{}) *envelope {
		color.Yellow("\n%s", name)
		status, raw, err := c.send(method, path, body)
		if err != nil {
			color.Red("  FAIL: %v", err)
			failed++
			return nil
		}
		if status != wantStatus {
			color.Red("  FAIL: status %d (want %d): %s", status, wantStatus, truncate(string(raw), 300))
			failed++
			return nil
		}
		color.Green("  PASS: status %d", status)

		var env envelope
		_ = json.Unmarshal(raw, &env)
		if len(env.Data) == 0 {
			env.Data = raw
		}
		return &env
	}

	step("1. Protected route without session", http.StatusUnauthorized, "GET", "/api/models", nil)
	step("2. Login with wrong password", http.StatusUnauthorized, "POST", "/api/auth/login", map[string]string{"password": "definitely-wrong"})
	step("3. Login", http.StatusOK, "POST", "/api/auth/login", map[string]string{"password": *password})
	step("4. Models", http.StatusOK, "GET", "/api/models", nil)

	generated := step("5. Generate index", http.StatusOK, "POST", "/api/index", map[string]string{"text": sampleText, "model": *model})
	if generated != nil {
		var res struct {
			Index struct {
				MainTopic string `json:"main_topic"`
				Modules   []struct {
					Order       int    `json:"order"`
					Title       string `json:"title"`
					Description string `json:"description"`
					Difficulty  string `json:"difficulty"`
				} `json:"modules"`
			} `json:"index"`
		}
		if err := json.Unmarshal(generated.Data, &res); err != nil || len(res.Index.Modules) == 0 {
			color.Red("  FAIL: index has no modules")
			failed++
		} else {
			fmt.Printf("  %s: %d modules\n", res.Index.MainTopic, len(res.Index.Modules))

			enriched := step("6. Enrich modules", http.StatusOK, "POST", "/api/index/enrich", map[string]interface{}{
				"main_topic": res.Index.MainTopic,
				"modules":    res.Index.Modules,
			})
			if enriched != nil {
				fmt.Printf("  %s\n", truncate(string(enriched.Data), 300))
			}

			step("7. Export markdown", http.StatusOK, "POST", "/api/index/export", res.Index)
		}
	}

	step("8. Logout", http.StatusOK, "POST", "/api/auth/logout", nil)
	step("9. Session revoked", http.StatusUnauthorized, "GET", "/api/models", nil)

	if failed > 0 {
		color.Red("\n❌ %d step(s) failed", failed)
		os.Exit(1)
	}
	color.Green("\n✅ All steps passed")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
