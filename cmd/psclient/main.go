// Command psclient uploads or downloads the single file managed by a
// protected storage server. The password is read interactively so it never
// appears in shell history or the process list.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 3 {
		writeHelp()
		return nil
	}

	var upload bool
	switch args[0] {
	case "u":
		upload = true
	case "d":
		upload = false
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown action '%s'.\n", args[0])
		writeHelp()
		return nil
	}

	url := strings.TrimRight(args[1], "/") + "/file"
	path := args[2]

	if upload {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("File '%s' does not exist.", path)
		}
	} else {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("File '%s' already exists.", path)
		}
	}

	direction := "download"
	if upload {
		direction = "upload"
	}

	fmt.Printf("Please enter the %s password:\n", direction)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("could not read password: %w", err)
	}
	fmt.Println()

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return errors.New("No password provided.")
	}

	resp, err := send(upload, url, path, password)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = "(none)"
		}
		return fmt.Errorf("Server returned %d and message: %s", resp.StatusCode, message)
	}

	if upload {
		fmt.Printf("Uploaded file '%s'.\n", path)
		return nil
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create '%s': %w", path, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return fmt.Errorf("could not write '%s': %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("could not write '%s': %w", path, err)
	}

	fmt.Printf("Created file '%s'.\n", path)
	return nil
}

func send(upload bool, url, path, password string) (*http.Response, error) {
	if upload {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open '%s': %w", path, err)
		}
		defer func() { _ = f.Close() }()

		req, err := http.NewRequest(http.MethodPut, url, f)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", password)
		return http.DefaultClient.Do(req)
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", password)
	return http.DefaultClient.Do(req)
}

func writeHelp() {
	fmt.Println()
	fmt.Println("Example usage")
	fmt.Println("psclient u http://localhost:8080 README.md     Upload 'README.md'.")
	fmt.Println("psclient d http://localhost:8080 README-1.md   Download the file to 'README-1.md'.")
}
