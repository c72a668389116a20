package handlers

import (
	"net/http"

	"github.com/gomarkdown/markdown"
	"github.com/julienschmidt/httprouter"
)

const usageDoc = `# Protected Storage

This server stores exactly one file, protected by shared-secret passwords.

## Endpoints

| Method | Path    | Description                                      |
|--------|---------|--------------------------------------------------|
| PUT    | /file   | Replace the stored file with the request body.   |
| GET    | /file   | Download the stored file.                        |

Both endpoints require the password for the respective direction in the
` + "`Authorization`" + ` header. After an invalid password, all attempts are
rejected for five minutes.

## Client

    psclient u <server-url> <local-path>    Upload a file.
    psclient d <server-url> <local-path>    Download to a new local file.

The client prompts for the password on standard input.
`

// UsageHandler renders the usage documentation on the base URL, so an
// operator hitting the server with a browser sees how to use it.
type UsageHandler struct{}

func NewUsageHandler() *UsageHandler {
	return &UsageHandler{}
}

// UsagePageHandler serves the rendered usage page.
func (h *UsageHandler) UsagePageHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(markdown.ToHTML([]byte(usageDoc), nil, nil))
}

// RegisterRoutes registers the usage route.
func (h *UsageHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.UsagePageHandler)
}
