package registry

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
)

// dump writes the request and response to stderr when debug is enabled.
func dump(resp *http.Response) {
	if !debug || resp == nil {
		return
	}

	if data, err := httputil.DumpRequestOut(resp.Request, true); err != nil {
		log.Print(err)
	} else {
		fmt.Fprintf(os.Stderr, "\n%s", string(data))
	}

	if data, err := httputil.DumpResponse(resp, true); err != nil {
		log.Print(err)
	} else {
		fmt.Fprintf(os.Stderr, "\n%s\n", string(data))
	}
}
