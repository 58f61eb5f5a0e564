package degexplore

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// OpenFileOrURL reads the whole of path into memory. The path may be a local
// file (with ~ expanded), an http(s) URL, or a gs://bucket/object path. Google
// Storage paths require a non-nil client.
func OpenFileOrURL(ctx context.Context, path string, client *storage.Client) ([]byte, error) {
	var f io.ReadCloser

	switch {
	case strings.HasPrefix(path, "gs://"):
		rc, err := openGoogleStorage(ctx, path, client)
		if err != nil {
			return nil, err
		}
		f = rc

	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, pfx.Err(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, pfx.Err(err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, pfx.Err(fmt.Errorf("%s: unexpected status %s", path, resp.Status))
		}
		f = resp.Body

	default:
		file, err := os.Open(ExpandHome(path))
		if err != nil {
			return nil, err
		}
		f = file
	}
	defer f.Close()

	return ioutil.ReadAll(f)
}

func openGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if client == nil {
		return nil, pfx.Err(fmt.Errorf("%s: a Google Storage client is required for gs:// paths", path))
	}

	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[1] == "" {
		return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	rc, err := client.Bucket(pathParts[0]).Object(pathParts[1]).NewReader(ctx)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return rc, nil
}
