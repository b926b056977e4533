package remote

import (
	"context"
	"fmt"
	"image"
	"net/http"

	"github.com/allape/openspin/spin"
	"github.com/allape/openspin/spin/loader"
)

// Loader fetches frames over HTTP(S). There is no retry and no timeout
// beyond what the client and the context impose.
type Loader struct {
	spin.Loader

	Client *http.Client
}

func (r *Loader) Load(ctx context.Context, path string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: %s", path, res.Status)
	}

	return loader.Decode(res.Body, path)
}

func New(client *http.Client) *Loader {
	return &Loader{Client: client}
}
